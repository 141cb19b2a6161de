package models

import (
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request модели

// RuleRequest рабочее окно одного дня недели
type RuleRequest struct {
	DayOfWeek   int    `json:"dayOfWeek"`   // 0 = воскресенье ... 6 = суббота
	StartTime   string `json:"startTime"`   // "09:00"
	EndTime     string `json:"endTime"`     // "18:00"
	IsAvailable bool   `json:"isAvailable"` // false = выходной
}

// ReplaceRequest полная замена недельного шаблона исполнителя
type ReplaceRequest struct {
	Actor      domain.Actor
	ProviderID int64
	Rules      []RuleRequest
}

// ToDomainRules конвертирует правила запроса в domain модели
func (r *ReplaceRequest) ToDomainRules() ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0, len(r.Rules))

	for _, rr := range r.Rules {
		start, err := types.NewTimeStringFromString(rr.StartTime)
		if err != nil {
			return nil, fmt.Errorf("day %d start: %w", rr.DayOfWeek, err)
		}
		end, err := types.NewTimeStringFromString(rr.EndTime)
		if err != nil {
			return nil, fmt.Errorf("day %d end: %w", rr.DayOfWeek, err)
		}

		rules = append(rules, &domain.AvailabilityRule{
			ProviderID:  r.ProviderID,
			DayOfWeek:   rr.DayOfWeek,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: rr.IsAvailable,
		})
	}

	return rules, nil
}

// Response модели

// RuleResponse правило недельного шаблона
type RuleResponse struct {
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// AvailabilityResponse недельный шаблон исполнителя
type AvailabilityResponse struct {
	ProviderID int64          `json:"providerId"`
	Rules      []RuleResponse `json:"rules"`
}

// FromDomainRules конвертирует domain модели в DTO
func FromDomainRules(providerID int64, rules []*domain.AvailabilityRule) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ProviderID: providerID,
		Rules:      make([]RuleResponse, 0, len(rules)),
	}

	for _, r := range rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			DayOfWeek:   r.DayOfWeek,
			StartTime:   r.StartTime.String(),
			EndTime:     r.EndTime.String(),
			IsAvailable: r.IsAvailable,
		})
	}

	return resp
}
