package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// Request модели

// OnboardRequest запрос на регистрацию профиля исполнителем
type OnboardRequest struct {
	Actor           domain.Actor
	BusinessName    string
	Description     *string
	ExperienceYears *int
	HourlyRate      *float64
	ServiceRadius   *int
	Skills          []string
}

// Response модели

// ProviderResponse публичная карточка исполнителя
type ProviderResponse struct {
	ID                 int64     `json:"id"`
	ProfileID          int64     `json:"profileId"`
	BusinessName       string    `json:"businessName"`
	Description        *string   `json:"description,omitempty"`
	ExperienceYears    *int      `json:"experienceYears,omitempty"`
	HourlyRate         *float64  `json:"hourlyRate,omitempty"`
	ServiceRadius      *int      `json:"serviceRadius,omitempty"`
	Skills             []string  `json:"skills"`
	VerificationStatus string    `json:"verificationStatus"`
	AverageRating      float64   `json:"averageRating"`
	TotalReviews       int       `json:"totalReviews"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ReviewResponse отзыв о выполненной работе
type ReviewResponse struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"bookingId"`
	ReviewerID int64     `json:"reviewerId"`
	ProviderID int64     `json:"providerId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewListResponse отзывы исполнителя вместе со сводкой рейтинга
type ReviewListResponse struct {
	ProviderID    int64            `json:"providerId"`
	AverageRating float64          `json:"averageRating"`
	TotalReviews  int              `json:"totalReviews"`
	Reviews       []ReviewResponse `json:"reviews"`
}

// FromDomainProvider конвертирует domain модель в DTO
func FromDomainProvider(p *domain.ServiceProvider) *ProviderResponse {
	if p == nil {
		return nil
	}

	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}

	return &ProviderResponse{
		ID:                 p.ID,
		ProfileID:          p.ProfileID,
		BusinessName:       p.BusinessName,
		Description:        p.Description,
		ExperienceYears:    p.ExperienceYears,
		HourlyRate:         p.HourlyRate,
		ServiceRadius:      p.ServiceRadius,
		Skills:             skills,
		VerificationStatus: string(p.VerificationStatus),
		AverageRating:      p.AverageRating,
		TotalReviews:       p.TotalReviews,
		CreatedAt:          p.CreatedAt,
	}
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ReviewerID: r.ReviewerID,
		ProviderID: r.ProviderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
