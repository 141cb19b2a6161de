package lifecycle

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Intent побочный эффект, который должен выполнить вызывающий код после записи
type Intent struct {
	Kind      domain.EventKind
	Recipient domain.Role
}

// TransitionRequest запрос на смену статуса
type TransitionRequest struct {
	Target             domain.BookingStatus
	ProviderNotes      *string
	CancellationReason *string
}

// Decision результат проверки перехода
type Decision struct {
	From    domain.BookingStatus
	To      domain.BookingStatus
	Changed bool // false, если бронирование уже в целевом статусе
	Booking domain.Booking
	Patch   domain.BookingStatusPatch
	Intents []Intent
}

// CreateRequest входные данные для создания бронирования
type CreateRequest struct {
	Actor           domain.Actor
	ListingID       int64
	ScheduledDate   time.Time
	ScheduledTime   types.TimeString
	DurationMinutes *int
	ClientNotes     *string
}

// Engine машина состояний бронирования. Не выполняет ввод-вывод
type Engine struct {
	policy Policy
}

// NewEngine создаёт движок с заданной политикой
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy возвращает действующую политику
func (e *Engine) Policy() Policy {
	return e.policy
}

// Decide проверяет переход booking -> req.Target от имени actor
func (e *Engine) Decide(booking domain.Booking, actor domain.Actor, req TransitionRequest, now time.Time) (*Decision, error) {
	action, ok := ActionFor(req.Target)
	if !ok {
		// В pending не ведёт ни один переход
		if _, known := domain.ParseBookingStatus(string(req.Target)); known {
			return nil, fmt.Errorf("%w: %s -> %s by %s", ErrInvalidTransition, booking.Status, req.Target, actor.Role)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, req.Target)
	}

	if req.ProviderNotes != nil && !actor.IsProvider() {
		return nil, fmt.Errorf("%w: provider notes can only be set by provider", ErrInvalidPatch)
	}
	if req.CancellationReason != nil && req.Target != domain.StatusCancelled {
		return nil, fmt.Errorf("%w: cancellation reason requires cancelled target", ErrInvalidPatch)
	}

	// Повторный запрос уже применённого перехода не является ошибкой
	if booking.Status == req.Target {
		if !e.policy.canReach(req.Target, actor.Role) {
			return nil, fmt.Errorf("%w: role %s cannot move booking to %s", ErrInvalidTransition, actor.Role, req.Target)
		}
		return &Decision{
			From:    booking.Status,
			To:      req.Target,
			Changed: false,
			Booking: booking,
		}, nil
	}

	t, ok := e.policy.lookup(booking.Status, action, actor.Role)
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s by %s", ErrInvalidTransition, booking.Status, req.Target, actor.Role)
	}

	patch := domain.BookingStatusPatch{ProviderNotes: req.ProviderNotes}
	if t.to == domain.StatusCancelled {
		role := actor.Role
		at := now
		patch.CancellationReason = req.CancellationReason
		patch.CancelledBy = &role
		patch.CancelledAt = &at
	}

	updated := booking
	updated.Status = t.to
	if patch.ProviderNotes != nil {
		updated.ProviderNotes = patch.ProviderNotes
	}
	if patch.CancelledAt != nil {
		updated.CancellationReason = patch.CancellationReason
		updated.CancelledBy = patch.CancelledBy
		updated.CancelledAt = patch.CancelledAt
	}

	return &Decision{
		From:    booking.Status,
		To:      t.to,
		Changed: true,
		Booking: updated,
		Patch:   patch,
		Intents: []Intent{intentFor(t.to, actor.Role)},
	}, nil
}

// NewBooking собирает бронирование в статусе pending.
// Доступность слота проверяется отдельно пакетом availability
func (e *Engine) NewBooking(req CreateRequest, listing *domain.ServiceListing, provider *domain.ServiceProvider) (*domain.Booking, Intent, error) {
	if !req.Actor.IsClient() {
		return nil, Intent{}, ErrClientRoleRequired
	}
	if !listing.IsActive {
		return nil, Intent{}, ErrListingInactive
	}
	if listing.ProviderID != provider.ID {
		return nil, Intent{}, ErrListingProviderMismatch
	}
	if !provider.IsApproved() {
		return nil, Intent{}, fmt.Errorf("%w: status=%s", ErrProviderNotApproved, provider.VerificationStatus)
	}

	duration := listing.EffectiveDuration(req.DurationMinutes)

	booking := &domain.Booking{
		ClientID:        req.Actor.ProfileID,
		ProviderID:      provider.ID,
		ListingID:       listing.ID,
		ScheduledDate:   req.ScheduledDate,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: duration,
		TotalPrice:      TotalPrice(listing, duration),
		ClientNotes:     req.ClientNotes,
		Status:          domain.StatusPending,
	}

	return booking, Intent{Kind: domain.EventBookingRequest, Recipient: domain.RoleProvider}, nil
}

// TotalPrice стоимость бронирования: почасовая цена умножается на длительность,
// остальные типы цены берутся как есть. nil, если у услуги нет цены
func TotalPrice(listing *domain.ServiceListing, durationMinutes int) *float64 {
	if listing.Price == nil {
		return nil
	}

	total := *listing.Price
	if listing.PriceType == domain.PriceHourly && durationMinutes > 0 {
		total = *listing.Price * float64(durationMinutes) / 60
	}

	total = math.Round(total*100) / 100
	return &total
}

// intentFor определяет событие и получателя уведомления для перехода
func intentFor(to domain.BookingStatus, actor domain.Role) Intent {
	switch to {
	case domain.StatusConfirmed:
		return Intent{Kind: domain.EventBookingConfirmed, Recipient: domain.RoleClient}
	case domain.StatusCompleted:
		return Intent{Kind: domain.EventBookingCompleted, Recipient: domain.RoleClient}
	default:
		// Об отмене узнаёт другая сторона
		recipient := domain.RoleClient
		if actor == domain.RoleClient {
			recipient = domain.RoleProvider
		}
		return Intent{Kind: domain.EventBookingCancelled, Recipient: recipient}
	}
}
