package lifecycle

import "github.com/m04kA/SMC-MarketplaceBooking/internal/domain"

// Action действие над бронированием
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// Policy настраиваемые правила переходов
type Policy struct {
	// ClientCanCancelConfirmed разрешает клиенту отменить подтверждённое бронирование
	ClientCanCancelConfirmed bool
}

// DefaultPolicy политика по умолчанию
func DefaultPolicy() Policy {
	return Policy{ClientCanCancelConfirmed: true}
}

type transitionKey struct {
	from   domain.BookingStatus
	action Action
}

type transition struct {
	to    domain.BookingStatus
	roles []domain.Role
}

// transitions единственный источник правды о допустимых переходах.
// Из completed и cancelled переходов нет
var transitions = map[transitionKey]transition{
	{domain.StatusPending, ActionConfirm}: {
		to:    domain.StatusConfirmed,
		roles: []domain.Role{domain.RoleProvider},
	},
	{domain.StatusPending, ActionCancel}: {
		to:    domain.StatusCancelled,
		roles: []domain.Role{domain.RoleClient, domain.RoleProvider},
	},
	{domain.StatusConfirmed, ActionComplete}: {
		to:    domain.StatusCompleted,
		roles: []domain.Role{domain.RoleProvider},
	},
	{domain.StatusConfirmed, ActionCancel}: {
		to:    domain.StatusCancelled,
		roles: []domain.Role{domain.RoleProvider, domain.RoleClient},
	},
}

// ActionFor возвращает действие, ведущее в целевой статус
func ActionFor(target domain.BookingStatus) (Action, bool) {
	switch target {
	case domain.StatusConfirmed:
		return ActionConfirm, true
	case domain.StatusCancelled:
		return ActionCancel, true
	case domain.StatusCompleted:
		return ActionComplete, true
	}
	return "", false
}

// lookup находит переход и проверяет роль с учётом политики
func (p Policy) lookup(from domain.BookingStatus, action Action, role domain.Role) (transition, bool) {
	t, ok := transitions[transitionKey{from: from, action: action}]
	if !ok {
		return transition{}, false
	}
	if from == domain.StatusConfirmed && action == ActionCancel && role == domain.RoleClient && !p.ClientCanCancelConfirmed {
		return transition{}, false
	}
	for _, r := range t.roles {
		if r == role {
			return t, true
		}
	}
	return transition{}, false
}

// canReach сообщает, может ли роль хоть каким-то переходом попасть в статус target
func (p Policy) canReach(target domain.BookingStatus, role domain.Role) bool {
	for key, t := range transitions {
		if t.to != target {
			continue
		}
		if _, ok := p.lookup(key.from, key.action, role); ok {
			return true
		}
	}
	return false
}

// Allowed возвращает true, если роль может перевести бронирование из from в to
func (p Policy) Allowed(from, to domain.BookingStatus, role domain.Role) bool {
	action, ok := ActionFor(to)
	if !ok {
		return false
	}
	t, ok := p.lookup(from, action, role)
	return ok && t.to == to
}
