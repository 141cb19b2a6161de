package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

const (
	// HeaderUserID ID профиля, проставляется шлюзом после аутентификации
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль профиля: client или provider
	HeaderUserRole = "X-User-Role"

	msgMissingIdentity = "требуется авторизация"
)

type actorKey struct{}

// Auth требует заголовки идентификации и кладёт actor в контекст запроса
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := actorFromHeaders(r)
			if !ok {
				logger.Warn("%s %s - Missing or invalid identity headers", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingIdentity)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладёт actor в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достаёт actor, установленный Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

func actorFromHeaders(r *http.Request) (domain.Actor, bool) {
	id, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
	if err != nil || id <= 0 {
		return domain.Actor{}, false
	}

	role, ok := domain.ParseRole(r.Header.Get(HeaderUserRole))
	if !ok {
		return domain.Actor{}, false
	}

	return domain.Actor{ProfileID: id, Role: role}, true
}
