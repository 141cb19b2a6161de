package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type observed struct {
	method, route string
	status        int
}

type fakeMetrics struct {
	calls []observed
}

func (f *fakeMetrics) ObserveHTTP(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, route: route, status: status})
}

func TestAuth(t *testing.T) {
	var got domain.Actor
	h := Auth(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetActor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		id, role   string
		wantStatus int
	}{
		{name: "valid client", id: "10", role: "client", wantStatus: http.StatusNoContent},
		{name: "missing id", role: "client", wantStatus: http.StatusUnauthorized},
		{name: "unknown role", id: "10", role: "admin", wantStatus: http.StatusUnauthorized},
		{name: "negative id", id: "-1", role: "provider", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set(HeaderUserID, tt.id)
			r.Header.Set(HeaderUserRole, tt.role)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	assert.Equal(t, domain.Actor{ProfileID: 10, Role: domain.RoleClient}, got)
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{method: http.MethodGet, route: "/bookings/{bookingId}", status: http.StatusTeapot}, m.calls[0])
}

func TestRecovery(t *testing.T) {
	h := Recovery(nopLogger{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
