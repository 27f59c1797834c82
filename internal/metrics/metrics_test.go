package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/refresh/refreshtest"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ok", nil, OutcomeOK},
		{"cancelled", fmt.Errorf("use: %w", domain.ErrCancelled), OutcomeCancelled},
		{"precondition", fmt.Errorf("spin: %w", domain.ErrNoTickets), OutcomePrecondition},
		{"domain", &domain.DomainError{Op: "use", Reason: "sold out"}, OutcomeDomainError},
		{"transport", &domain.TransportError{Op: "use", Err: errors.New("refused")}, OutcomeTransportError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestEventMetricsCollector_CountsSignals(t *testing.T) {
	bus := refreshtest.New()
	c := NewEventMetricsCollector()
	c.Register(bus)
	defer c.Unregister()

	counter := RefreshSignals.WithLabelValues(string(domain.TopicWishlist))
	before := testutil.ToFloat64(counter)

	assert.NoError(t, bus.Deliver(context.Background(), domain.TopicWishlist))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/teapot", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}
