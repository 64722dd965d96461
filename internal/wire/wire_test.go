package wire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stay-booking/internal/data/repository"
	"stay-booking/pkg/metrics"
	"stay-booking/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestApp wires the router over an empty repository; only routes that stop
// before the store are exercised here.
func newTestApp(t *testing.T) *App {
	t.Helper()
	reg := prometheus.NewRegistry()
	config := &utils.Config{
		App:     utils.AppConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Cookie:  utils.CookieConfig{AccessName: "access", RefreshName: "refresh", Path: "/"},
		Booking: utils.BookingConfig{FetchLimit: 100},
	}
	tokens := utils.NewTokenManager(utils.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	return Wiring(&repository.Repository{}, tokens, config, metrics.New(reg), reg, zap.NewNop())
}

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newTestApp(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	for _, tt := range []struct{ method, path string }{
		{http.MethodPost, "/api/bookings"},
		{http.MethodPost, "/api/bookings/mine"},
		{http.MethodGet, "/api/bookings/0191f1c2-7a3e-7c00-8000-000000000000"},
		{http.MethodGet, "/api/auth/me"},
	} {
		rec := serve(app, tt.method, tt.path, "{}")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.path)
	}
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	app := newTestApp(t)

	rec := serve(app, http.MethodPost, "/api/listings", `{"count":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(app, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `stay_booking_http_requests_total\{method="POST",route="/api/listings/?",status="400"\} 1`, rec.Body.String())
}
