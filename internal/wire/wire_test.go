package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stempede-store/internal/data/entity"
	"stempede-store/internal/data/repository/repotest"
	"stempede-store/internal/metrics"
	"stempede-store/pkg/middleware"
	"stempede-store/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// newApp wires a store holding customer alice and her order 1.
func newApp(t *testing.T, pinger Pinger, rateLimit utils.RateLimitConfig) *App {
	return newAppWithConfig(t, pinger, &utils.Config{RateLimit: rateLimit})
}

func newAppWithConfig(t *testing.T, pinger Pinger, config *utils.Config) *App {
	t.Helper()

	factory, _ := repotest.Setup(t)
	alice := repotest.CreateUser(t, factory, "alice", "alice@example.com", "secret123", entity.RoleCustomer, true)
	repotest.CreateOrder(t, factory, alice.ID, entity.DeliveryStatusPlaced)

	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	return Wiring(pinger, factory, m, config, zap.NewNop())
}

func do(app *App, method, target, body, username, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if username != "" {
		req.Header.Set(middleware.UsernameHeader, username)
		req.Header.Set(middleware.RoleHeader, role)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	app := newApp(t, fakePinger{}, utils.RateLimitConfig{})

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		username string
		role     string
		want     int
	}{
		{"public subcategories", http.MethodGet, "/api/subcategories", "", "", "", http.StatusOK},
		{"create subcategory needs identity", http.MethodPost, "/api/subcategories", `{"subcategory_name":"Kits"}`, "", "", http.StatusUnauthorized},
		{"create subcategory needs staff", http.MethodPost, "/api/subcategories", `{"subcategory_name":"Kits"}`, "alice", "Customer", http.StatusForbidden},
		{"staff creates subcategory", http.MethodPost, "/api/subcategories", `{"subcategory_name":"Kits"}`, "carol", "Staff", http.StatusCreated},
		{"orders need identity", http.MethodGet, "/api/orders/1", "", "", "", http.StatusUnauthorized},
		{"owner reads order", http.MethodGet, "/api/orders/1", "", "alice", "Customer", http.StatusOK},
		{"customer cannot list orders", http.MethodGet, "/api/orders", "", "alice", "Customer", http.StatusForbidden},
		{"manager lists orders", http.MethodGet, "/api/orders", "", "dave", "Manager", http.StatusOK},
		{"manager pages orders", http.MethodGet, "/api/orders/paged?page=1&per_page=5", "", "dave", "Manager", http.StatusOK},
		{"customer cannot ship", http.MethodPut, "/api/orders/1/delivery-status", `{"delivery_status":"Đang giao hàng"}`, "alice", "Customer", http.StatusForbidden},
		{"staff ships", http.MethodPut, "/api/orders/1/delivery-status", `{"delivery_status":"Đang giao hàng"}`, "carol", "Staff", http.StatusOK},
		{"staff reads statuses", http.MethodGet, "/api/orders/1/delivery-statuses", "", "carol", "Staff", http.StatusOK},
		{"own support requests", http.MethodGet, "/api/support-requests/mine", "", "alice", "Customer", http.StatusOK},
		{"customer cannot list all support", http.MethodGet, "/api/support-requests", "", "alice", "Customer", http.StatusForbidden},
		{"profile", http.MethodGet, "/api/users/profile", "", "alice", "Customer", http.StatusOK},
		{"profile needs identity", http.MethodGet, "/api/users/profile", "", "", "", http.StatusUnauthorized},
		{"login", http.MethodPost, "/api/auth/login", `{"email_or_username":"alice","password":"secret123"}`, "", "", http.StatusOK},
		{"logout", http.MethodPost, "/api/auth/logout", "", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(app, tt.method, tt.target, tt.body, tt.username, tt.role)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHealth(t *testing.T) {
	app := newApp(t, fakePinger{}, utils.RateLimitConfig{})
	rec := do(app, http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	app = newApp(t, fakePinger{err: errors.New("connection refused")}, utils.RateLimitConfig{})
	rec = do(app, http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, fakePinger{}, utils.RateLimitConfig{})

	do(app, http.MethodGet, "/api/subcategories", "", "", "")
	rec := do(app, http.MethodGet, "/metrics", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `store_operations_total{operation="list",outcome="success",service="subcategory"} 1`)
	assert.Contains(t, body, "store_http_request_duration_seconds")
}

func TestAuthRateLimit(t *testing.T) {
	app := newApp(t, fakePinger{}, utils.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2})

	for i := 0; i < 2; i++ {
		rec := do(app, http.MethodPost, "/api/auth/logout", "", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(app, http.MethodPost, "/api/auth/logout", "", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Other routes are not limited.
	rec = do(app, http.MethodGet, "/api/subcategories", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRateLimitIgnoresForwardedHeadersByDefault(t *testing.T) {
	app := newApp(t, fakePinger{}, utils.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1})

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestAuthRateLimitBehindTrustedProxy(t *testing.T) {
	app := newAppWithConfig(t, fakePinger{}, &utils.Config{
		App:       utils.AppConfig{TrustProxy: true},
		RateLimit: utils.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1},
	})

	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, forwarded)
	}
}
