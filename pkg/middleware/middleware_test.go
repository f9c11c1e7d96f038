package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stempede-store/internal/data/entity"
	"stempede-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestIdentity(t *testing.T) {
	var gotUser, gotRole string
	handler := Identity(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = utils.GetUsernameFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UsernameHeader, " alice ")
	req.Header.Set(RoleHeader, "Customer")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "Customer", gotRole)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handler := Identity(zap.NewNop())(RequireRole(zap.NewNop(), entity.RoleStaff, entity.RoleManager)(okHandler))

	tests := []struct {
		role string
		want int
	}{
		{"Staff", http.StatusOK},
		{"manager", http.StatusOK},
		{"Customer", http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPut, "/", nil)
		req.Header.Set(UsernameHeader, "bob")
		req.Header.Set(RoleHeader, tt.role)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "role %q", tt.role)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS()(okHandler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/orders", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), UsernameHeader)
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(utils.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}, zap.NewNop())(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	other.RemoteAddr = "192.0.2.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(0.001, 1, time.Minute)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep.Store(now.UnixNano())

	for i := 0; i < 100; i++ {
		limiter.getLimiter(fmt.Sprintf("198.51.100.%d", i))
	}
	assert.Equal(t, 100, limiter.Len())

	// Spent bucket stays while the client is active.
	require.True(t, limiter.getLimiter("192.0.2.1").Allow())
	now = now.Add(45 * time.Second)
	assert.False(t, limiter.getLimiter("192.0.2.1").Allow())

	now = now.Add(30 * time.Second)
	limiter.getLimiter("192.0.2.1")
	assert.Equal(t, 1, limiter.Len())
	assert.False(t, limiter.getLimiter("192.0.2.1").Allow())
}

func TestRateLimiterSweepsOnlyAfterIdlePeriod(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 1, time.Minute)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep.Store(now.UnixNano())

	limiter.getLimiter("198.51.100.1")
	now = now.Add(61 * time.Second)
	limiter.getLimiter("198.51.100.2")
	assert.Equal(t, 1, limiter.Len())

	now = now.Add(30 * time.Second)
	limiter.getLimiter("198.51.100.3")
	assert.Equal(t, 2, limiter.Len())
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(utils.RateLimitConfig{Enabled: false}, zap.NewNop())(okHandler)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

type fakeObserver struct {
	status int
}

func (f *fakeObserver) ObserveRequest(method string, status int, duration time.Duration) {
	f.status = status
}

func TestLoggerObservesStatus(t *testing.T) {
	observer := &fakeObserver{}
	handler := Logger(zap.NewNop(), observer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, observer.status)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:443"
	assert.Equal(t, "203.0.113.9", ClientIP(req))

	req.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}
