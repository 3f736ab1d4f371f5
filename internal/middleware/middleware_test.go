package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/gate"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type headerTokens struct{}

// SessionFromRequest treats an X-Test-Role header as a valid session.
func (headerTokens) SessionFromRequest(r *http.Request) (session.Session, bool) {
	role := r.Header.Get("X-Test-Role")
	if role == "" {
		return session.Session{}, false
	}
	return session.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Role:      models.UserRole(role),
		ExpiresAt: time.Now().Add(time.Hour),
	}, true
}

func gatedEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(Gate(gate.New(gate.Config{}), headerTokens{}, nil, zerolog.Nop()))

	whoami := func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		fromCtx, _ := session.FromContext(c.Request.Context())
		c.String(http.StatusOK, sess.UserID+"|"+fromCtx.UserID)
	}
	engine.GET("/", whoami)
	engine.GET("/auth/login", whoami)
	engine.GET("/dashboard", whoami)
	engine.POST("/dashboard/hotels", whoami)
	engine.GET("/api/healthz", whoami)
	engine.GET("/dashboard/users", RequireRoles(models.UserRoleAdmin, models.UserRoleManager), whoami)
	return engine
}

func serve(engine http.Handler, method, target, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	w := serve(gatedEngine(), http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/auth/login?callbackUrl=%2Fdashboard", w.Header().Get("Location"))
}

func TestGateUsesSeeOtherForFormPosts(t *testing.T) {
	w := serve(gatedEngine(), http.MethodPost, "/dashboard/hotels", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login?callbackUrl="))
}

func TestGateRedirectsSignedInAwayFromLogin(t *testing.T) {
	w := serve(gatedEngine(), http.MethodGet, "/auth/login", "staff")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestGateAttachesSession(t *testing.T) {
	w := serve(gatedEngine(), http.MethodGet, "/dashboard", "staff")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1|user-1", w.Body.String())

	w = serve(gatedEngine(), http.MethodGet, "/", "")
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestGateBypassesAPI(t *testing.T) {
	w := serve(gatedEngine(), http.MethodGet, "/api/healthz", "staff")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	engine := gatedEngine()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/dashboard/users", "manager").Code)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/dashboard/users", "receptionist").Code)

	bare := gin.New()
	bare.GET("/x", RequireRoles(models.UserRoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, serve(bare, http.MethodGet, "/x", "").Code)
}

type stubLimiter struct {
	allowed bool
	retry   time.Duration
	err     error
}

func (s stubLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return s.allowed, s.retry, s.err
}

func TestRateLimit(t *testing.T) {
	build := func(l Limiter) *gin.Engine {
		engine := gin.New()
		engine.POST("/auth/login", RateLimit(l, zerolog.Nop()), func(c *gin.Context) { c.Status(http.StatusOK) })
		return engine
	}

	w := serve(build(stubLimiter{allowed: false, retry: 1500 * time.Millisecond}), http.MethodPost, "/auth/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(build(stubLimiter{allowed: true}), http.MethodPost, "/auth/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(build(stubLimiter{err: errors.New("redis down")}), http.MethodPost, "/auth/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(build(nil), http.MethodPost, "/auth/login", "").Code)
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(zerolog.Nop()))
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://app.example"}))
	engine.GET("/api/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/healthz", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
