package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"local_services/internal/domain"
	"local_services/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usersByID map[uint]*domain.User

func (u usersByID) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, domain.NotFound("user not found")
}

func serve(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func whoami(c *gin.Context) {
	id, ok := CurrentUserID(c)
	c.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok, "role": CurrentRole(c)})
}

func TestJWTMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/required", JWTAuthMiddleware("secret"), whoami)
	r.GET("/optional", OptionalJWTMiddleware("secret"), whoami)

	token, err := utils.GenerateJWT(7, domain.RoleProvider, "secret")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/required", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/required", "garbage").Code)

	w := serve(r, "/required", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"authenticated":true,"role":"provider"}`, w.Body.String())

	w = serve(r, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"authenticated":false,"role":""}`, w.Body.String())

	w = serve(r, "/optional", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"authenticated":false,"role":""}`, w.Body.String())
}

func TestAdminOnlyChecksStoredRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := usersByID{
		1: {ID: 1, Role: domain.RoleAdmin, Status: domain.StatusActive},
		2: {ID: 2, Role: domain.RoleCustomer, Status: domain.StatusActive},
		3: {ID: 3, Role: domain.RoleAdmin, Status: domain.StatusInactive},
	}
	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware("secret"), AdminOnlyMiddleware(users), whoami)

	for id, want := range map[uint]int{1: http.StatusOK, 2: http.StatusForbidden, 3: http.StatusForbidden, 4: http.StatusForbidden} {
		// A forged admin role in the token is not enough
		token, err := utils.GenerateJWT(id, domain.RoleAdmin, "secret")
		require.NoError(t, err)
		assert.Equal(t, want, serve(r, "/admin", token).Code, "user %d", id)
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(2).Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, "/", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "/", "").Code)

	unlimited := gin.New()
	unlimited.Use(NewRateLimiter(0).Middleware())
	unlimited.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, serve(unlimited, "/", "").Code)
	}
}

func TestRequestIDAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, "/ok", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = serve(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	now := start
	l := NewRateLimiter(10)
	l.now = func() time.Time { return now }

	l.get("10.0.0.1")
	l.get("10.0.0.2")
	assert.Equal(t, 2, l.size())

	now = start.Add(5 * time.Minute)
	l.get("10.0.0.2") // keeps .2 fresh
	assert.Equal(t, 2, l.size())

	now = start.Add(11 * time.Minute)
	l.get("10.0.0.3")
	assert.Equal(t, 2, l.size(), ".1 was idle past the TTL")

	now = start.Add(30 * time.Minute)
	l.get("10.0.0.3")
	assert.Equal(t, 1, l.size())
}
