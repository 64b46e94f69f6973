package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------- Setup ---------------------

// setupGuardedRouter mirrors the production route layout: the admin
// lifecycle overrides behind Admin(), the user routes behind
// UserOrAdmin(). Handlers are stubs; only the guards are under test.
func setupGuardedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.LoadConfig()
	Init()

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }

	r := gin.New()
	auth := NewAuth()

	protected := r.Group("/")
	protected.Use(JWTAuthMiddleware())
	{
		admin := protected.Group("/admin")
		admin.Use(auth.Admin())
		{
			admin.POST("/applications/:id/release", ok)
			admin.POST("/applications/release", ok)
			admin.PUT("/applications/:id/progress", ok)
			admin.PUT("/applications/:id/reset", ok)
			admin.DELETE("/applications/:id", ok)
		}

		protected.GET("/users/:id", auth.UserOrAdmin(), ok)
	}
	return r
}

func issueToken(t *testing.T, userID uint, isAdmin bool) string {
	t.Helper()
	token, err := GenerateToken(userID, "tester", isAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func doAuthedRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var adminRoutes = []struct {
	method, path string
}{
	{http.MethodPost, "/admin/applications/1/release"},
	{http.MethodPost, "/admin/applications/release"},
	{http.MethodPut, "/admin/applications/1/progress"},
	{http.MethodPut, "/admin/applications/1/reset"},
	{http.MethodDelete, "/admin/applications/1"},
}

// --------------------- Admin ---------------------

func TestAdmin_RejectsNonAdminCredential(t *testing.T) {
	r := setupGuardedRouter(t)
	token := issueToken(t, 7, false)

	for _, rt := range adminRoutes {
		w := doAuthedRequest(r, rt.method, rt.path, token)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s should be forbidden without the admin claim", rt.method, rt.path)
	}
}

func TestAdmin_AllowsAdminCredential(t *testing.T) {
	r := setupGuardedRouter(t)
	token := issueToken(t, 1, true)

	for _, rt := range adminRoutes {
		w := doAuthedRequest(r, rt.method, rt.path, token)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s should pass for admins", rt.method, rt.path)
	}
}

func TestAdmin_RejectsMissingToken(t *testing.T) {
	r := setupGuardedRouter(t)

	w := doAuthedRequest(r, http.MethodPost, "/admin/applications/1/release", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_RejectsForgedToken(t *testing.T) {
	r := setupGuardedRouter(t)

	w := doAuthedRequest(r, http.MethodPost, "/admin/applications/1/release", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --------------------- UserOrAdmin ---------------------

func TestUserOrAdmin_AllowsOwner(t *testing.T) {
	r := setupGuardedRouter(t)
	token := issueToken(t, 7, false)

	w := doAuthedRequest(r, http.MethodGet, "/users/7", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserOrAdmin_RejectsOtherUser(t *testing.T) {
	r := setupGuardedRouter(t)
	token := issueToken(t, 7, false)

	w := doAuthedRequest(r, http.MethodGet, "/users/8", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserOrAdmin_AllowsAdminForAnyUser(t *testing.T) {
	r := setupGuardedRouter(t)
	token := issueToken(t, 1, true)

	w := doAuthedRequest(r, http.MethodGet, "/users/8", token)
	assert.Equal(t, http.StatusOK, w.Code)
}
