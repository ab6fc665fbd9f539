package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l4greenl/it-inventory/pkg/models"
	"github.com/l4greenl/it-inventory/pkg/roles"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(sessionUser *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	if sessionUser != nil {
		router.GET("/seed", func(c *gin.Context) {
			_ = SaveSession(c, sessionUser)
			c.Status(http.StatusOK)
		})
	}

	protected := router.Group("/api")
	protected.Use(RequireAuth(), Authorize(roles.Admin))
	protected.GET("/secret", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})

	return router
}

func sessionCookies(t *testing.T, router *gin.Engine) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/seed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	router := protectedRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/secret", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeRejectsNonAdmin(t *testing.T) {
	router := protectedRouter(&models.User{ID: 2, Username: "viewer", Role: "user"})
	cookies := sessionCookies(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/secret", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeAllowsAdmin(t *testing.T) {
	router := protectedRouter(&models.User{ID: 1, Username: "admin", Role: "admin"})
	cookies := sessionCookies(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/secret", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}
