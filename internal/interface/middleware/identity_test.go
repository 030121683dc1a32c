package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/anistreamdev/anistream/internal/domain/entity"
)

func performRequest(t *testing.T, identity *Identity, gate gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) {
			SetIdentity(c, *identity)
			c.Next()
		})
	}
	r.GET("/guarded", gate, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdminAnonymous(t *testing.T) {
	w := performRequest(t, nil, RequireAdmin())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminNonAdmin(t *testing.T) {
	id := Identity{UserID: 1, Role: entity.RoleUser}
	w := performRequest(t, &id, RequireAdmin())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	id := Identity{UserID: 1, Role: entity.RoleAdmin}
	w := performRequest(t, &id, RequireAdmin())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireUserAnonymous(t *testing.T) {
	w := performRequest(t, nil, RequireUser())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserAllowsAnyRole(t *testing.T) {
	id := Identity{UserID: 2, Role: entity.RoleUser}
	w := performRequest(t, &id, RequireUser())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentifyWithoutCookieStaysAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Identify(nil, nil))
	r.GET("/whoami", func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); ok {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, "no cookie means anonymous, not an error")
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, Identity{Role: entity.RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: entity.RoleUser}.IsAdmin())
	assert.False(t, Identity{}.IsAdmin())
}
