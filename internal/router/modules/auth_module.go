package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anistreamdev/anistream/internal/container"
	handlers "github.com/anistreamdev/anistream/internal/interface/http"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
)

// AuthModule wires the OAuth login flow and session lifecycle.
// Public: GET /api/auth/login, GET /api/auth/callback, GET /api/auth/me,
// POST /api/auth/refresh. Protected: POST /api/auth/logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	{
		auth.GET("/login", loginLimiter, m.Handler.Login)
		auth.GET("/callback", loginLimiter, m.Handler.Callback)
		auth.GET("/me", m.Handler.Me)
		auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)
		auth.POST("/logout", m.Handler.Logout)
	}
}
