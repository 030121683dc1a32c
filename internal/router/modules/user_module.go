package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/anistreamdev/anistream/internal/container"
	handlers "github.com/anistreamdev/anistream/internal/interface/http"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
)

// UserModule wires the authenticated self-service surface: the profile read
// and the favorites watchlist.
// Protected: GET /api/profile, GET/POST /api/favorites,
// DELETE /api/favorites/:animeID.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	auth := rg.Group("/")
	auth.Use(middleware.RequireUser())
	auth.Use(middleware.RateLimit(container.GetRedis(), cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.GET("/favorites", m.Handler.GetFavorites)
		auth.POST("/favorites", m.Handler.AddFavorite)
		auth.DELETE("/favorites/:animeID", m.Handler.RemoveFavorite)
	}
}
