package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anistreamdev/anistream/internal/container"
	handlers "github.com/anistreamdev/anistream/internal/interface/http"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
)

// AnimeModule wires the catalog routes.
// Public: GET /api/animes, GET /api/animes/search, GET /api/animes/:id.
// Admin: POST /api/admin/animes, PUT/DELETE /api/admin/animes/:id,
// POST /api/admin/animes/:id/cover.
type AnimeModule struct {
	Handler *handlers.AnimeHandler
}

func NewAnimeModule(h *handlers.AnimeHandler) *AnimeModule {
	return &AnimeModule{Handler: h}
}

func (m *AnimeModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	animes := rg.Group("/animes")
	animes.Use(browseLimiter)
	{
		animes.GET("", m.Handler.List)
		animes.GET("/search", searchLimiter, m.Handler.Search)
		animes.GET("/:id", m.Handler.Detail)
	}

	cfg := container.GetConfig()
	admin := rg.Group("/admin/animes")
	admin.Use(middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByUserID(), nil))
	{
		admin.POST("", m.Handler.Upload)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/cover", m.Handler.UploadCover)
	}
}
