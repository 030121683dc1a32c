package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/anistreamdev/anistream/internal/container"
	handlers "github.com/anistreamdev/anistream/internal/interface/http"
	"github.com/anistreamdev/anistream/internal/interface/middleware"
)

// AdminModule wires the user-targeted privileged routes: listing users,
// role changes, premium grants and the audit log feed. Every route sits
// behind RequireAdmin, so an unauthorized request never reaches a handler.
type AdminModule struct {
	Handler *handlers.AdminHandler
}

func NewAdminModule(h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByUserID(), nil))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/logs", m.Handler.GetLogs)
		admin.POST("/users/:id/promote", m.Handler.Promote)
		admin.POST("/users/:id/demote", m.Handler.Demote)
		admin.POST("/users/:id/premium", m.Handler.GrantPremium)
		admin.DELETE("/users/:id/premium", m.Handler.RevokePremium)
	}
}
