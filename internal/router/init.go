package router

import (
	"github.com/anistreamdev/anistream/internal/application"
	"github.com/anistreamdev/anistream/internal/container"
	pginfra "github.com/anistreamdev/anistream/internal/infrastructure/postgres"
	handlers "github.com/anistreamdev/anistream/internal/interface/http"
	"github.com/anistreamdev/anistream/internal/router/modules"
	"github.com/anistreamdev/anistream/pkg/helpers"
)

// Deps holds the wired repository/service/handler graph so callers (and
// tests) can reach into any layer after startup.
type Deps struct {
	AnimeHandler *handlers.AnimeHandler
	UserHandler  *handlers.UserHandler
	AdminHandler *handlers.AdminHandler
	AuthHandler  *handlers.AuthHandler
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	store := container.GetStore()

	animeRepo := pginfra.NewAnimeRepository(store)
	userRepo := pginfra.NewUserRepository(store)
	favoriteRepo := pginfra.NewFavoriteRepository(store)
	logRepo := pginfra.NewAdminLogRepository(store)

	audit := application.NewAuditRecorder(logRepo, container.GetRabbitPub(), logger)

	animeSvc := application.NewAnimeService(
		animeRepo, audit,
		container.GetES(), cfg.ESAnimeIndex,
		container.GetGCS(), cfg.GCSBucket,
		logger,
	)
	userSvc := application.NewUserService(userRepo, favoriteRepo, animeRepo, logger)
	adminSvc := application.NewAdminService(userRepo, logRepo, audit, container.GetRedis(), logger, cfg.PremiumDefaultTTL)
	authSvc := application.NewAuthService(userRepo, container.GetOAuth(), container.GetJWT(), container.GetRedis(), logger, cfg.OwnerOpenID)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	return Deps{
		AnimeHandler: handlers.NewAnimeHandler(animeSvc, logger),
		UserHandler:  handlers.NewUserHandler(userSvc, logger),
		AdminHandler: handlers.NewAdminHandler(adminSvc, logger),
		AuthHandler:  handlers.NewAuthHandler(authSvc, userSvc, cookies, logger),
	}
}

// InitModules wires all feature modules into the registry. Called once at
// startup after the container singletons are set.
func InitModules(r *Registry) {
	deps := buildDeps()

	r.Add(modules.NewAuthModule(deps.AuthHandler))
	r.Add(modules.NewAnimeModule(deps.AnimeHandler))
	r.Add(modules.NewUserModule(deps.UserHandler))
	r.Add(modules.NewAdminModule(deps.AdminHandler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
