package appentry

import (
	"time"

	"go.uber.org/fx"

	"daylog.dev/backend/internal/app/appconfig"
	"daylog.dev/backend/internal/app/appcontext"
	"daylog.dev/backend/internal/controller"
	"daylog.dev/backend/internal/infra"
	"daylog.dev/backend/internal/model/cache"
	"daylog.dev/backend/internal/pkg/logger"
	"daylog.dev/backend/internal/repo"
	"daylog.dev/backend/internal/server"
	"daylog.dev/backend/internal/service"
)

func ProvideOptions(ctx appcontext.Ctx) []fx.Option {
	opts := []fx.Option{
		// Misc
		fx.Supply(ctx),
		fx.Provide(appconfig.Parse),

		// Infrastructures
		infra.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// HTTP Server
		server.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(logger.Configure),
		fx.Invoke(infra.SentryInit),
		fx.Invoke(cache.Initialize),
		fx.WithLogger(logger.Fx),

		// Controllers
		controller.Module(),

		// fx Extra Options
		fx.StartTimeout(1 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return opts
}
