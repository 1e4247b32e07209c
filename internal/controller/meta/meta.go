package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	modelcache "daylog.dev/backend/internal/model/cache"
	"daylog.dev/backend/internal/pkg/bininfo"
	"daylog.dev/backend/internal/server/svr"
	"daylog.dev/backend/internal/service"
	"daylog.dev/backend/internal/util/rekuest"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	meta.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)

	meta.Post("/purge", c.PurgeCache)
}

type PurgeCacheRequest struct {
	Name string `json:"name" validate:"required"`
}

// PurgeCache flushes one named redis cache, e.g. after a provider backfill
// rewrites history that summaries were computed from.
func (c *Meta) PurgeCache(ctx *fiber.Ctx) error {
	var request PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	return modelcache.Delete(request.Name)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}
