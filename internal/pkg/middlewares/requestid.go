package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"daylog.dev/backend/internal/constant"
	"daylog.dev/backend/internal/pkg/flog"
)

// RequestID repopulates the request id injected by the logger middleware chain
// into ctx.Locals so non-logging consumers can reach it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
