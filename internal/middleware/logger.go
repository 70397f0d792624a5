package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoggerMiddleware logs one line per request. When auth resolved a staff
// account the line carries who acted, mirroring the attribution the audit
// trail records.
func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		reqID, _ := c.Locals(CtxRequestID).(string)
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if actor := GetActor(c); actor != nil {
			fields = append(fields,
				zap.String("actor", actor.Email),
				zap.String("actor_role", actor.Role))
		}
		log.Info("request", fields...)

		return err
	}
}
