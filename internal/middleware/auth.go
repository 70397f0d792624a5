package middleware

import (
	"strings"

	"github.com/garagedesk/backend/internal/audit"
	authpkg "github.com/garagedesk/backend/internal/auth"
	"github.com/garagedesk/backend/internal/config"
	"github.com/garagedesk/backend/internal/rbac"
	"github.com/garagedesk/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const CtxActor = "actor"

// AuthMiddleware verifies the bearer token, resolves the acting user record
// and stores a fully-populated audit actor (identity + request provenance)
// in Locals. Audit attribution freezes these values at write time, so the
// lookup happens here, per request, not lazily.
func AuthMiddleware(cfg *config.Config, userRepo *repositories.UserRepo, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := authpkg.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		u, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil || !u.Active {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown or inactive user"})
		}

		c.Locals(CtxActor, &audit.Actor{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Role:      u.Role,
			IPAddress: c.IP(),
			UserAgent: c.Get("User-Agent"),
		})

		return c.Next()
	}
}

// GetActor returns the resolved actor for the request, or nil when auth did
// not run.
func GetActor(c *fiber.Ctx) *audit.Actor {
	actor, _ := c.Locals(CtxActor).(*audit.Actor)
	return actor
}

// RequirePermission gates a route on the actor's role.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil || !rbac.HasPermission(actor.Role, permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}
