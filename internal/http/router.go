package http

import (
	"time"

	"github.com/garagedesk/backend/internal/config"
	"github.com/garagedesk/backend/internal/http/handlers"
	"github.com/garagedesk/backend/internal/middleware"
	"github.com/garagedesk/backend/internal/rbac"
	"github.com/garagedesk/backend/internal/repositories"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	userRepo *repositories.UserRepo,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	clientHandler *handlers.ClientHandler,
	invoiceHandler *handlers.InvoiceHandler,
	apptHandler *handlers.AppointmentHandler,
	auditHandler *handlers.AuditHandler,
	auditFeed *handlers.AuditFeedHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Auth (public)
	api.Post("/auth/login", authHandler.Login)

	registerProtectedRoutes(api, middleware.AuthMiddleware(cfg, userRepo, log),
		authHandler, userHandler, clientHandler, invoiceHandler, apptHandler, auditHandler)

	// WebSocket audit feed
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(auditFeed.HandleWS))
}

// registerProtectedRoutes wires every authenticated endpoint. Permission
// checks go on each route, never on a group: fiber group middleware matches
// by path prefix, so a group-level gate on /clients would also intercept
// sibling routes like /clients/:id/status that carry a different permission.
func registerProtectedRoutes(
	api fiber.Router,
	authMW fiber.Handler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	clientHandler *handlers.ClientHandler,
	invoiceHandler *handlers.InvoiceHandler,
	apptHandler *handlers.AppointmentHandler,
	auditHandler *handlers.AuditHandler,
) {
	protected := api.Group("", authMW)

	protected.Get("/me", authHandler.GetMe)

	// Clients
	manageClients := middleware.RequirePermission(rbac.PermManageClients)
	clients := protected.Group("/clients")
	clients.Post("/", manageClients, clientHandler.CreateClient)
	clients.Get("/", manageClients, clientHandler.ListClients)
	clients.Get("/:id", manageClients, clientHandler.GetClient)
	clients.Put("/:id", manageClients, clientHandler.UpdateClient)
	clients.Delete("/:id", manageClients, clientHandler.DeleteClient)
	clients.Post("/:id/restore", manageClients, clientHandler.RestoreClient)
	clients.Post("/:id/payment", middleware.RequirePermission(rbac.PermRecordPayments), clientHandler.UpdatePayment)
	clients.Post("/:id/delivery", manageClients, clientHandler.MarkDelivered)

	// Status moves are the one client operation mechanics may perform.
	clients.Post("/:id/status", middleware.RequirePermission(rbac.PermUpdateRepairStatus), clientHandler.ChangeStatus)

	// Invoices
	manageInvoices := middleware.RequirePermission(rbac.PermManageInvoices)
	invoices := protected.Group("/invoices")
	invoices.Post("/", manageInvoices, invoiceHandler.CreateInvoice)
	invoices.Get("/", manageInvoices, invoiceHandler.ListInvoices)
	invoices.Get("/:id", manageInvoices, invoiceHandler.GetInvoice)
	invoices.Put("/:id", manageInvoices, invoiceHandler.UpdateInvoice)
	invoices.Delete("/:id", manageInvoices, invoiceHandler.DeleteInvoice)

	// Appointments
	manageAppts := middleware.RequirePermission(rbac.PermManageAppointments)
	appts := protected.Group("/appointments")
	appts.Post("/", manageAppts, apptHandler.CreateAppointment)
	appts.Get("/", manageAppts, apptHandler.ListAppointments)
	appts.Get("/:id", manageAppts, apptHandler.GetAppointment)
	appts.Put("/:id", manageAppts, apptHandler.UpdateAppointment)
	appts.Delete("/:id", manageAppts, apptHandler.DeleteAppointment)

	// Users (admin)
	manageUsers := middleware.RequirePermission(rbac.PermManageUsers)
	users := protected.Group("/users")
	users.Post("/", manageUsers, userHandler.CreateUser)
	users.Get("/", manageUsers, userHandler.ListUsers)
	users.Put("/:id", manageUsers, userHandler.UpdateUser)
	users.Delete("/:id", manageUsers, userHandler.DeleteUser)

	// Audit history. The entity path is the contract the history viewer uses.
	viewAudit := middleware.RequirePermission(rbac.PermViewAuditLogs)
	protected.Get("/entities/:entityType/:entityId/audit-logs", viewAudit, auditHandler.GetEntityAuditLogs)
	users.Get("/:id/audit-logs", viewAudit, auditHandler.GetUserAuditLogs)
}
