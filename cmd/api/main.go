package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garagedesk/backend/internal/config"
	"github.com/garagedesk/backend/internal/db"
	"github.com/garagedesk/backend/internal/events"
	apphttp "github.com/garagedesk/backend/internal/http"
	"github.com/garagedesk/backend/internal/http/handlers"
	"github.com/garagedesk/backend/internal/repositories"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	apptRepo := repositories.NewAppointmentRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	auditService := services.NewAuditService(auditRepo, userRepo, publisher, cfg.AuditDefaultLimit, cfg.AuditMaxLimit, log)
	userService := services.NewUserService(userRepo, auditService, log)
	clientService := services.NewClientService(clientRepo, auditService, log)
	invoiceService := services.NewInvoiceService(invoiceRepo, clientRepo, auditService, log)
	apptService := services.NewAppointmentService(apptRepo, clientRepo, auditService, log)

	if err := userService.EnsureBootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("failed to bootstrap admin", zap.Error(err))
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg, log)
	userHandler := handlers.NewUserHandler(userService, log)
	clientHandler := handlers.NewClientHandler(clientService, log)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, log)
	apptHandler := handlers.NewAppointmentHandler(apptService, log)
	auditHandler := handlers.NewAuditHandler(auditService, log)
	auditFeed := handlers.NewAuditFeedHub(cfg, subscriber, log)

	// Start audit feed
	auditFeed.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, userRepo, authHandler, userHandler, clientHandler, invoiceHandler, apptHandler, auditHandler, auditFeed)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
