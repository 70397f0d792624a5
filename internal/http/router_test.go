package http

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/garagedesk/backend/internal/audit"
	"github.com/garagedesk/backend/internal/config"
	"github.com/garagedesk/backend/internal/events"
	"github.com/garagedesk/backend/internal/http/handlers"
	"github.com/garagedesk/backend/internal/middleware"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/rbac"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type routerAuditStore struct {
	entries []models.AuditEntry
}

func (s *routerAuditStore) Append(_ context.Context, entry models.AuditEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *routerAuditStore) ListByEntity(context.Context, string, uuid.UUID, int) ([]models.AuditEntry, error) {
	return nil, nil
}

func (s *routerAuditStore) ListByActor(context.Context, uuid.UUID, int) ([]models.AuditEntry, error) {
	return nil, nil
}

type routerUserDir struct{}

func (routerUserDir) GetByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, fmt.Errorf("user not found")
}

type routerClientStore struct {
	clients map[uuid.UUID]*models.Client
}

func (s *routerClientStore) Create(_ context.Context, c *models.Client) error {
	c.ID = uuid.New()
	s.clients[c.ID] = c
	return nil
}

func (s *routerClientStore) GetByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *c
	return &cp, nil
}

func (s *routerClientStore) List(context.Context, bool, int, int) ([]models.Client, error) {
	return nil, nil
}

func (s *routerClientStore) Update(_ context.Context, c *models.Client) error {
	s.clients[c.ID] = c
	return nil
}

func (s *routerClientStore) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	if c, ok := s.clients[id]; ok {
		c.DeletedAt = &at
	}
	return nil
}

func (s *routerClientStore) Restore(_ context.Context, id uuid.UUID) error {
	if c, ok := s.clients[id]; ok {
		c.DeletedAt = nil
	}
	return nil
}

type routerUserStore struct{}

func (routerUserStore) Create(context.Context, *models.User) error { return nil }
func (routerUserStore) GetByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, fmt.Errorf("not found")
}
func (routerUserStore) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, fmt.Errorf("not found")
}
func (routerUserStore) List(context.Context) ([]models.User, error) { return nil, nil }
func (routerUserStore) Update(context.Context, *models.User) error  { return nil }
func (routerUserStore) Count(context.Context) (int, error)          { return 0, nil }

// actorMiddleware stands in for the jwt auth layer: it plants a resolved
// actor with the given role so the permission gates are exercised directly.
func actorMiddleware(role string) fiber.Handler {
	actor := &audit.Actor{
		ID:        uuid.New(),
		FirstName: "Route",
		LastName:  "Tester",
		Role:      role,
		IPAddress: "127.0.0.1",
	}
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.CtxActor, actor)
		return c.Next()
	}
}

func newRouterTestApp(role string, clientStore *routerClientStore) *fiber.App {
	log := zap.NewNop()
	cfg := &config.Config{JWTSecret: "test"}

	auditSvc := services.NewAuditService(&routerAuditStore{}, routerUserDir{}, events.NopPublisher{}, 50, 500, log)
	userSvc := services.NewUserService(routerUserStore{}, auditSvc, log)
	clientSvc := services.NewClientService(clientStore, auditSvc, log)

	app := fiber.New()
	api := app.Group("/api/v1")
	registerProtectedRoutes(api, actorMiddleware(role),
		handlers.NewAuthHandler(userSvc, cfg, log),
		handlers.NewUserHandler(userSvc, log),
		handlers.NewClientHandler(clientSvc, log),
		handlers.NewInvoiceHandler(nil, log),
		handlers.NewAppointmentHandler(nil, log),
		handlers.NewAuditHandler(auditSvc, log))
	return app
}

func seedClient(store *routerClientStore, status string) uuid.UUID {
	id := uuid.New()
	store.clients[id] = &models.Client{
		ID:            id,
		Name:          "Ana",
		Phone:         "555-0101",
		RepairStatus:  status,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	return id
}

func TestMechanicCanChangeRepairStatus(t *testing.T) {
	store := &routerClientStore{clients: map[uuid.UUID]*models.Client{}}
	clientID := seedClient(store, models.RepairStatusWaiting)
	app := newRouterTestApp(rbac.RoleMechanic, store)

	body := `{"status_type":"repair","status":"in_progress"}`
	req := httptest.NewRequest("POST", "/api/v1/clients/"+clientID.String()+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("mechanic blocked from status route: got %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if got := store.clients[clientID].RepairStatus; got != models.RepairStatusInProgress {
		t.Errorf("repair status not updated: got %s", got)
	}
}

func TestMechanicCannotManageClients(t *testing.T) {
	store := &routerClientStore{clients: map[uuid.UUID]*models.Client{}}
	clientID := seedClient(store, models.RepairStatusWaiting)
	app := newRouterTestApp(rbac.RoleMechanic, store)

	requests := []struct {
		name   string
		method string
		path   string
	}{
		{"create client", "POST", "/api/v1/clients/"},
		{"list clients", "GET", "/api/v1/clients/"},
		{"update client", "PUT", "/api/v1/clients/" + clientID.String()},
		{"delete client", "DELETE", "/api/v1/clients/" + clientID.String()},
		{"record payment", "POST", "/api/v1/clients/" + clientID.String() + "/payment"},
		{"user audit logs", "GET", "/api/v1/users/" + uuid.NewString() + "/audit-logs"},
	}

	for _, tt := range requests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusForbidden {
				t.Errorf("expected 403 for mechanic, got %d", resp.StatusCode)
			}
		})
	}
}

func TestReceptionistStatusRouteForbidden(t *testing.T) {
	store := &routerClientStore{clients: map[uuid.UUID]*models.Client{}}
	clientID := seedClient(store, models.RepairStatusWaiting)
	app := newRouterTestApp(rbac.RoleReceptionist, store)

	body := `{"status_type":"repair","status":"in_progress"}`
	req := httptest.NewRequest("POST", "/api/v1/clients/"+clientID.String()+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("expected 403 for receptionist on status route, got %d", resp.StatusCode)
	}
}

func TestAdminReachesUserAuditLogs(t *testing.T) {
	store := &routerClientStore{clients: map[uuid.UUID]*models.Client{}}
	app := newRouterTestApp(rbac.RoleAdmin, store)

	req := httptest.NewRequest("GET", "/api/v1/users/"+uuid.NewString()+"/audit-logs", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 for admin, got %d", resp.StatusCode)
	}
}

func TestReceptionistCanManageClients(t *testing.T) {
	store := &routerClientStore{clients: map[uuid.UUID]*models.Client{}}
	app := newRouterTestApp(rbac.RoleReceptionist, store)

	body := `{"name":"Ana","phone":"555-0101","car_make":"Volvo","car_model":"V60","issue_description":"brakes"}`
	req := httptest.NewRequest("POST", "/api/v1/clients/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Errorf("expected 201 for receptionist creating a client, got %d", resp.StatusCode)
	}
}
