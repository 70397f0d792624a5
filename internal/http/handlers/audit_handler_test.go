package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/garagedesk/backend/internal/audit"
	"github.com/garagedesk/backend/internal/events"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memAuditStore struct {
	entries []models.AuditEntry
}

func (s *memAuditStore) Append(_ context.Context, entry models.AuditEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memAuditStore) ListByEntity(_ context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.entries[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memAuditStore) ListByActor(_ context.Context, userID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if s.entries[i].UserID == userID {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

type emptyUserDirectory struct{}

func (emptyUserDirectory) GetByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, fmt.Errorf("user not found")
}

func newAuditTestApp(store *memAuditStore) *fiber.App {
	svc := services.NewAuditService(store, emptyUserDirectory{}, events.NopPublisher{}, 50, 500, zap.NewNop())
	h := NewAuditHandler(svc, zap.NewNop())

	app := fiber.New()
	app.Get("/entities/:entityType/:entityId/audit-logs", h.GetEntityAuditLogs)
	app.Get("/users/:id/audit-logs", h.GetUserAuditLogs)
	return app
}

func seedEntries(store *memAuditStore, entityID uuid.UUID, n int) {
	actor := &audit.Actor{ID: uuid.New(), FirstName: "Test", LastName: "Mechanic", Role: "mechanic"}
	svc := services.NewAuditService(store, emptyUserDirectory{}, events.NopPublisher{}, 50, 500, zap.NewNop())
	for i := 0; i < n; i++ {
		svc.LogStatusChange(context.Background(), actor, entityID, "waiting", "in_progress", services.StatusKindRepair)
	}
}

func TestGetEntityAuditLogsEndpoint(t *testing.T) {
	store := &memAuditStore{}
	clientID := uuid.New()
	seedEntries(store, clientID, 3)
	app := newAuditTestApp(store)

	req := httptest.NewRequest("GET", "/entities/client/"+clientID.String()+"/audit-logs", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		AuditLogs []map[string]any `json:"auditLogs"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(payload.AuditLogs) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(payload.AuditLogs))
	}

	e := payload.AuditLogs[0]
	for _, key := range []string{"id", "entityType", "entityId", "action", "userId", "userName", "userRole", "changes", "timestamp"} {
		if _, ok := e[key]; !ok {
			t.Errorf("response entry missing %q: %v", key, e)
		}
	}
	if e["action"] != "status_change" {
		t.Errorf("expected action status_change, got %v", e["action"])
	}
	if e["entityType"] != "client" {
		t.Errorf("expected entityType client, got %v", e["entityType"])
	}
}

func TestGetEntityAuditLogsEndpointLimit(t *testing.T) {
	store := &memAuditStore{}
	clientID := uuid.New()
	seedEntries(store, clientID, 5)
	app := newAuditTestApp(store)

	req := httptest.NewRequest("GET", "/entities/client/"+clientID.String()+"/audit-logs?limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		AuditLogs []json.RawMessage `json:"auditLogs"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(payload.AuditLogs) != 2 {
		t.Errorf("expected 2 entries with limit=2, got %d", len(payload.AuditLogs))
	}
}

func TestGetEntityAuditLogsEndpointUnknownType(t *testing.T) {
	app := newAuditTestApp(&memAuditStore{})

	req := httptest.NewRequest("GET", "/entities/vehicle/"+uuid.NewString()+"/audit-logs", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for unknown entity type, got %d", resp.StatusCode)
	}
}

func TestGetEntityAuditLogsEndpointBadID(t *testing.T) {
	app := newAuditTestApp(&memAuditStore{})

	req := httptest.NewRequest("GET", "/entities/client/not-a-uuid/audit-logs", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for bad uuid, got %d", resp.StatusCode)
	}
}

func TestGetEntityAuditLogsEndpointEmpty(t *testing.T) {
	app := newAuditTestApp(&memAuditStore{})

	req := httptest.NewRequest("GET", "/entities/client/"+uuid.NewString()+"/audit-logs", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	// the viewer contract: always a JSON array, never null
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if string(payload["auditLogs"]) != "[]" {
		t.Errorf("expected empty array, got %s", payload["auditLogs"])
	}
}

func TestGetUserAuditLogsEndpoint(t *testing.T) {
	store := &memAuditStore{}
	actor := &audit.Actor{ID: uuid.New(), FirstName: "Test", LastName: "Admin", Role: "admin"}
	svc := services.NewAuditService(store, emptyUserDirectory{}, events.NopPublisher{}, 50, 500, zap.NewNop())
	svc.LogClientCreation(context.Background(), actor, uuid.New(), map[string]any{"name": "Ana"})
	app := newAuditTestApp(store)

	req := httptest.NewRequest("GET", "/users/"+actor.ID.String()+"/audit-logs", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		AuditLogs []map[string]any `json:"auditLogs"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(payload.AuditLogs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(payload.AuditLogs))
	}
	if payload.AuditLogs[0]["userName"] != "Test Admin" {
		t.Errorf("expected frozen userName, got %v", payload.AuditLogs[0]["userName"])
	}
}
