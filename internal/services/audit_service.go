package services

import (
	"context"
	"time"

	"github.com/garagedesk/backend/internal/audit"
	"github.com/garagedesk/backend/internal/events"
	"github.com/garagedesk/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status kinds for LogStatusChange.
const (
	StatusKindRepair  = "repair"
	StatusKindPayment = "payment"
)

// AuditStore is the append-only persistence the audit service writes to.
type AuditStore interface {
	Append(ctx context.Context, entry models.AuditEntry) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditEntry, error)
	ListByActor(ctx context.Context, userID uuid.UUID, limit int) ([]models.AuditEntry, error)
}

// UserDirectory is the live user lookup used to enrich entries at read time.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuditEvent is one semantic event to record.
type AuditEvent struct {
	EntityType string
	EntityID   uuid.UUID
	Action     string
	Changes    []models.Change
	Metadata   map[string]any
}

// AuditService records immutable history entries for business mutations and
// serves bounded history reads. None of its write methods return an error:
// audit logging must never fail the business operation that triggered it, so
// every failure is logged locally and swallowed. Reads are fail-soft the same
// way and return an empty slice on storage errors.
type AuditService struct {
	store        AuditStore
	users        UserDirectory
	publisher    events.Publisher
	defaultLimit int
	maxLimit     int
	log          *zap.Logger
}

func NewAuditService(store AuditStore, users UserDirectory, publisher events.Publisher, defaultLimit, maxLimit int, log *zap.Logger) *AuditService {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	if maxLimit < defaultLimit {
		maxLimit = 500
	}
	return &AuditService{
		store:        store,
		users:        users,
		publisher:    publisher,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		log:          log,
	}
}

// LogEvent normalizes and persists one audit entry. Actor identity is frozen
// onto the entry at write time; if the actor is unresolved the event is
// dropped with a warning.
func (s *AuditService) LogEvent(ctx context.Context, actor *audit.Actor, ev AuditEvent) {
	if !actor.Resolved() {
		s.log.Warn("audit event dropped: unresolved actor",
			zap.String("entity_type", ev.EntityType),
			zap.String("action", ev.Action))
		return
	}

	entry, err := models.NewAuditEntry(ev.EntityType, ev.EntityID, ev.Action, ev.Changes, ev.Metadata)
	if err != nil {
		s.log.Warn("audit event dropped", zap.Error(err))
		return
	}
	entry.UserID = actor.ID
	entry.UserName = actor.DisplayName()
	entry.UserRole = actor.Role
	entry.IPAddress = actor.IPAddress
	entry.UserAgent = actor.UserAgent

	if err := s.store.Append(ctx, entry); err != nil {
		s.log.Error("audit append failed",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID.String()),
			zap.String("action", entry.Action),
			zap.Error(err))
		return
	}

	_ = s.publisher.Publish(ctx, events.ChannelAudit, events.Event{
		Type: events.EventAuditLogged,
		Payload: map[string]any{
			"entityType": entry.EntityType,
			"entityId":   entry.EntityID.String(),
			"action":     entry.Action,
			"userName":   entry.UserName,
			"timestamp":  entry.Timestamp,
		},
	})
}

// LogClientCreation records a client create with the key identifying fields
// as metadata.
func (s *AuditService) LogClientCreation(ctx context.Context, actor *audit.Actor, clientID uuid.UUID, snapshot map[string]any) {
	metadata := map[string]any{}
	for _, key := range []string{"name", "phone", "carMake", "carModel"} {
		if v, ok := snapshot[key]; ok {
			metadata[key] = v
		}
	}
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: models.AuditEntityClient,
		EntityID:   clientID,
		Action:     models.AuditActionCreate,
		Metadata:   metadata,
	})
}

// LogClientUpdate diffs the tracked client fields and records the deltas
// together with the list of changed field names.
func (s *AuditService) LogClientUpdate(ctx context.Context, actor *audit.Actor, clientID uuid.UUID, oldSnap, newSnap map[string]any) {
	changes := audit.DetectChanges(oldSnap, newSnap, audit.ClientTrackedFields)
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: models.AuditEntityClient,
		EntityID:   clientID,
		Action:     models.AuditActionUpdate,
		Changes:    changes,
		Metadata:   map[string]any{"changedFields": audit.ChangedFieldNames(changes)},
	})
}

// LogClientDeletion records a delete with a snapshot of the client at
// deletion time.
func (s *AuditService) LogClientDeletion(ctx context.Context, actor *audit.Actor, clientID uuid.UUID, snapshot map[string]any) {
	metadata := map[string]any{"deletedAt": time.Now().UTC().Format(time.RFC3339)}
	for k, v := range snapshot {
		metadata[k] = v
	}
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: models.AuditEntityClient,
		EntityID:   clientID,
		Action:     models.AuditActionDelete,
		Metadata:   metadata,
	})
}

func (s *AuditService) LogClientRestoration(ctx context.Context, actor *audit.Actor, clientID uuid.UUID) {
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: models.AuditEntityClient,
		EntityID:   clientID,
		Action:     models.AuditActionRestore,
		Metadata:   map[string]any{"restoredAt": time.Now().UTC().Format(time.RFC3339)},
	})
}

// LogStatusChange records a repair- or payment-status transition as a single
// change on the field "<kind>Status".
func (s *AuditService) LogStatusChange(ctx context.Context, actor *audit.Actor, clientID uuid.UUID, oldStatus, newStatus, statusKind string) {
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: models.AuditEntityClient,
		EntityID:   clientID,
		Action:     models.AuditActionStatusChange,
		Changes: []models.Change{{
			Field:    statusKind + "Status",
			OldValue: oldStatus,
			NewValue: newStatus,
		}},
		Metadata: map[string]any{
			"statusType": statusKind,
			"changedAt":  time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// LogPaymentUpdate diffs only the payment fields; payment changes carry their
// own semantic action so the viewer can separate money history from repairs.
func (s *AuditService) LogPaymentUpdate(ctx context.Context, actor *audit.Actor, clientID uuid.UUID, oldPay, newPay map[string]any) {
	changes := audit.DetectChanges(oldPay, newPay, audit.PaymentTrackedFields)
	metadata := map[string]any{}
	if v, ok := newPay["paymentMethod"]; ok {
		metadata["paymentMethod"] = v
	}
	if v, ok := newPay["paymentDate"]; ok {
		metadata["paymentDate"] = v
	}
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: models.AuditEntityClient,
		EntityID:   clientID,
		Action:     models.AuditActionPaymentUpdate,
		Changes:    changes,
		Metadata:   metadata,
	})
}

// LogDelivery records the vehicle hand-over.
func (s *AuditService) LogDelivery(ctx context.Context, actor *audit.Actor, clientID uuid.UUID, delivery map[string]any) {
	metadata := map[string]any{"deliveredAt": time.Now().UTC().Format(time.RFC3339)}
	for k, v := range delivery {
		metadata[k] = v
	}
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: models.AuditEntityClient,
		EntityID:   clientID,
		Action:     models.AuditActionDelivery,
		Metadata:   metadata,
	})
}

// LogCreation, LogUpdate and LogDeletion are the generic wrappers used for
// invoices, appointments and users.
func (s *AuditService) LogCreation(ctx context.Context, actor *audit.Actor, entityType string, entityID uuid.UUID, snapshot map[string]any) {
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     models.AuditActionCreate,
		Metadata:   snapshot,
	})
}

func (s *AuditService) LogUpdate(ctx context.Context, actor *audit.Actor, entityType string, entityID uuid.UUID, oldSnap, newSnap map[string]any, tracked []string) {
	changes := audit.DetectChanges(oldSnap, newSnap, tracked)
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     models.AuditActionUpdate,
		Changes:    changes,
		Metadata:   map[string]any{"changedFields": audit.ChangedFieldNames(changes)},
	})
}

func (s *AuditService) LogDeletion(ctx context.Context, actor *audit.Actor, entityType string, entityID uuid.UUID, snapshot map[string]any) {
	metadata := map[string]any{"deletedAt": time.Now().UTC().Format(time.RFC3339)}
	for k, v := range snapshot {
		metadata[k] = v
	}
	s.LogEvent(ctx, actor, AuditEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     models.AuditActionDelete,
		Metadata:   metadata,
	})
}

// GetEntityAuditLogs returns at most limit entries for one entity, newest
// first, with a display-only actor enrichment from the live user record. The
// frozen userName/userRole on each entry stay authoritative.
func (s *AuditService) GetEntityAuditLogs(ctx context.Context, entityType string, entityID uuid.UUID, limit int) []models.AuditEntry {
	if !models.IsValidAuditEntityType(entityType) {
		return []models.AuditEntry{}
	}
	entries, err := s.store.ListByEntity(ctx, entityType, entityID, s.clampLimit(limit))
	if err != nil {
		s.log.Error("audit read failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
		return []models.AuditEntry{}
	}
	s.enrichActors(ctx, entries)
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return entries
}

// GetUserAuditLogs returns the newest entries where the given user was the
// actor, across all entity types. The actor is not re-enriched here: the
// caller queried by that user already.
func (s *AuditService) GetUserAuditLogs(ctx context.Context, userID uuid.UUID, limit int) []models.AuditEntry {
	entries, err := s.store.ListByActor(ctx, userID, s.clampLimit(limit))
	if err != nil {
		s.log.Error("audit read failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return []models.AuditEntry{}
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return entries
}

func (s *AuditService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func (s *AuditService) enrichActors(ctx context.Context, entries []models.AuditEntry) {
	cache := make(map[uuid.UUID]*models.ActorRef)
	for i := range entries {
		id := entries[i].UserID
		if ref, ok := cache[id]; ok {
			entries[i].Actor = ref
			continue
		}
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			// deleted or unknown user; the frozen name on the entry still stands
			cache[id] = nil
			continue
		}
		ref := &models.ActorRef{ID: u.ID, Name: (&audit.Actor{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}).DisplayName(), Email: u.Email}
		cache[id] = ref
		entries[i].Actor = ref
	}
}
