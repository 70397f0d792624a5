package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entity types that can carry an audit trail.
const (
	AuditEntityClient      = "client"
	AuditEntityInvoice     = "invoice"
	AuditEntityAppointment = "appointment"
	AuditEntityUser        = "user"
)

// Semantic actions. status_change and payment_update are specializations of
// update surfaced separately so the history viewer can render them distinctly.
const (
	AuditActionCreate        = "create"
	AuditActionUpdate        = "update"
	AuditActionDelete        = "delete"
	AuditActionRestore       = "restore"
	AuditActionStatusChange  = "status_change"
	AuditActionPaymentUpdate = "payment_update"
	AuditActionDelivery      = "delivery"
)

var auditEntityTypes = map[string]bool{
	AuditEntityClient:      true,
	AuditEntityInvoice:     true,
	AuditEntityAppointment: true,
	AuditEntityUser:        true,
}

var auditActions = map[string]bool{
	AuditActionCreate:        true,
	AuditActionUpdate:        true,
	AuditActionDelete:        true,
	AuditActionRestore:       true,
	AuditActionStatusChange:  true,
	AuditActionPaymentUpdate: true,
	AuditActionDelivery:      true,
}

func IsValidAuditEntityType(t string) bool { return auditEntityTypes[t] }

func IsValidAuditAction(a string) bool { return auditActions[a] }

// Change is one field-level delta. OldValue/NewValue may be nil when the
// field was previously or newly unset.
type Change struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue,omitempty"`
	NewValue any    `json:"newValue,omitempty"`
}

// ActorRef is the minimal live-looked-up actor used to enrich entries at read
// time. The authoritative actor identity is the frozen userName/userRole pair
// written on the entry itself.
type ActorRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuditEntry is one immutable record of a semantic event against a business
// entity. Field names are part of the history viewer contract; do not rename.
type AuditEntry struct {
	ID         uuid.UUID      `json:"id"`
	EntityType string         `json:"entityType"`
	EntityID   uuid.UUID      `json:"entityId"`
	Action     string         `json:"action"`
	UserID     uuid.UUID      `json:"userId"`
	UserName   string         `json:"userName"`
	UserRole   string         `json:"userRole"`
	Changes    []Change       `json:"changes"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`

	// Read-time enrichment only, never persisted.
	Actor *ActorRef `json:"user,omitempty"`
}

// NewAuditEntry validates the classification and stamps the entry. Changes and
// metadata are stored verbatim.
func NewAuditEntry(entityType string, entityID uuid.UUID, action string, changes []Change, metadata map[string]any) (AuditEntry, error) {
	if !IsValidAuditEntityType(entityType) {
		return AuditEntry{}, fmt.Errorf("invalid audit entity type %q", entityType)
	}
	if !IsValidAuditAction(action) {
		return AuditEntry{}, fmt.Errorf("invalid audit action %q", action)
	}
	if changes == nil {
		changes = []Change{}
	}
	return AuditEntry{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    changes,
		Metadata:   metadata,
		Timestamp:  time.Now().UTC(),
	}, nil
}
