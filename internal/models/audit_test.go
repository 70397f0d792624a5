package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAuditEntryClassification(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		entityType string
		action     string
		wantErr    bool
	}{
		{AuditEntityClient, AuditActionCreate, false},
		{AuditEntityClient, AuditActionStatusChange, false},
		{AuditEntityClient, AuditActionPaymentUpdate, false},
		{AuditEntityClient, AuditActionDelivery, false},
		{AuditEntityClient, AuditActionRestore, false},
		{AuditEntityInvoice, AuditActionUpdate, false},
		{AuditEntityAppointment, AuditActionDelete, false},
		{AuditEntityUser, AuditActionCreate, false},
		{"vehicle", AuditActionCreate, true},
		{"", AuditActionCreate, true},
		{AuditEntityClient, "archived", true},
		{AuditEntityClient, "", true},
		{"CLIENT", AuditActionCreate, true},
	}

	for _, tt := range tests {
		t.Run(tt.entityType+"/"+tt.action, func(t *testing.T) {
			_, err := NewAuditEntry(tt.entityType, id, tt.action, nil, nil)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewAuditEntryDefaults(t *testing.T) {
	id := uuid.New()
	entry, err := NewAuditEntry(AuditEntityClient, id, AuditActionCreate, nil, map[string]any{"name": "Ana"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Error("entry id must be set")
	}
	if entry.EntityID != id {
		t.Error("entity id mismatch")
	}
	if entry.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
	if entry.Changes == nil {
		t.Error("changes must default to an empty slice, not nil")
	}
	if entry.Metadata["name"] != "Ana" {
		t.Error("metadata not stored verbatim")
	}
}
