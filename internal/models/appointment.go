package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

func IsValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Service     string    `json:"service"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot flattens the audited appointment fields.
func (a *Appointment) Snapshot() map[string]any {
	if a == nil {
		return nil
	}
	snap := map[string]any{
		"scheduledAt": a.ScheduledAt.UTC().Format(time.RFC3339),
		"service":     a.Service,
		"status":      a.Status,
	}
	if a.Notes != nil {
		snap["notes"] = *a.Notes
	}
	return snap
}
