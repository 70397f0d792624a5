package services

import (
	"context"
	"fmt"
	"time"

	"github.com/garagedesk/backend/internal/audit"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService struct {
	apptRepo   *repositories.AppointmentRepo
	clientRepo *repositories.ClientRepo
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewAppointmentService(apptRepo *repositories.AppointmentRepo, clientRepo *repositories.ClientRepo, auditSvc *AuditService, log *zap.Logger) *AppointmentService {
	return &AppointmentService{apptRepo: apptRepo, clientRepo: clientRepo, auditSvc: auditSvc, log: log}
}

func (s *AppointmentService) Create(ctx context.Context, actor *audit.Actor, a *models.Appointment) error {
	if a.Service == "" {
		return fmt.Errorf("service description is required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled time is required")
	}
	if _, err := s.clientRepo.GetByID(ctx, a.ClientID); err != nil {
		return ErrClientNotFound
	}
	if a.Status == "" {
		a.Status = models.AppointmentStatusScheduled
	}
	if !models.IsValidAppointmentStatus(a.Status) {
		return fmt.Errorf("invalid appointment status %q", a.Status)
	}
	if err := s.apptRepo.Create(ctx, a); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	s.auditSvc.LogCreation(ctx, actor, models.AuditEntityAppointment, a.ID, a.Snapshot())
	return nil
}

func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return s.apptRepo.GetByID(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	return s.apptRepo.List(ctx, from, to)
}

// AppointmentUpdate carries the editable appointment fields.
type AppointmentUpdate struct {
	ScheduledAt *time.Time
	Service     *string
	Status      *string
	Notes       *string
}

func (s *AppointmentService) Update(ctx context.Context, actor *audit.Actor, id uuid.UUID, upd AppointmentUpdate) (*models.Appointment, error) {
	a, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("appointment not found")
	}
	oldSnap := a.Snapshot()

	if upd.ScheduledAt != nil {
		a.ScheduledAt = *upd.ScheduledAt
	}
	if upd.Service != nil {
		a.Service = *upd.Service
	}
	if upd.Status != nil {
		if !models.IsValidAppointmentStatus(*upd.Status) {
			return nil, fmt.Errorf("invalid appointment status %q", *upd.Status)
		}
		a.Status = *upd.Status
	}
	if upd.Notes != nil {
		a.Notes = upd.Notes
	}

	if err := s.apptRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	s.auditSvc.LogUpdate(ctx, actor, models.AuditEntityAppointment, a.ID, oldSnap, a.Snapshot(), audit.AppointmentTrackedFields)
	return a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, actor *audit.Actor, id uuid.UUID) error {
	a, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("appointment not found")
	}
	if err := s.apptRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	s.auditSvc.LogDeletion(ctx, actor, models.AuditEntityAppointment, id, a.Snapshot())
	return nil
}
