package services

import (
	"context"
	"fmt"
	"time"

	"github.com/garagedesk/backend/internal/audit"
	"github.com/garagedesk/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrClientNotFound = fmt.Errorf("client not found")

// ClientStore is the persistence the client service writes to.
type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context, includeDeleted bool, limit, offset int) ([]models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	Restore(ctx context.Context, id uuid.UUID) error
}

// ClientService owns the client/vehicle lifecycle. Every mutation records a
// matching audit entry; the audit calls never fail the mutation.
type ClientService struct {
	clientRepo ClientStore
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewClientService(clientRepo ClientStore, auditSvc *AuditService, log *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, auditSvc: auditSvc, log: log}
}

func (s *ClientService) Create(ctx context.Context, actor *audit.Actor, c *models.Client) error {
	if c.Name == "" || c.Phone == "" {
		return fmt.Errorf("name and phone are required")
	}
	if c.RepairStatus == "" {
		c.RepairStatus = models.RepairStatusWaiting
	}
	if c.PaymentStatus == "" {
		c.PaymentStatus = models.PaymentStatusUnpaid
	}
	if err := s.clientRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	s.auditSvc.LogClientCreation(ctx, actor, c.ID, c.Snapshot())
	return nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrClientNotFound
	}
	if c.DeletedAt != nil {
		return nil, ErrClientNotFound
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, includeDeleted bool, limit, offset int) ([]models.Client, error) {
	return s.clientRepo.List(ctx, includeDeleted, limit, offset)
}

// ClientUpdate carries the generic editable fields. Statuses and payment
// fields move through their dedicated operations.
type ClientUpdate struct {
	Name              *string
	Phone             *string
	Email             *string
	CarMake           *string
	CarModel          *string
	CarYear           *int
	LicensePlate      *string
	IssueDescription  *string
	PreExistingIssues *string
	EstimatedDuration *string
	DeliveryDate      *time.Time
	Notes             *string
}

func (s *ClientService) Update(ctx context.Context, actor *audit.Actor, id uuid.UUID, upd ClientUpdate) (*models.Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSnap := c.Snapshot()

	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Email != nil {
		c.Email = upd.Email
	}
	if upd.CarMake != nil {
		c.CarMake = *upd.CarMake
	}
	if upd.CarModel != nil {
		c.CarModel = *upd.CarModel
	}
	if upd.CarYear != nil {
		c.CarYear = upd.CarYear
	}
	if upd.LicensePlate != nil {
		c.LicensePlate = upd.LicensePlate
	}
	if upd.IssueDescription != nil {
		c.IssueDescription = *upd.IssueDescription
	}
	if upd.PreExistingIssues != nil {
		c.PreExistingIssues = upd.PreExistingIssues
	}
	if upd.EstimatedDuration != nil {
		c.EstimatedDuration = upd.EstimatedDuration
	}
	if upd.DeliveryDate != nil {
		c.DeliveryDate = upd.DeliveryDate
	}
	if upd.Notes != nil {
		c.Notes = upd.Notes
	}

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	s.auditSvc.LogClientUpdate(ctx, actor, c.ID, oldSnap, c.Snapshot())
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, actor *audit.Actor, id uuid.UUID) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clientRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	s.auditSvc.LogClientDeletion(ctx, actor, id, c.Snapshot())
	return nil
}

func (s *ClientService) Restore(ctx context.Context, actor *audit.Actor, id uuid.UUID) error {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return ErrClientNotFound
	}
	if c.DeletedAt == nil {
		return fmt.Errorf("client is not deleted")
	}
	if err := s.clientRepo.Restore(ctx, id); err != nil {
		return fmt.Errorf("restore client: %w", err)
	}
	s.auditSvc.LogClientRestoration(ctx, actor, id)
	return nil
}

func (s *ClientService) ChangeRepairStatus(ctx context.Context, actor *audit.Actor, id uuid.UUID, newStatus string) (*models.Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.IsValidRepairTransition(c.RepairStatus, newStatus) {
		return nil, fmt.Errorf("invalid repair status transition from %s to %s", c.RepairStatus, newStatus)
	}
	oldStatus := c.RepairStatus
	c.RepairStatus = newStatus
	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update repair status: %w", err)
	}
	s.auditSvc.LogStatusChange(ctx, actor, c.ID, oldStatus, newStatus, StatusKindRepair)
	return c, nil
}

func (s *ClientService) ChangePaymentStatus(ctx context.Context, actor *audit.Actor, id uuid.UUID, newStatus string) (*models.Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.IsValidPaymentStatus(newStatus) {
		return nil, fmt.Errorf("invalid payment status %q", newStatus)
	}
	oldStatus := c.PaymentStatus
	c.PaymentStatus = newStatus
	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	s.auditSvc.LogStatusChange(ctx, actor, c.ID, oldStatus, newStatus, StatusKindPayment)
	return c, nil
}

// PaymentUpdate carries the fields touched when a payment is recorded.
type PaymentUpdate struct {
	Status        *string
	PartialAmount *float64
	Method        *string
	Date          *time.Time
	Reference     *string
}

func (s *ClientService) UpdatePayment(ctx context.Context, actor *audit.Actor, id uuid.UUID, upd PaymentUpdate) (*models.Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSnap := c.Snapshot()

	if upd.Status != nil {
		if !models.IsValidPaymentStatus(*upd.Status) {
			return nil, fmt.Errorf("invalid payment status %q", *upd.Status)
		}
		c.PaymentStatus = *upd.Status
	}
	if upd.PartialAmount != nil {
		c.PartialPaymentAmount = upd.PartialAmount
	}
	if upd.Method != nil {
		c.PaymentMethod = upd.Method
	}
	if upd.Date != nil {
		c.PaymentDate = upd.Date
	}
	if upd.Reference != nil {
		c.PaymentReference = upd.Reference
	}

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	s.auditSvc.LogPaymentUpdate(ctx, actor, c.ID, oldSnap, c.Snapshot())
	return c, nil
}

func (s *ClientService) MarkDelivered(ctx context.Context, actor *audit.Actor, id uuid.UUID, deliveryDate time.Time, notes *string) (*models.Client, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.IsValidRepairTransition(c.RepairStatus, models.RepairStatusDelivered) {
		return nil, fmt.Errorf("cannot deliver a client in status %s", c.RepairStatus)
	}
	c.RepairStatus = models.RepairStatusDelivered
	c.DeliveryDate = &deliveryDate
	c.DeliveryNotes = notes
	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("mark delivered: %w", err)
	}

	delivery := map[string]any{"deliveryDate": deliveryDate.UTC().Format(time.RFC3339)}
	if notes != nil {
		delivery["deliveryNotes"] = *notes
	}
	s.auditSvc.LogDelivery(ctx, actor, c.ID, delivery)
	return c, nil
}
