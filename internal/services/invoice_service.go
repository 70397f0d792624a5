package services

import (
	"context"
	"fmt"

	"github.com/garagedesk/backend/internal/audit"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvoiceService struct {
	invoiceRepo *repositories.InvoiceRepo
	clientRepo  *repositories.ClientRepo
	auditSvc    *AuditService
	log         *zap.Logger
}

func NewInvoiceService(invoiceRepo *repositories.InvoiceRepo, clientRepo *repositories.ClientRepo, auditSvc *AuditService, log *zap.Logger) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, clientRepo: clientRepo, auditSvc: auditSvc, log: log}
}

func (s *InvoiceService) Create(ctx context.Context, actor *audit.Actor, inv *models.Invoice) error {
	if inv.Number == "" {
		return fmt.Errorf("invoice number is required")
	}
	if _, err := s.clientRepo.GetByID(ctx, inv.ClientID); err != nil {
		return ErrClientNotFound
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if !models.IsValidInvoiceStatus(inv.Status) {
		return fmt.Errorf("invalid invoice status %q", inv.Status)
	}
	inv.Recalculate()
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	s.auditSvc.LogCreation(ctx, actor, models.AuditEntityInvoice, inv.ID, inv.Snapshot())
	return nil
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context, limit, offset int) ([]models.Invoice, error) {
	return s.invoiceRepo.List(ctx, limit, offset)
}

func (s *InvoiceService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error) {
	return s.invoiceRepo.ListByClient(ctx, clientID)
}

// InvoiceUpdate carries the editable invoice fields.
type InvoiceUpdate struct {
	Items   []models.InvoiceItem
	TaxRate *float64
	Status  *string
	Notes   *string
}

func (s *InvoiceService) Update(ctx context.Context, actor *audit.Actor, id uuid.UUID, upd InvoiceUpdate) (*models.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice not found")
	}
	oldSnap := inv.Snapshot()

	if upd.Items != nil {
		inv.Items = upd.Items
	}
	if upd.TaxRate != nil {
		inv.TaxRate = *upd.TaxRate
	}
	if upd.Status != nil {
		if !models.IsValidInvoiceStatus(*upd.Status) {
			return nil, fmt.Errorf("invalid invoice status %q", *upd.Status)
		}
		inv.Status = *upd.Status
	}
	if upd.Notes != nil {
		inv.Notes = upd.Notes
	}
	inv.Recalculate()

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	s.auditSvc.LogUpdate(ctx, actor, models.AuditEntityInvoice, inv.ID, oldSnap, inv.Snapshot(), audit.InvoiceTrackedFields)
	return inv, nil
}

func (s *InvoiceService) Delete(ctx context.Context, actor *audit.Actor, id uuid.UUID) error {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("invoice not found")
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	s.auditSvc.LogDeletion(ctx, actor, models.AuditEntityInvoice, id, inv.Snapshot())
	return nil
}
