package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

func IsValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// InvoiceItem is one billed line: a part or a labor charge.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type Invoice struct {
	ID        uuid.UUID     `json:"id"`
	Number    string        `json:"number"`
	ClientID  uuid.UUID     `json:"client_id"`
	Items     []InvoiceItem `json:"items"`
	Subtotal  float64       `json:"subtotal"`
	TaxRate   float64       `json:"tax_rate"`
	Total     float64       `json:"total"`
	Status    string        `json:"status"`
	Notes     *string       `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Recalculate recomputes subtotal and total from the line items.
func (i *Invoice) Recalculate() {
	var sum float64
	for _, it := range i.Items {
		sum += it.Quantity * it.UnitPrice
	}
	i.Subtotal = sum
	i.Total = sum * (1 + i.TaxRate)
}

// Snapshot flattens the audited invoice fields.
func (i *Invoice) Snapshot() map[string]any {
	if i == nil {
		return nil
	}
	snap := map[string]any{
		"number":   i.Number,
		"subtotal": i.Subtotal,
		"taxRate":  i.TaxRate,
		"total":    i.Total,
		"status":   i.Status,
	}
	if i.Notes != nil {
		snap["notes"] = *i.Notes
	}
	return snap
}
