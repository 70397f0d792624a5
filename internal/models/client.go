package models

import (
	"time"

	"github.com/google/uuid"
)

// Repair statuses
const (
	RepairStatusWaiting    = "waiting"
	RepairStatusInProgress = "in_progress"
	RepairStatusCompleted  = "completed"
	RepairStatusDelivered  = "delivered"
)

// Payment statuses
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

var repairTransitions = map[string][]string{
	RepairStatusWaiting:    {RepairStatusInProgress},
	RepairStatusInProgress: {RepairStatusCompleted, RepairStatusWaiting},
	RepairStatusCompleted:  {RepairStatusDelivered, RepairStatusInProgress},
	RepairStatusDelivered:  {},
}

// IsValidRepairTransition reports whether a repair status move is allowed.
func IsValidRepairTransition(from, to string) bool {
	for _, next := range repairTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsValidPaymentStatus(s string) bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPartial || s == PaymentStatusPaid
}

// Client is a shop customer together with the vehicle currently in for repair.
type Client struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Phone                string     `json:"phone"`
	Email                *string    `json:"email,omitempty"`
	CarMake              string     `json:"car_make"`
	CarModel             string     `json:"car_model"`
	CarYear              *int       `json:"car_year,omitempty"`
	LicensePlate         *string    `json:"license_plate,omitempty"`
	IssueDescription     string     `json:"issue_description"`
	PreExistingIssues    *string    `json:"pre_existing_issues,omitempty"`
	EstimatedDuration    *string    `json:"estimated_duration,omitempty"`
	DeliveryDate         *time.Time `json:"delivery_date,omitempty"`
	DeliveryNotes        *string    `json:"delivery_notes,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
	RepairStatus         string     `json:"repair_status"`
	PaymentStatus        string     `json:"payment_status"`
	PartialPaymentAmount *float64   `json:"partial_payment_amount,omitempty"`
	PaymentMethod        *string    `json:"payment_method,omitempty"`
	PaymentDate          *time.Time `json:"payment_date,omitempty"`
	PaymentReference     *string    `json:"payment_reference,omitempty"`
	DeletedAt            *time.Time `json:"deleted_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Snapshot flattens the fields considered for change detection into the
// key set the audit tracked-field lists use.
func (c *Client) Snapshot() map[string]any {
	if c == nil {
		return nil
	}
	snap := map[string]any{
		"name":             c.Name,
		"phone":            c.Phone,
		"carMake":          c.CarMake,
		"carModel":         c.CarModel,
		"issueDescription": c.IssueDescription,
		"repairStatus":     c.RepairStatus,
		"paymentStatus":    c.PaymentStatus,
	}
	if c.Email != nil {
		snap["email"] = *c.Email
	}
	if c.CarYear != nil {
		snap["carYear"] = *c.CarYear
	}
	if c.LicensePlate != nil {
		snap["licensePlate"] = *c.LicensePlate
	}
	if c.PreExistingIssues != nil {
		snap["preExistingIssues"] = *c.PreExistingIssues
	}
	if c.EstimatedDuration != nil {
		snap["estimatedDuration"] = *c.EstimatedDuration
	}
	if c.DeliveryDate != nil {
		snap["deliveryDate"] = c.DeliveryDate.UTC().Format(time.RFC3339)
	}
	if c.Notes != nil {
		snap["notes"] = *c.Notes
	}
	if c.PartialPaymentAmount != nil {
		snap["partialPaymentAmount"] = *c.PartialPaymentAmount
	}
	if c.PaymentMethod != nil {
		snap["paymentMethod"] = *c.PaymentMethod
	}
	if c.PaymentDate != nil {
		snap["paymentDate"] = c.PaymentDate.UTC().Format(time.RFC3339)
	}
	if c.PaymentReference != nil {
		snap["paymentReference"] = *c.PaymentReference
	}
	return snap
}
