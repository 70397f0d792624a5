package dto

import (
	"time"

	"github.com/garagedesk/backend/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateClientRequest struct {
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Email             *string    `json:"email,omitempty"`
	CarMake           string     `json:"car_make"`
	CarModel          string     `json:"car_model"`
	CarYear           *int       `json:"car_year,omitempty"`
	LicensePlate      *string    `json:"license_plate,omitempty"`
	IssueDescription  string     `json:"issue_description"`
	PreExistingIssues *string    `json:"pre_existing_issues,omitempty"`
	EstimatedDuration *string    `json:"estimated_duration,omitempty"`
	DeliveryDate      *time.Time `json:"delivery_date,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	Name              *string    `json:"name,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Email             *string    `json:"email,omitempty"`
	CarMake           *string    `json:"car_make,omitempty"`
	CarModel          *string    `json:"car_model,omitempty"`
	CarYear           *int       `json:"car_year,omitempty"`
	LicensePlate      *string    `json:"license_plate,omitempty"`
	IssueDescription  *string    `json:"issue_description,omitempty"`
	PreExistingIssues *string    `json:"pre_existing_issues,omitempty"`
	EstimatedDuration *string    `json:"estimated_duration,omitempty"`
	DeliveryDate      *time.Time `json:"delivery_date,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// ChangeStatusRequest moves either the repair or the payment status.
type ChangeStatusRequest struct {
	StatusType string `json:"status_type"` // repair / payment
	Status     string `json:"status"`
}

type PaymentUpdateRequest struct {
	Status        *string    `json:"status,omitempty"`
	PartialAmount *float64   `json:"partial_amount,omitempty"`
	Method        *string    `json:"method,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Reference     *string    `json:"reference,omitempty"`
}

type DeliveryRequest struct {
	DeliveryDate *time.Time `json:"delivery_date,omitempty"` // defaults to now
	Notes        *string    `json:"notes,omitempty"`
}

type CreateInvoiceRequest struct {
	Number   string               `json:"number"`
	ClientID string               `json:"client_id"`
	Items    []models.InvoiceItem `json:"items"`
	TaxRate  float64              `json:"tax_rate"`
	Notes    *string              `json:"notes,omitempty"`
}

type UpdateInvoiceRequest struct {
	Items   []models.InvoiceItem `json:"items,omitempty"`
	TaxRate *float64             `json:"tax_rate,omitempty"`
	Status  *string              `json:"status,omitempty"`
	Notes   *string              `json:"notes,omitempty"`
}

type CreateAppointmentRequest struct {
	ClientID    string    `json:"client_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Service     string    `json:"service"`
	Notes       *string   `json:"notes,omitempty"`
}

type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Service     *string    `json:"service,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}
