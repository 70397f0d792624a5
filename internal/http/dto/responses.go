package dto

import "github.com/garagedesk/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// AuditLogsResponse is the shape the history viewer consumes; the auditLogs
// key is part of that contract.
type AuditLogsResponse struct {
	AuditLogs []models.AuditEntry `json:"auditLogs"`
}
