package handlers

import (
	"strconv"

	"github.com/garagedesk/backend/internal/http/dto"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditHandler struct {
	auditService *services.AuditService
	log          *zap.Logger
}

func NewAuditHandler(auditService *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{auditService: auditService, log: log}
}

// GetEntityAuditLogs serves the history viewer. The read is fail-soft: storage
// trouble surfaces as an empty list, never as an error state.
func (h *AuditHandler) GetEntityAuditLogs(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	if !models.IsValidAuditEntityType(entityType) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown entity type"})
	}
	entityID, err := uuid.Parse(c.Params("entityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid entity id"})
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	logs := h.auditService.GetEntityAuditLogs(c.Context(), entityType, entityID, limit)
	return c.JSON(dto.AuditLogsResponse{AuditLogs: logs})
}

func (h *AuditHandler) GetUserAuditLogs(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	logs := h.auditService.GetUserAuditLogs(c.Context(), userID, limit)
	return c.JSON(dto.AuditLogsResponse{AuditLogs: logs})
}
