package handlers

import (
	"time"

	"github.com/garagedesk/backend/internal/http/dto"
	"github.com/garagedesk/backend/internal/middleware"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	apptService *services.AppointmentService
	log         *zap.Logger
}

func NewAppointmentHandler(apptService *services.AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{apptService: apptService, log: log}
}

func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	appt := &models.Appointment{
		ClientID:    clientID,
		ScheduledAt: req.ScheduledAt,
		Service:     req.Service,
		Notes:       req.Notes,
	}
	if err := h.apptService.Create(c.Context(), middleware.GetActor(c), appt); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: appt})
}

func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid appointment id"})
	}
	appt, err := h.apptService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "appointment not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: appt})
}

// ListAppointments returns the agenda for a window, defaulting to the coming
// week.
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			to = t
		}
	}

	appts, err := h.apptService.List(c.Context(), from, to)
	if err != nil {
		h.log.Error("list appointments failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: appts})
}

func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid appointment id"})
	}
	var req dto.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	appt, err := h.apptService.Update(c.Context(), middleware.GetActor(c), id, services.AppointmentUpdate{
		ScheduledAt: req.ScheduledAt,
		Service:     req.Service,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: appt})
}

func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid appointment id"})
	}
	if err := h.apptService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
