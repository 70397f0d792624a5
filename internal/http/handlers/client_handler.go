package handlers

import (
	"strconv"
	"time"

	"github.com/garagedesk/backend/internal/http/dto"
	"github.com/garagedesk/backend/internal/middleware"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *services.ClientService
	log           *zap.Logger
}

func NewClientHandler(clientService *services.ClientService, log *zap.Logger) *ClientHandler {
	return &ClientHandler{clientService: clientService, log: log}
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	client := &models.Client{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		CarMake:           req.CarMake,
		CarModel:          req.CarModel,
		CarYear:           req.CarYear,
		LicensePlate:      req.LicensePlate,
		IssueDescription:  req.IssueDescription,
		PreExistingIssues: req.PreExistingIssues,
		EstimatedDuration: req.EstimatedDuration,
		DeliveryDate:      req.DeliveryDate,
		Notes:             req.Notes,
	}

	if err := h.clientService.Create(c.Context(), middleware.GetActor(c), client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	client, err := h.clientService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	limit, offset := 50, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	includeDeleted := c.Query("include_deleted") == "true"

	clients, err := h.clientService.List(c.Context(), includeDeleted, limit, offset)
	if err != nil {
		h.log.Error("list clients failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: clients})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	client, err := h.clientService.Update(c.Context(), middleware.GetActor(c), id, services.ClientUpdate{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		CarMake:           req.CarMake,
		CarModel:          req.CarModel,
		CarYear:           req.CarYear,
		LicensePlate:      req.LicensePlate,
		IssueDescription:  req.IssueDescription,
		PreExistingIssues: req.PreExistingIssues,
		EstimatedDuration: req.EstimatedDuration,
		DeliveryDate:      req.DeliveryDate,
		Notes:             req.Notes,
	})
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	if err := h.clientService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return clientError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ClientHandler) RestoreClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	if err := h.clientService.Restore(c.Context(), middleware.GetActor(c), id); err != nil {
		return clientError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ClientHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	var client *models.Client
	switch req.StatusType {
	case services.StatusKindRepair:
		client, err = h.clientService.ChangeRepairStatus(c.Context(), middleware.GetActor(c), id, req.Status)
	case services.StatusKindPayment:
		client, err = h.clientService.ChangePaymentStatus(c.Context(), middleware.GetActor(c), id, req.Status)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "status_type must be repair or payment"})
	}
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) UpdatePayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	var req dto.PaymentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	client, err := h.clientService.UpdatePayment(c.Context(), middleware.GetActor(c), id, services.PaymentUpdate{
		Status:        req.Status,
		PartialAmount: req.PartialAmount,
		Method:        req.Method,
		Date:          req.Date,
		Reference:     req.Reference,
	})
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) MarkDelivered(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	var req dto.DeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	deliveryDate := time.Now().UTC()
	if req.DeliveryDate != nil {
		deliveryDate = *req.DeliveryDate
	}

	client, err := h.clientService.MarkDelivered(c.Context(), middleware.GetActor(c), id, deliveryDate, req.Notes)
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func clientError(c *fiber.Ctx, err error) error {
	if err == services.ErrClientNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
}
