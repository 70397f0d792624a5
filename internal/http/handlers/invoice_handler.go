package handlers

import (
	"strconv"

	"github.com/garagedesk/backend/internal/http/dto"
	"github.com/garagedesk/backend/internal/middleware"
	"github.com/garagedesk/backend/internal/models"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	log            *zap.Logger
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, log: log}
}

func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	inv := &models.Invoice{
		Number:   req.Number,
		ClientID: clientID,
		Items:    req.Items,
		TaxRate:  req.TaxRate,
		Notes:    req.Notes,
	}
	if err := h.invoiceService.Create(c.Context(), middleware.GetActor(c), inv); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: inv})
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid invoice id"})
	}
	inv, err := h.invoiceService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "invoice not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: inv})
}

func (h *InvoiceHandler) ListInvoices(c *fiber.Ctx) error {
	if v := c.Query("client_id"); v != "" {
		clientID, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
		}
		invoices, err := h.invoiceService.ListByClient(c.Context(), clientID)
		if err != nil {
			h.log.Error("list invoices failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
		}
		return c.JSON(dto.SuccessResponse{OK: true, Data: invoices})
	}

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
	invoices, err := h.invoiceService.List(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("list invoices failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: invoices})
}

func (h *InvoiceHandler) UpdateInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid invoice id"})
	}
	var req dto.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	inv, err := h.invoiceService.Update(c.Context(), middleware.GetActor(c), id, services.InvoiceUpdate{
		Items:   req.Items,
		TaxRate: req.TaxRate,
		Status:  req.Status,
		Notes:   req.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: inv})
}

func (h *InvoiceHandler) DeleteInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid invoice id"})
	}
	if err := h.invoiceService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
