package handlers

import (
	"github.com/garagedesk/backend/internal/auth"
	"github.com/garagedesk/backend/internal/config"
	"github.com/garagedesk/backend/internal/http/dto"
	"github.com/garagedesk/backend/internal/middleware"
	"github.com/garagedesk/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *services.UserService
	cfg         *config.Config
	log         *zap.Logger
}

func NewAuthHandler(userService *services.UserService, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, cfg: cfg, log: log}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "email and password are required"})
	}

	u, err := h.userService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, u.ID, u.Role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.AuthResponse{Token: token, User: u})
}

func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "not authenticated"})
	}
	u, err := h.userService.GetByID(c.Context(), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: u})
}
