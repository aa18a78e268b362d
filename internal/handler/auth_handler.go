package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/handler/middleware"
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/Anoch123/exodus-instant-booking/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// LoginAgency handles back-office login
// POST /api/agency/auth/login
func (h *AuthHandler) LoginAgency(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.authService.LoginAgency(c.Context(), req, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// LogoutAgency handles back-office logout
// POST /api/agency/auth/logout
func (h *AuthHandler) LogoutAgency(c *fiber.Ctx) error {
	token := middleware.Token(c)
	if err := h.authService.LogoutAgency(c.Context(), token, c.IP(), c.Get("User-Agent")); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// SignUpCustomer handles portal registration
// POST /api/auth/signup
func (h *AuthHandler) SignUpCustomer(c *fiber.Ctx) error {
	var req service.CustomerSignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.authService.SignUpCustomer(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// LoginCustomer handles portal login
// POST /api/auth/login
func (h *AuthHandler) LoginCustomer(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.authService.LoginCustomer(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// LogoutCustomer handles portal logout
// POST /api/auth/logout
func (h *AuthHandler) LogoutCustomer(c *fiber.Ctx) error {
	token := middleware.Token(c)
	if err := h.authService.LogoutCustomer(c.Context(), token); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
