package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/handler/middleware"
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/Anoch123/exodus-instant-booking/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookings  *service.BookingService
	validator *validator.Validator
}

func NewBookingHandler(bookings *service.BookingService, validator *validator.Validator) *BookingHandler {
	return &BookingHandler{bookings: bookings, validator: validator}
}

// Create places a booking for the logged-in customer
// POST /api/bookings
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	sess, ok := middleware.CustomerSession(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req service.CreateBookingRequest
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

	booking, err := h.bookings.Create(c.Context(), sess.User.ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ListMine returns the logged-in customer's bookings
// GET /api/bookings
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	sess, ok := middleware.CustomerSession(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.bookings.ListByCustomer(c.Context(), sess.User.ID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// ListAgency returns the agency's bookings, paginated
// GET /api/agency/bookings
func (h *BookingHandler) ListAgency(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.bookings.ListByAgency(c.Context(), actor.AgencyID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Get returns one booking for back-office review
// GET /api/agency/bookings/:id
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}

	booking, err := h.bookings.Get(c.Context(), actor.AgencyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(booking)
}

// UpdateStatus moves a booking through its lifecycle
// PATCH /api/agency/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}

	var req service.UpdateBookingStatusRequest
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

	booking, err := h.bookings.UpdateStatus(c.Context(), actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(booking)
}
