package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/Anoch123/exodus-instant-booking/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type HotelHandler struct {
	hotels    *service.HotelService
	validator *validator.Validator
}

func NewHotelHandler(hotels *service.HotelService, validator *validator.Validator) *HotelHandler {
	return &HotelHandler{hotels: hotels, validator: validator}
}

// Create adds a hotel
// POST /api/agency/hotels
func (h *HotelHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req service.HotelRequest
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

	hotel, err := h.hotels.Create(c.Context(), actor, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(hotel)
}

// List returns the agency's hotels, paginated
// GET /api/agency/hotels
func (h *HotelHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.hotels.List(c.Context(), actor.AgencyID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Get returns one hotel
// GET /api/agency/hotels/:id
func (h *HotelHandler) Get(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid hotel id",
		})
	}

	hotel, err := h.hotels.Get(c.Context(), actor.AgencyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(hotel)
}

// Update edits a hotel
// PUT /api/agency/hotels/:id
func (h *HotelHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid hotel id",
		})
	}

	var req service.HotelRequest
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

	hotel, err := h.hotels.Update(c.Context(), actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(hotel)
}

// Delete removes a hotel
// DELETE /api/agency/hotels/:id
func (h *HotelHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid hotel id",
		})
	}

	if err := h.hotels.Delete(c.Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Hotel deleted",
	})
}
