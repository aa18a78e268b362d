package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/Anoch123/exodus-instant-booking/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type LocationHandler struct {
	locations *service.LocationService
	validator *validator.Validator
}

func NewLocationHandler(locations *service.LocationService, validator *validator.Validator) *LocationHandler {
	return &LocationHandler{locations: locations, validator: validator}
}

// Create adds a location
// POST /api/agency/locations
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req service.LocationRequest
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

	location, err := h.locations.Create(c.Context(), actor, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// List returns the agency's locations, paginated
// GET /api/agency/locations
func (h *LocationHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.locations.List(c.Context(), actor.AgencyID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Get returns one location
// GET /api/agency/locations/:id
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location id",
		})
	}

	location, err := h.locations.Get(c.Context(), actor.AgencyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(location)
}

// Update edits a location
// PUT /api/agency/locations/:id
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location id",
		})
	}

	var req service.LocationRequest
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

	location, err := h.locations.Update(c.Context(), actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(location)
}

// Delete removes a location
// DELETE /api/agency/locations/:id
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location id",
		})
	}

	if err := h.locations.Delete(c.Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Location deleted",
	})
}
