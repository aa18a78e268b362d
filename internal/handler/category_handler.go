package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/Anoch123/exodus-instant-booking/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categories *service.CategoryService
	validator  *validator.Validator
}

func NewCategoryHandler(categories *service.CategoryService, validator *validator.Validator) *CategoryHandler {
	return &CategoryHandler{categories: categories, validator: validator}
}

// Create adds a tour category
// POST /api/agency/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req service.CategoryRequest
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

	category, err := h.categories.Create(c.Context(), actor, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// List returns the agency's categories, paginated
// GET /api/agency/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.categories.List(c.Context(), actor.AgencyID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Get returns one category
// GET /api/agency/categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category id",
		})
	}

	category, err := h.categories.Get(c.Context(), actor.AgencyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

// Update edits a category
// PUT /api/agency/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category id",
		})
	}

	var req service.CategoryRequest
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

	category, err := h.categories.Update(c.Context(), actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

// Delete removes a category
// DELETE /api/agency/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category id",
		})
	}

	if err := h.categories.Delete(c.Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Category deleted",
	})
}
