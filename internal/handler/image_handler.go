package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ImageHandler struct {
	images *service.ImageService
}

func NewImageHandler(images *service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload stores a media file and returns its URL
// POST /api/agency/images
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing image file",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unreadable image file",
		})
	}
	defer src.Close()

	folder := c.FormValue("folder", "misc")
	contentType := file.Header.Get("Content-Type")

	url, err := h.images.Upload(c.Context(), actor.AgencyID, folder, contentType, file.Size, src)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}

// Delete removes a media file by URL
// DELETE /api/agency/images
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing image url",
		})
	}

	if err := h.images.Delete(c.Context(), actor.AgencyID, req.URL); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Image deleted",
	})
}
