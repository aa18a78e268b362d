package handler

import (
	"errors"

	"github.com/Anoch123/exodus-instant-booking/internal/handler/middleware"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/Anoch123/exodus-instant-booking/internal/repository/postgres"
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx builds the audit actor from the guarded session plus
// request metadata.
func actorFromCtx(c *fiber.Ctx) (service.Actor, bool) {
	sess, ok := middleware.AgencySession(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		AgencyID:  sess.User.AgencyID,
		UserID:    sess.User.ID,
		Role:      sess.Role,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}, true
}

// pageFromQuery reads ?page= and ?limit= with the platform defaults.
func pageFromQuery(c *fiber.Ctx) repository.PageRequest {
	return repository.PageRequest{
		Page:     c.QueryInt("page", repository.DefaultPage),
		PageSize: c.QueryInt("limit", repository.DefaultPageSize),
	}.Normalize()
}

// uuidParam parses a UUID path parameter.
func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// respondError maps service and repository errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountInactive):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrTourUnavailable),
		errors.Is(err, service.ErrTooManyGuests),
		errors.Is(err, service.ErrUnsupportedImageType):
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
