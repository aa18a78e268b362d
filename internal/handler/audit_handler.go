package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/service"
	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	audit *service.AuditService
}

func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns the agency's audit trail, newest first
// GET /api/agency/audit-logs
func (h *AuditHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.audit.List(c.Context(), actor.AgencyID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
