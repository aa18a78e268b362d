package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type AuditRepository interface {
	// Create appends one entry; audit logs are never updated or deleted.
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByAgency(ctx context.Context, agencyID uuid.UUID, page PageRequest) ([]*domain.AuditLog, int64, error)
}
