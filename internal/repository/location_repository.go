package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Location, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, page PageRequest) ([]*domain.Location, int64, error)
	Update(ctx context.Context, location *domain.Location) error
	Delete(ctx context.Context, id, agencyID uuid.UUID) error
}
