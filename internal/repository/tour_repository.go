package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type TourRepository interface {
	Create(ctx context.Context, tour *domain.Tour) error
	GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Tour, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, page PageRequest) ([]*domain.Tour, int64, error)
	Update(ctx context.Context, tour *domain.Tour) error
	Delete(ctx context.Context, id, agencyID uuid.UUID) error
}
