package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Category, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, page PageRequest) ([]*domain.Category, int64, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id, agencyID uuid.UUID) error
}
