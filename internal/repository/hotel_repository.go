package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *domain.Hotel) error
	GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Hotel, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, page PageRequest) ([]*domain.Hotel, int64, error)
	Update(ctx context.Context, hotel *domain.Hotel) error
	Delete(ctx context.Context, id, agencyID uuid.UUID) error
}
