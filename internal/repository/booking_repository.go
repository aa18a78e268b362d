package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Booking, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, page PageRequest) ([]*domain.Booking, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, page PageRequest) ([]*domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id, agencyID uuid.UUID, status domain.BookingStatus) error
}
