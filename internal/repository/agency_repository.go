package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type AgencyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error)
	Update(ctx context.Context, agency *domain.Agency) error

	// ListExpiringSubscriptions returns agencies whose subscription ends
	// within the given number of days, for the expiry notice mailer.
	ListExpiringSubscriptions(ctx context.Context, withinDays int) ([]*domain.Agency, error)
}
