package repository

import (
	"context"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

type AgencyUserRepository interface {
	Create(ctx context.Context, user *domain.AgencyUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AgencyUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AgencyUser, error)
	Update(ctx context.Context, user *domain.AgencyUser) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	ListByAgency(ctx context.Context, agencyID uuid.UUID, page PageRequest) ([]*domain.AgencyUser, int64, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
