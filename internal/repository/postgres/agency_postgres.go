package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type agencyRepository struct {
	db *sqlx.DB
}

// NewAgencyRepository creates a PostgreSQL agency repository
func NewAgencyRepository(db *sqlx.DB) repository.AgencyRepository {
	return &agencyRepository{db: db}
}

func (r *agencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	query := `SELECT * FROM agencies WHERE id = $1`

	var agency domain.Agency
	err := r.db.GetContext(ctx, &agency, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency by id: %w", err)
	}
	return &agency, nil
}

func (r *agencyRepository) Update(ctx context.Context, agency *domain.Agency) error {
	agency.UpdatedAt = time.Now()

	query := `
		UPDATE agencies SET
			name = :name,
			email = :email,
			phone = :phone,
			address = :address,
			logo_url = :logo_url,
			subscription_plan = :subscription_plan,
			subscription_expires_at = :subscription_expires_at,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, agency)
	if err != nil {
		return fmt.Errorf("failed to update agency: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *agencyRepository) ListExpiringSubscriptions(ctx context.Context, withinDays int) ([]*domain.Agency, error) {
	query := `
		SELECT * FROM agencies
		WHERE subscription_expires_at IS NOT NULL
		  AND subscription_expires_at > NOW()
		  AND subscription_expires_at <= NOW() + ($1 * INTERVAL '1 day')
		ORDER BY subscription_expires_at ASC`

	var agencies []*domain.Agency
	if err := r.db.SelectContext(ctx, &agencies, query, withinDays); err != nil {
		return nil, fmt.Errorf("failed to list expiring subscriptions: %w", err)
	}
	return agencies, nil
}
