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

type locationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository creates a PostgreSQL location repository
func NewLocationRepository(db *sqlx.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	query := `
		INSERT INTO locations (
			id, agency_id, name, description, latitude, longitude,
			address, status, created_at, updated_at
		) VALUES (
			:id, :agency_id, :name, :description, :latitude, :longitude,
			:address, :status, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, location)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Location, error) {
	query := `SELECT * FROM locations WHERE id = $1 AND agency_id = $2`

	var location domain.Location
	err := r.db.GetContext(ctx, &location, query, id, agencyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &location, nil
}

func (r *locationRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) ([]*domain.Location, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM locations WHERE agency_id = $1`, agencyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	query := `
		SELECT * FROM locations
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var locations []*domain.Location
	if err := r.db.SelectContext(ctx, &locations, query, agencyID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, total, nil
}

func (r *locationRepository) Update(ctx context.Context, location *domain.Location) error {
	location.UpdatedAt = time.Now()

	query := `
		UPDATE locations SET
			name = :name,
			description = :description,
			latitude = :latitude,
			longitude = :longitude,
			address = :address,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id AND agency_id = :agency_id`

	result, err := r.db.NamedExecContext(ctx, query, location)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id, agencyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1 AND agency_id = $2`, id, agencyID)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
