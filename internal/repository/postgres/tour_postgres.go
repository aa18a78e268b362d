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

type tourRepository struct {
	db *sqlx.DB
}

// NewTourRepository creates a PostgreSQL tour repository
func NewTourRepository(db *sqlx.DB) repository.TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	query := `
		INSERT INTO tours (
			id, agency_id, category_id, location_id, name, description,
			price, duration_days, max_guests, images, status,
			created_at, updated_at
		) VALUES (
			:id, :agency_id, :category_id, :location_id, :name, :description,
			:price, :duration_days, :max_guests, :images, :status,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, tour)
	if err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

func (r *tourRepository) GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Tour, error) {
	query := `SELECT * FROM tours WHERE id = $1 AND agency_id = $2`

	var tour domain.Tour
	err := r.db.GetContext(ctx, &tour, query, id, agencyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	return &tour, nil
}

func (r *tourRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) ([]*domain.Tour, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tours WHERE agency_id = $1`, agencyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	query := `
		SELECT * FROM tours
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var tours []*domain.Tour
	if err := r.db.SelectContext(ctx, &tours, query, agencyID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, total, nil
}

func (r *tourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	tour.UpdatedAt = time.Now()

	query := `
		UPDATE tours SET
			category_id = :category_id,
			location_id = :location_id,
			name = :name,
			description = :description,
			price = :price,
			duration_days = :duration_days,
			max_guests = :max_guests,
			images = :images,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id AND agency_id = :agency_id`

	result, err := r.db.NamedExecContext(ctx, query, tour)
	if err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id, agencyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = $1 AND agency_id = $2`, id, agencyID)
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
