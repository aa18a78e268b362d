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

type hotelRepository struct {
	db *sqlx.DB
}

// NewHotelRepository creates a PostgreSQL hotel repository
func NewHotelRepository(db *sqlx.DB) repository.HotelRepository {
	return &hotelRepository{db: db}
}

func (r *hotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	query := `
		INSERT INTO hotels (
			id, agency_id, location_id, name, description, address,
			images, amenities, hotel_rating, price_per_night, status,
			created_at, updated_at
		) VALUES (
			:id, :agency_id, :location_id, :name, :description, :address,
			:images, :amenities, :hotel_rating, :price_per_night, :status,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, hotel)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *hotelRepository) GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Hotel, error) {
	query := `SELECT * FROM hotels WHERE id = $1 AND agency_id = $2`

	var hotel domain.Hotel
	err := r.db.GetContext(ctx, &hotel, query, id, agencyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return &hotel, nil
}

func (r *hotelRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) ([]*domain.Hotel, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM hotels WHERE agency_id = $1`, agencyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	query := `
		SELECT * FROM hotels
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var hotels []*domain.Hotel
	if err := r.db.SelectContext(ctx, &hotels, query, agencyID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, total, nil
}

func (r *hotelRepository) Update(ctx context.Context, hotel *domain.Hotel) error {
	hotel.UpdatedAt = time.Now()

	query := `
		UPDATE hotels SET
			location_id = :location_id,
			name = :name,
			description = :description,
			address = :address,
			images = :images,
			amenities = :amenities,
			hotel_rating = :hotel_rating,
			price_per_night = :price_per_night,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id AND agency_id = :agency_id`

	result, err := r.db.NamedExecContext(ctx, query, hotel)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *hotelRepository) Delete(ctx context.Context, id, agencyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = $1 AND agency_id = $2`, id, agencyID)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
