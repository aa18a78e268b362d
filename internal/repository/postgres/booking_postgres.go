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

type bookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a PostgreSQL booking repository
func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, agency_id, customer_id, tour_id, hotel_id, travel_date,
			guests, total_price, status, notes, created_at, updated_at
		) VALUES (
			:id, :agency_id, :customer_id, :tour_id, :hotel_id, :travel_date,
			:guests, :total_price, :status, :notes, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1 AND agency_id = $2`

	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking, query, id, agencyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) ([]*domain.Booking, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE agency_id = $1`, agencyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := `
		SELECT * FROM bookings
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var bookings []*domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, agencyID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, page repository.PageRequest) ([]*domain.Booking, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE customer_id = $1`, customerID); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := `
		SELECT * FROM bookings
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var bookings []*domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, customerID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id, agencyID uuid.UUID, status domain.BookingStatus) error {
	query := `
		UPDATE bookings SET status = $1, updated_at = $2
		WHERE id = $3 AND agency_id = $4`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id, agencyID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
