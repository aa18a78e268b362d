package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking links a customer to a tour (and optionally a hotel) on a date.
type Booking struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	AgencyID   uuid.UUID     `json:"agency_id" db:"agency_id"`
	CustomerID uuid.UUID     `json:"customer_id" db:"customer_id"`
	TourID     uuid.UUID     `json:"tour_id" db:"tour_id"`
	HotelID    *uuid.UUID    `json:"hotel_id,omitempty" db:"hotel_id"`
	TravelDate time.Time     `json:"travel_date" db:"travel_date"`
	Guests     int           `json:"guests" db:"guests" validate:"gte=1"`
	TotalPrice float64       `json:"total_price" db:"total_price"`
	Status     BookingStatus `json:"status" db:"status"`
	Notes      *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}
