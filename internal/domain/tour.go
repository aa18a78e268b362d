package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Tour is a bookable package offered by an agency.
type Tour struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	AgencyID     uuid.UUID      `json:"agency_id" db:"agency_id"`
	CategoryID   *uuid.UUID     `json:"category_id,omitempty" db:"category_id"`
	LocationID   *uuid.UUID     `json:"location_id,omitempty" db:"location_id"`
	Name         string         `json:"name" db:"name" validate:"required,min=2,max=255"`
	Description  *string        `json:"description,omitempty" db:"description"`
	Price        float64        `json:"price" db:"price" validate:"gte=0"`
	DurationDays int            `json:"duration_days" db:"duration_days" validate:"gte=1"`
	MaxGuests    *int           `json:"max_guests,omitempty" db:"max_guests"`
	Images       pq.StringArray `json:"images" db:"images"`
	Status       RecordStatus   `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}
