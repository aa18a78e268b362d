package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Hotel is an accommodation option tied to a location. Image URLs point
// at the object store and are managed by the image service.
type Hotel struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	AgencyID      uuid.UUID      `json:"agency_id" db:"agency_id"`
	LocationID    *uuid.UUID     `json:"location_id,omitempty" db:"location_id"`
	Name          string         `json:"name" db:"name" validate:"required,min=2,max=255"`
	Description   *string        `json:"description,omitempty" db:"description"`
	Address       *string        `json:"address,omitempty" db:"address"`
	Images        pq.StringArray `json:"images" db:"images"`
	Amenities     pq.StringArray `json:"amenities" db:"amenities"`
	HotelRating   int            `json:"hotel_rating" db:"hotel_rating" validate:"gte=0,lte=5"`
	PricePerNight *float64       `json:"price_per_night,omitempty" db:"price_per_night"`
	Status        RecordStatus   `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}
