package domain

import (
	"time"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusInactive RecordStatus = "inactive"
)

// Location is a destination an agency offers tours and hotels in.
type Location struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	AgencyID    uuid.UUID    `json:"agency_id" db:"agency_id"`
	Name        string       `json:"name" db:"name" validate:"required,min=2,max=255"`
	Description *string      `json:"description,omitempty" db:"description"`
	Latitude    *float64     `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64     `json:"longitude,omitempty" db:"longitude"`
	Address     *string      `json:"address,omitempty" db:"address"`
	Status      RecordStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
