package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups tours for the marketing site (adventure, wildlife, ...).
type Category struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	AgencyID    uuid.UUID    `json:"agency_id" db:"agency_id"`
	Name        string       `json:"name" db:"name" validate:"required,min=2,max=100"`
	Description *string      `json:"description,omitempty" db:"description"`
	Status      RecordStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
