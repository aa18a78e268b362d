package domain

import (
	"time"

	"github.com/google/uuid"
)

type AgencyStatus string

const (
	AgencyStatusActive    AgencyStatus = "active"
	AgencyStatusSuspended AgencyStatus = "suspended"
	AgencyStatusTrial     AgencyStatus = "trial"
)

// Agency is the owning organization of back-office users and all
// travel records. Its subscription lifecycle is independent of any
// login session: an expired subscription blocks the UI but never
// destroys sessions.
type Agency struct {
	ID                    uuid.UUID    `json:"id" db:"id"`
	Name                  string       `json:"name" db:"name"`
	Email                 string       `json:"email" db:"email"`
	Phone                 *string      `json:"phone,omitempty" db:"phone"`
	Address               *string      `json:"address,omitempty" db:"address"`
	LogoURL               *string      `json:"logo_url,omitempty" db:"logo_url"`
	SubscriptionPlan      string       `json:"subscription_plan" db:"subscription_plan"`
	SubscriptionExpiresAt *time.Time   `json:"subscription_expires_at" db:"subscription_expires_at"`
	Status                AgencyStatus `json:"status" db:"status"`
	CreatedAt             time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at" db:"updated_at"`
}
