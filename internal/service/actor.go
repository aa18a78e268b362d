package service

import "github.com/google/uuid"

// Actor identifies the back-office user performing a mutation, for
// agency scoping and the audit trail.
type Actor struct {
	AgencyID  uuid.UUID
	UserID    uuid.UUID
	Role      string
	IPAddress string
	UserAgent string
}
