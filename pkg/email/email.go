package email

import (
	"context"
	"time"
)

// Service sends the transactional mail the platform produces: booking
// confirmations to customers and subscription notices to agency owners.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to, name, tourName string, travelDate time.Time, guests int, totalPrice float64) error
	SendBookingStatusUpdate(ctx context.Context, to, name, tourName, status string) error
	SendSubscriptionExpiryNotice(ctx context.Context, to, agencyName string, expiresAt time.Time) error
}

// Config holds sender configuration.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}
