package email

import (
	"context"
	"log"
	"time"
)

// NoopService satisfies Service when email delivery is disabled. Every
// send is logged and dropped.
type NoopService struct{}

func NewNoopService() *NoopService { return &NoopService{} }

func (s *NoopService) SendBookingConfirmation(_ context.Context, to, _, tourName string, _ time.Time, _ int, _ float64) error {
	log.Printf("[EMAIL] Delivery disabled, dropping booking confirmation for %s (%s)", to, tourName)
	return nil
}

func (s *NoopService) SendBookingStatusUpdate(_ context.Context, to, _, tourName, status string) error {
	log.Printf("[EMAIL] Delivery disabled, dropping status update (%s) for %s (%s)", status, to, tourName)
	return nil
}

func (s *NoopService) SendSubscriptionExpiryNotice(_ context.Context, to, _ string, _ time.Time) error {
	log.Printf("[EMAIL] Delivery disabled, dropping subscription notice for %s", to)
	return nil
}
