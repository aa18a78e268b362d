package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendService implements Service using Resend.
type ResendService struct {
	client *resend.Client
	config *Config
}

func NewResendService(config *Config) (*ResendService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &ResendService{
		client: resend.NewClient(config.APIKey),
		config: config,
	}, nil
}

func (s *ResendService) SendBookingConfirmation(ctx context.Context, to, name, tourName string, travelDate time.Time, guests int, totalPrice float64) error {
	return s.send(ctx, to, "Your Booking is Confirmed",
		BookingConfirmationTemplate(name, tourName, travelDate, guests, totalPrice))
}

func (s *ResendService) SendBookingStatusUpdate(ctx context.Context, to, name, tourName, status string) error {
	return s.send(ctx, to, fmt.Sprintf("Booking %s", status),
		BookingStatusTemplate(name, tourName, status))
}

func (s *ResendService) SendSubscriptionExpiryNotice(ctx context.Context, to, agencyName string, expiresAt time.Time) error {
	return s.send(ctx, to, "Your Subscription is Expiring Soon",
		SubscriptionExpiryTemplate(agencyName, expiresAt))
}

func (s *ResendService) send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("[EMAIL] Failed to send %q to %s: %v", subject, to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("[EMAIL] Sent %q to %s (ID: %s)", subject, to, sent.Id)
	return nil
}
