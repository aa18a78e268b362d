package service

import (
	"context"
	"log"

	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/Anoch123/exodus-instant-booking/pkg/email"
)

// SubscriptionService mails expiry notices to agencies approaching the
// end of their plan. It is invoked from the daily notification sweep,
// not from the in-process subscription poller: the poller only flags
// sessions, notices go to the agency owner regardless of who is logged
// in.
type SubscriptionService struct {
	agencyRepo repository.AgencyRepository
	mailer     email.Service
}

func NewSubscriptionService(agencyRepo repository.AgencyRepository, mailer email.Service) *SubscriptionService {
	return &SubscriptionService{agencyRepo: agencyRepo, mailer: mailer}
}

// NotifyExpiring sends one notice per agency whose subscription ends
// within withinDays. Send failures are logged and do not stop the
// sweep.
func (s *SubscriptionService) NotifyExpiring(ctx context.Context, withinDays int) error {
	agencies, err := s.agencyRepo.ListExpiringSubscriptions(ctx, withinDays)
	if err != nil {
		return err
	}

	for _, agency := range agencies {
		if agency.SubscriptionExpiresAt == nil {
			continue
		}
		if err := s.mailer.SendSubscriptionExpiryNotice(ctx, agency.Email, agency.Name, *agency.SubscriptionExpiresAt); err != nil {
			log.Printf("[SUBSCRIPTION] Failed to notify %s: %v", agency.Email, err)
		}
	}
	return nil
}
