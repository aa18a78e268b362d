package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/Anoch123/exodus-instant-booking/pkg/email"
	"github.com/google/uuid"
)

var (
	ErrTourUnavailable = errors.New("tour is not available for booking")
	ErrTooManyGuests   = errors.New("guest count exceeds tour capacity")
)

// BookingService handles the customer booking flow and the back-office
// status transitions. Email notifications are best-effort: delivery
// failures are logged, never surfaced to the caller.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	tourRepo     repository.TourRepository
	customerRepo repository.CustomerRepository
	mailer       email.Service
	audit        *AuditService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	tourRepo repository.TourRepository,
	customerRepo repository.CustomerRepository,
	mailer email.Service,
	audit *AuditService,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		tourRepo:     tourRepo,
		customerRepo: customerRepo,
		mailer:       mailer,
		audit:        audit,
	}
}

type CreateBookingRequest struct {
	AgencyID   uuid.UUID  `json:"agency_id" validate:"required"`
	TourID     uuid.UUID  `json:"tour_id" validate:"required"`
	HotelID    *uuid.UUID `json:"hotel_id"`
	TravelDate time.Time  `json:"travel_date" validate:"required"`
	Guests     int        `json:"guests" validate:"gte=1"`
	Notes      string     `json:"notes" validate:"max=2000"`
}

// Create places a booking for customer. The total is priced server-side
// from the tour, never trusted from the request.
func (s *BookingService) Create(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*domain.Booking, error) {
	tour, err := s.tourRepo.GetByID(ctx, req.TourID, req.AgencyID)
	if err != nil {
		return nil, err
	}
	if tour.Status != domain.RecordStatusActive {
		return nil, ErrTourUnavailable
	}
	if tour.MaxGuests != nil && req.Guests > *tour.MaxGuests {
		return nil, ErrTooManyGuests
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:         uuid.New(),
		AgencyID:   req.AgencyID,
		CustomerID: customerID,
		TourID:     req.TourID,
		HotelID:    req.HotelID,
		TravelDate: req.TravelDate,
		Guests:     req.Guests,
		TotalPrice: tour.Price * float64(req.Guests),
		Status:     domain.BookingStatusPending,
		Notes:      optional(req.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:   &booking.AgencyID,
		Action:     "Booking Created",
		ActionType: domain.AuditActionCreate,
		TableName:  "bookings",
		RecordID:   &booking.ID,
		Details:    booking,
	})

	if customer, err := s.customerRepo.GetByID(ctx, customerID); err == nil {
		if err := s.mailer.SendBookingConfirmation(ctx, customer.Email, customer.FirstName, tour.Name, booking.TravelDate, booking.Guests, booking.TotalPrice); err != nil {
			log.Printf("[BOOKING] Failed to send confirmation for %s: %v", booking.ID, err)
		}
	}

	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, agencyID, id uuid.UUID) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id, agencyID)
}

func (s *BookingService) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) (repository.PageResult[*domain.Booking], error) {
	page = page.Normalize()
	bookings, total, err := s.bookingRepo.ListByAgency(ctx, agencyID, page)
	if err != nil {
		return repository.PageResult[*domain.Booking]{}, err
	}
	return repository.NewPageResult(bookings, page, total), nil
}

func (s *BookingService) ListByCustomer(ctx context.Context, customerID uuid.UUID, page repository.PageRequest) (repository.PageResult[*domain.Booking], error) {
	page = page.Normalize()
	bookings, total, err := s.bookingRepo.ListByCustomer(ctx, customerID, page)
	if err != nil {
		return repository.PageResult[*domain.Booking]{}, err
	}
	return repository.NewPageResult(bookings, page, total), nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// UpdateStatus moves a booking through its lifecycle and notifies the
// customer of the change.
func (s *BookingService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req UpdateBookingStatusRequest) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id, actor.AgencyID)
	if err != nil {
		return nil, err
	}

	previous := booking.Status
	status := domain.BookingStatus(req.Status)
	if err := s.bookingRepo.UpdateStatus(ctx, id, actor.AgencyID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Booking Status Updated",
		ActionType:   domain.AuditActionUpdate,
		TableName:    "bookings",
		RecordID:     &booking.ID,
		Details:      map[string]FieldChange{"status": {Old: previous, New: status}},
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})

	if previous != status {
		s.notifyStatusChange(ctx, booking)
	}
	return booking, nil
}

func (s *BookingService) notifyStatusChange(ctx context.Context, booking *domain.Booking) {
	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		log.Printf("[BOOKING] Failed to load customer %s for notification: %v", booking.CustomerID, err)
		return
	}
	tour, err := s.tourRepo.GetByID(ctx, booking.TourID, booking.AgencyID)
	if err != nil {
		log.Printf("[BOOKING] Failed to load tour %s for notification: %v", booking.TourID, err)
		return
	}
	if err := s.mailer.SendBookingStatusUpdate(ctx, customer.Email, customer.FirstName, tour.Name, string(booking.Status)); err != nil {
		log.Printf("[BOOKING] Failed to send status update for %s: %v", booking.ID, err)
	}
}
