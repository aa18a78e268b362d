package service

import (
	"context"
	"strings"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
)

type TourService struct {
	tourRepo repository.TourRepository
	audit    *AuditService
}

func NewTourService(tourRepo repository.TourRepository, audit *AuditService) *TourService {
	return &TourService{tourRepo: tourRepo, audit: audit}
}

type TourRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	LocationID   *uuid.UUID `json:"location_id"`
	Name         string     `json:"name" validate:"required,min=2,max=255"`
	Description  string     `json:"description" validate:"max=5000"`
	Price        float64    `json:"price" validate:"gte=0"`
	DurationDays int        `json:"duration_days" validate:"gte=1"`
	MaxGuests    *int       `json:"max_guests" validate:"omitempty,gte=1"`
	Images       []string   `json:"images" validate:"dive,url"`
	Status       string     `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *TourRequest) apply(tour *domain.Tour) {
	tour.CategoryID = r.CategoryID
	tour.LocationID = r.LocationID
	tour.Name = strings.TrimSpace(r.Name)
	tour.Description = optional(r.Description)
	tour.Price = r.Price
	tour.DurationDays = r.DurationDays
	tour.MaxGuests = r.MaxGuests
	tour.Images = r.Images
	tour.Status = recordStatus(r.Status)
}

func (s *TourService) Create(ctx context.Context, actor Actor, req TourRequest) (*domain.Tour, error) {
	now := time.Now()
	tour := &domain.Tour{
		ID:        uuid.New(),
		AgencyID:  actor.AgencyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(tour)

	if err := s.tourRepo.Create(ctx, tour); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Tour Created",
		ActionType:   domain.AuditActionCreate,
		TableName:    "tours",
		RecordID:     &tour.ID,
		Details:      tour,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return tour, nil
}

func (s *TourService) Get(ctx context.Context, agencyID, id uuid.UUID) (*domain.Tour, error) {
	return s.tourRepo.GetByID(ctx, id, agencyID)
}

func (s *TourService) List(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) (repository.PageResult[*domain.Tour], error) {
	page = page.Normalize()
	tours, total, err := s.tourRepo.ListByAgency(ctx, agencyID, page)
	if err != nil {
		return repository.PageResult[*domain.Tour]{}, err
	}
	return repository.NewPageResult(tours, page, total), nil
}

func (s *TourService) Update(ctx context.Context, actor Actor, id uuid.UUID, req TourRequest) (*domain.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, id, actor.AgencyID)
	if err != nil {
		return nil, err
	}

	before := *tour
	req.apply(tour)

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Tour Updated",
		ActionType:   domain.AuditActionUpdate,
		TableName:    "tours",
		RecordID:     &tour.ID,
		Details:      ChangedFields(&before, tour),
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return tour, nil
}

func (s *TourService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := s.tourRepo.Delete(ctx, id, actor.AgencyID); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Tour Deleted",
		ActionType:   domain.AuditActionDelete,
		TableName:    "tours",
		RecordID:     &id,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return nil
}
