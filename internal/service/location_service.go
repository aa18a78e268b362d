package service

import (
	"context"
	"strings"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
)

type LocationService struct {
	locationRepo repository.LocationRepository
	audit        *AuditService
}

func NewLocationService(locationRepo repository.LocationRepository, audit *AuditService) *LocationService {
	return &LocationService{locationRepo: locationRepo, audit: audit}
}

type LocationRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Address     string   `json:"address" validate:"max=500"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *LocationRequest) apply(location *domain.Location) {
	location.Name = strings.TrimSpace(r.Name)
	location.Description = optional(r.Description)
	location.Latitude = r.Latitude
	location.Longitude = r.Longitude
	location.Address = optional(r.Address)
	location.Status = recordStatus(r.Status)
}

func (s *LocationService) Create(ctx context.Context, actor Actor, req LocationRequest) (*domain.Location, error) {
	now := time.Now()
	location := &domain.Location{
		ID:        uuid.New(),
		AgencyID:  actor.AgencyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(location)

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Location Created",
		ActionType:   domain.AuditActionCreate,
		TableName:    "locations",
		RecordID:     &location.ID,
		Details:      location,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return location, nil
}

func (s *LocationService) Get(ctx context.Context, agencyID, id uuid.UUID) (*domain.Location, error) {
	return s.locationRepo.GetByID(ctx, id, agencyID)
}

func (s *LocationService) List(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) (repository.PageResult[*domain.Location], error) {
	page = page.Normalize()
	locations, total, err := s.locationRepo.ListByAgency(ctx, agencyID, page)
	if err != nil {
		return repository.PageResult[*domain.Location]{}, err
	}
	return repository.NewPageResult(locations, page, total), nil
}

func (s *LocationService) Update(ctx context.Context, actor Actor, id uuid.UUID, req LocationRequest) (*domain.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id, actor.AgencyID)
	if err != nil {
		return nil, err
	}

	before := *location
	req.apply(location)

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Location Updated",
		ActionType:   domain.AuditActionUpdate,
		TableName:    "locations",
		RecordID:     &location.ID,
		Details:      ChangedFields(&before, location),
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return location, nil
}

func (s *LocationService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := s.locationRepo.Delete(ctx, id, actor.AgencyID); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Location Deleted",
		ActionType:   domain.AuditActionDelete,
		TableName:    "locations",
		RecordID:     &id,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func recordStatus(s string) domain.RecordStatus {
	if s == "" {
		return domain.RecordStatusActive
	}
	return domain.RecordStatus(s)
}
