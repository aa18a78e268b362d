package service

import (
	"context"
	"strings"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
)

type HotelService struct {
	hotelRepo repository.HotelRepository
	audit     *AuditService
}

func NewHotelService(hotelRepo repository.HotelRepository, audit *AuditService) *HotelService {
	return &HotelService{hotelRepo: hotelRepo, audit: audit}
}

type HotelRequest struct {
	LocationID    *uuid.UUID `json:"location_id"`
	Name          string     `json:"name" validate:"required,min=2,max=255"`
	Description   string     `json:"description" validate:"max=2000"`
	Address       string     `json:"address" validate:"max=500"`
	Images        []string   `json:"images" validate:"dive,url"`
	Amenities     []string   `json:"amenities" validate:"dive,max=100"`
	HotelRating   int        `json:"hotel_rating" validate:"gte=0,lte=5"`
	PricePerNight *float64   `json:"price_per_night" validate:"omitempty,gte=0"`
	Status        string     `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *HotelRequest) apply(hotel *domain.Hotel) {
	hotel.LocationID = r.LocationID
	hotel.Name = strings.TrimSpace(r.Name)
	hotel.Description = optional(r.Description)
	hotel.Address = optional(r.Address)
	hotel.Images = r.Images
	hotel.Amenities = r.Amenities
	hotel.HotelRating = r.HotelRating
	hotel.PricePerNight = r.PricePerNight
	hotel.Status = recordStatus(r.Status)
}

func (s *HotelService) Create(ctx context.Context, actor Actor, req HotelRequest) (*domain.Hotel, error) {
	now := time.Now()
	hotel := &domain.Hotel{
		ID:        uuid.New(),
		AgencyID:  actor.AgencyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(hotel)

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Hotel Created",
		ActionType:   domain.AuditActionCreate,
		TableName:    "hotels",
		RecordID:     &hotel.ID,
		Details:      hotel,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return hotel, nil
}

func (s *HotelService) Get(ctx context.Context, agencyID, id uuid.UUID) (*domain.Hotel, error) {
	return s.hotelRepo.GetByID(ctx, id, agencyID)
}

func (s *HotelService) List(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) (repository.PageResult[*domain.Hotel], error) {
	page = page.Normalize()
	hotels, total, err := s.hotelRepo.ListByAgency(ctx, agencyID, page)
	if err != nil {
		return repository.PageResult[*domain.Hotel]{}, err
	}
	return repository.NewPageResult(hotels, page, total), nil
}

func (s *HotelService) Update(ctx context.Context, actor Actor, id uuid.UUID, req HotelRequest) (*domain.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, id, actor.AgencyID)
	if err != nil {
		return nil, err
	}

	before := *hotel
	req.apply(hotel)

	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Hotel Updated",
		ActionType:   domain.AuditActionUpdate,
		TableName:    "hotels",
		RecordID:     &hotel.ID,
		Details:      ChangedFields(&before, hotel),
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return hotel, nil
}

func (s *HotelService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := s.hotelRepo.Delete(ctx, id, actor.AgencyID); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Hotel Deleted",
		ActionType:   domain.AuditActionDelete,
		TableName:    "hotels",
		RecordID:     &id,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return nil
}
