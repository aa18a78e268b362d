package service

import (
	"context"
	"strings"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	audit        *AuditService
}

func NewCategoryService(categoryRepo repository.CategoryRepository, audit *AuditService) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, audit: audit}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *CategoryRequest) apply(category *domain.Category) {
	category.Name = strings.TrimSpace(r.Name)
	category.Description = optional(r.Description)
	category.Status = recordStatus(r.Status)
}

func (s *CategoryService) Create(ctx context.Context, actor Actor, req CategoryRequest) (*domain.Category, error) {
	now := time.Now()
	category := &domain.Category{
		ID:        uuid.New(),
		AgencyID:  actor.AgencyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(category)

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Category Created",
		ActionType:   domain.AuditActionCreate,
		TableName:    "categories",
		RecordID:     &category.ID,
		Details:      category,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, agencyID, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id, agencyID)
}

func (s *CategoryService) List(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) (repository.PageResult[*domain.Category], error) {
	page = page.Normalize()
	categories, total, err := s.categoryRepo.ListByAgency(ctx, agencyID, page)
	if err != nil {
		return repository.PageResult[*domain.Category]{}, err
	}
	return repository.NewPageResult(categories, page, total), nil
}

func (s *CategoryService) Update(ctx context.Context, actor Actor, id uuid.UUID, req CategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id, actor.AgencyID)
	if err != nil {
		return nil, err
	}

	before := *category
	req.apply(category)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Category Updated",
		ActionType:   domain.AuditActionUpdate,
		TableName:    "categories",
		RecordID:     &category.ID,
		Details:      ChangedFields(&before, category),
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id, actor.AgencyID); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &actor.AgencyID,
		AgencyUserID: &actor.UserID,
		Role:         actor.Role,
		Action:       "Category Deleted",
		ActionType:   domain.AuditActionDelete,
		TableName:    "categories",
		RecordID:     &id,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	return nil
}
