package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type categoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a PostgreSQL category repository
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (
			id, agency_id, name, description, status, created_at, updated_at
		) VALUES (
			:id, :agency_id, :name, :description, :status, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id, agencyID uuid.UUID) (*domain.Category, error) {
	query := `SELECT * FROM categories WHERE id = $1 AND agency_id = $2`

	var category domain.Category
	err := r.db.GetContext(ctx, &category, query, id, agencyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) ([]*domain.Category, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM categories WHERE agency_id = $1`, agencyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	query := `
		SELECT * FROM categories
		WHERE agency_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	var categories []*domain.Category
	if err := r.db.SelectContext(ctx, &categories, query, agencyID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	category.UpdatedAt = time.Now()

	query := `
		UPDATE categories SET
			name = :name,
			description = :description,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id AND agency_id = :agency_id`

	result, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id, agencyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND agency_id = $2`, id, agencyID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
