package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

type agencyUserRepository struct {
	db *sqlx.DB
}

// NewAgencyUserRepository creates a PostgreSQL agency user repository
func NewAgencyUserRepository(db *sqlx.DB) repository.AgencyUserRepository {
	return &agencyUserRepository{db: db}
}

func (r *agencyUserRepository) Create(ctx context.Context, user *domain.AgencyUser) error {
	query := `
		INSERT INTO agency_users (
			id, agency_id, email, password_hash, first_name, last_name,
			role, status, avatar_url, created_at, updated_at
		) VALUES (
			:id, :agency_id, :email, :password_hash, :first_name, :last_name,
			:role, :status, :avatar_url, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to create agency user: %w", err)
	}
	return nil
}

func (r *agencyUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AgencyUser, error) {
	query := `SELECT * FROM agency_users WHERE id = $1`

	var user domain.AgencyUser
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency user by id: %w", err)
	}
	return &user, nil
}

func (r *agencyUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AgencyUser, error) {
	query := `SELECT * FROM agency_users WHERE email = $1`

	var user domain.AgencyUser
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency user by email: %w", err)
	}
	return &user, nil
}

func (r *agencyUserRepository) Update(ctx context.Context, user *domain.AgencyUser) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE agency_users SET
			email = :email,
			first_name = :first_name,
			last_name = :last_name,
			role = :role,
			status = :status,
			avatar_url = :avatar_url,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update agency user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *agencyUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE agency_users SET last_login_at = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *agencyUserRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) ([]*domain.AgencyUser, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM agency_users WHERE agency_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, agencyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count agency users: %w", err)
	}

	query := `
		SELECT * FROM agency_users
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var users []*domain.AgencyUser
	if err := r.db.SelectContext(ctx, &users, query, agencyID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list agency users: %w", err)
	}
	return users, total, nil
}

type customerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a PostgreSQL customer repository
func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (
			id, email, password_hash, first_name, last_name,
			phone, status, created_at, updated_at
		) VALUES (
			:id, :email, :password_hash, :first_name, :last_name,
			:phone, :status, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, customer)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT * FROM customers WHERE id = $1`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer by id: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT * FROM customers WHERE email = $1`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	customer.UpdatedAt = time.Now()

	query := `
		UPDATE customers SET
			email = :email,
			first_name = :first_name,
			last_name = :last_name,
			phone = :phone,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, customer)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE customers SET last_login_at = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
