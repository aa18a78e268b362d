package postgres

import (
	"context"
	"fmt"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type auditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a PostgreSQL audit log repository
func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, agency_id, agency_user_id, role, action, action_type,
			table_name, record_id, details, audit_status, ip_address,
			user_agent, created_at
		) VALUES (
			:id, :agency_id, :agency_user_id, :role, :action, :action_type,
			:table_name, :record_id, :details, :audit_status, :ip_address,
			:user_agent, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) ([]*domain.AuditLog, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs WHERE agency_id = $1`, agencyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query := `
		SELECT * FROM audit_logs
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var entries []*domain.AuditLog
	if err := r.db.SelectContext(ctx, &entries, query, agencyID, page.PageSize, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, total, nil
}
