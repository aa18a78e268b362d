package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditActionType string

const (
	AuditActionCreate AuditActionType = "CREATE"
	AuditActionUpdate AuditActionType = "UPDATE"
	AuditActionDelete AuditActionType = "DELETE"
	AuditActionLogin  AuditActionType = "LOGIN"
	AuditActionLogout AuditActionType = "LOGOUT"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "SUCCESS"
	AuditStatusFailed  AuditStatus = "FAILED"
)

// AuditLog is an append-only record of a back-office mutation. Details
// holds the created record or an old/new field diff as raw JSON.
type AuditLog struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	AgencyID     *uuid.UUID      `json:"agency_id,omitempty" db:"agency_id"`
	AgencyUserID *uuid.UUID      `json:"agency_user_id,omitempty" db:"agency_user_id"`
	Role         *string         `json:"role,omitempty" db:"role"`
	Action       string          `json:"action" db:"action"`
	ActionType   AuditActionType `json:"action_type" db:"action_type"`
	TableName    string          `json:"table_name" db:"table_name"`
	RecordID     *uuid.UUID      `json:"record_id,omitempty" db:"record_id"`
	Details      json.RawMessage `json:"details,omitempty" db:"details"`
	Status       AuditStatus     `json:"audit_status" db:"audit_status"`
	IPAddress    *string         `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent    *string         `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
