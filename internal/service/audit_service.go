package service

import (
	"context"
	"encoding/json"
	"log"
	"reflect"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/google/uuid"
)

// AuditService appends back-office activity to the audit trail. Audit
// failures are logged and swallowed: a missing log line must never fail
// the mutation it describes.
type AuditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// AuditEntry is the caller-facing shape of one audit event.
type AuditEntry struct {
	AgencyID     *uuid.UUID
	AgencyUserID *uuid.UUID
	Role         string
	Action       string
	ActionType   domain.AuditActionType
	TableName    string
	RecordID     *uuid.UUID
	Details      interface{}
	Status       domain.AuditStatus
	IPAddress    string
	UserAgent    string
}

func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	var details json.RawMessage
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			log.Printf("[AUDIT] Failed to encode details for %q: %v", entry.Action, err)
		} else {
			details = raw
		}
	}

	if entry.Status == "" {
		entry.Status = domain.AuditStatusSuccess
	}

	row := &domain.AuditLog{
		ID:           uuid.New(),
		AgencyID:     entry.AgencyID,
		AgencyUserID: entry.AgencyUserID,
		Action:       entry.Action,
		ActionType:   entry.ActionType,
		TableName:    entry.TableName,
		RecordID:     entry.RecordID,
		Details:      details,
		Status:       entry.Status,
		CreatedAt:    time.Now(),
	}
	if entry.Role != "" {
		row.Role = &entry.Role
	}
	if entry.IPAddress != "" {
		row.IPAddress = &entry.IPAddress
	}
	if entry.UserAgent != "" {
		row.UserAgent = &entry.UserAgent
	}

	if err := s.auditRepo.Create(ctx, row); err != nil {
		log.Printf("[AUDIT] Failed to record %q: %v", entry.Action, err)
	}
}

func (s *AuditService) List(ctx context.Context, agencyID uuid.UUID, page repository.PageRequest) (repository.PageResult[*domain.AuditLog], error) {
	page = page.Normalize()
	entries, total, err := s.auditRepo.ListByAgency(ctx, agencyID, page)
	if err != nil {
		return repository.PageResult[*domain.AuditLog]{}, err
	}
	return repository.NewPageResult(entries, page, total), nil
}

// FieldChange captures one old/new pair in an update diff.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// ChangedFields compares two records field by field and returns only
// what changed, keyed by JSON field name. Bookkeeping columns are
// ignored by default.
func ChangedFields(oldRec, newRec interface{}, ignoreKeys ...string) map[string]FieldChange {
	if len(ignoreKeys) == 0 {
		ignoreKeys = []string{"created_at", "updated_at"}
	}
	ignored := make(map[string]struct{}, len(ignoreKeys))
	for _, k := range ignoreKeys {
		ignored[k] = struct{}{}
	}

	oldMap := toFieldMap(oldRec)
	newMap := toFieldMap(newRec)

	changes := make(map[string]FieldChange)
	for key, newVal := range newMap {
		if _, skip := ignored[key]; skip {
			continue
		}
		oldVal := oldMap[key]
		if !reflect.DeepEqual(oldVal, newVal) {
			changes[key] = FieldChange{Old: oldVal, New: newVal}
		}
	}
	return changes
}

// toFieldMap flattens a record into its JSON representation so the diff
// compares what clients actually see.
func toFieldMap(rec interface{}) map[string]interface{} {
	if rec == nil {
		return map[string]interface{}{}
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}
