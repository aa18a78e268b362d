package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

// Durable-store key namespaces. Agency and customer sessions are two
// parallel, independent key sets; neither references the other.
const (
	agencyKeyPrefix   = "session:agency:"
	customerKeyPrefix = "session:customer:"
	expiredKeyPrefix  = "session:expired:"
)

var errInvalidRecord = errors.New("session: invalid persisted record")

// agencyRecord is the serialization contract for a persisted agency
// session. Reads are validated; anything that fails validation is
// discarded and treated as absent rather than guessed at.
type agencyRecord struct {
	User      domain.AgencyUser `json:"user"`
	Agency    domain.Agency     `json:"agency"`
	Role      string            `json:"role"`
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expires_at_ms"`
}

type customerRecord struct {
	User      domain.Customer `json:"user"`
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at_ms"`
}

func (r *agencyRecord) validate() error {
	if r.Token == "" || r.ExpiresAt <= 0 {
		return errInvalidRecord
	}
	if r.User.ID == uuid.Nil || r.Agency.ID == uuid.Nil {
		return errInvalidRecord
	}
	if r.Role != domain.RoleAgencyAdmin && r.Role != domain.RoleAgencyUser {
		return errInvalidRecord
	}
	return nil
}

func (r *customerRecord) validate() error {
	if r.Token == "" || r.ExpiresAt <= 0 || r.User.ID == uuid.Nil {
		return errInvalidRecord
	}
	return nil
}

func encode(rec interface{}) ([]byte, error) {
	return json.Marshal(rec)
}

func decodeAgencyRecord(raw []byte) (*agencyRecord, error) {
	var rec agencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errInvalidRecord
	}
	if err := rec.validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func decodeCustomerRecord(raw []byte) (*customerRecord, error) {
	var rec customerRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errInvalidRecord
	}
	if err := rec.validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AgencySession is the in-memory view of one authenticated back-office
// principal. ExpiresAt is computed once at login and never mutated
// afterward except by an explicit re-login.
type AgencySession struct {
	User      domain.AgencyUser
	Agency    domain.Agency
	Role      string
	Token     string
	ExpiresAt time.Time
}

// CustomerSession is the in-memory view of one portal customer login.
type CustomerSession struct {
	User      domain.Customer
	Token     string
	ExpiresAt time.Time
}

func (s *AgencySession) record() *agencyRecord {
	return &agencyRecord{
		User:      s.User,
		Agency:    s.Agency,
		Role:      s.Role,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UnixMilli(),
	}
}

func (s *CustomerSession) record() *customerRecord {
	return &customerRecord{
		User:      s.User,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UnixMilli(),
	}
}

func (r *agencyRecord) session() *AgencySession {
	return &AgencySession{
		User:      r.User,
		Agency:    r.Agency,
		Role:      r.Role,
		Token:     r.Token,
		ExpiresAt: time.UnixMilli(r.ExpiresAt),
	}
}

func (r *customerRecord) session() *CustomerSession {
	return &CustomerSession{
		User:      r.User,
		Token:     r.Token,
		ExpiresAt: time.UnixMilli(r.ExpiresAt),
	}
}
