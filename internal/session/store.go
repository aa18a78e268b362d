package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/pkg/kvstore"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Config carries the expiry and polling knobs. Zero values fall back to
// the production reference defaults.
type Config struct {
	DefaultDuration     time.Duration // login fallback when no expiry is reported
	CheckInterval       time.Duration // session + subscription poller tick
	WarningWindow       time.Duration // "session expiring soon"
	SubscriptionWarning time.Duration // "subscription expiring soon"
	TombstoneTTL        time.Duration // how long "just expired" stays observable
	Clock               func() time.Time
}

func (c *Config) applyDefaults() {
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = time.Hour
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 10 * time.Second
	}
	if c.WarningWindow <= 0 {
		c.WarningWindow = 5 * time.Minute
	}
	if c.SubscriptionWarning <= 0 {
		c.SubscriptionWarning = 30 * 24 * time.Hour
	}
	if c.TombstoneTTL <= 0 {
		c.TombstoneTTL = 5 * time.Minute
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
}

type subscriptionState struct {
	expired      bool
	expiringSoon bool
}

// Store is the single source of truth for who is logged in, with what
// role, until when. State lives in memory and is mirrored synchronously
// to the durable key-value store so logins survive a restart. Only the
// session poller may unilaterally destroy a session.
type Store struct {
	kv  *kvstore.Client
	cfg Config

	mu            sync.Mutex
	agency        map[string]*AgencySession
	customer      map[string]*CustomerSession
	subscriptions map[uuid.UUID]subscriptionState
	onExpired     func(AgencySession)

	sessionPoller      *poller
	subscriptionPoller *poller
}

func NewStore(kv *kvstore.Client, cfg Config) *Store {
	cfg.applyDefaults()

	s := &Store{
		kv:            kv,
		cfg:           cfg,
		agency:        make(map[string]*AgencySession),
		customer:      make(map[string]*CustomerSession),
		subscriptions: make(map[uuid.UUID]subscriptionState),
	}
	s.sessionPoller = newPoller("session", cfg.CheckInterval, s.CheckSessions)
	s.subscriptionPoller = newPoller("subscription", cfg.CheckInterval, s.CheckSubscriptions)
	return s
}

// OnSessionExpired registers a hook invoked exactly once per session the
// poller force-expires. Must be set before the first login.
func (s *Store) OnSessionExpired(fn func(AgencySession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// Restore loads persisted sessions at startup. Malformed records are
// dropped and logged, never surfaced: a corrupt entry means that login
// is simply gone and the user signs in again. Restore makes no network
// calls beyond the durable store itself.
func (s *Store) Restore(ctx context.Context) {
	restoredAgency := s.restoreAgency(ctx)
	restoredCustomer := s.restoreCustomer(ctx)

	if restoredAgency+restoredCustomer > 0 {
		log.Printf("[SESSION] Restored %d agency and %d customer sessions", restoredAgency, restoredCustomer)
		s.startPollers()
	}
}

func (s *Store) restoreAgency(ctx context.Context) int {
	keys, err := s.kv.List(ctx, agencyKeyPrefix)
	if err != nil {
		log.Printf("[SESSION] Restore: listing agency sessions failed: %v", err)
		return 0
	}

	restored := 0
	for _, key := range keys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			continue
		}
		rec, err := decodeAgencyRecord(raw)
		if err != nil {
			log.Printf("[SESSION] Restore: dropping malformed record %q", key)
			_ = s.kv.Delete(ctx, key)
			continue
		}
		sess := rec.session()
		s.mu.Lock()
		s.agency[sess.Token] = sess
		s.evaluateSubscriptionLocked(sess, s.cfg.Clock())
		s.mu.Unlock()
		restored++
	}
	return restored
}

func (s *Store) restoreCustomer(ctx context.Context) int {
	keys, err := s.kv.List(ctx, customerKeyPrefix)
	if err != nil {
		log.Printf("[SESSION] Restore: listing customer sessions failed: %v", err)
		return 0
	}

	restored := 0
	for _, key := range keys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			continue
		}
		rec, err := decodeCustomerRecord(raw)
		if err != nil {
			log.Printf("[SESSION] Restore: dropping malformed record %q", key)
			_ = s.kv.Delete(ctx, key)
			continue
		}
		sess := rec.session()
		s.mu.Lock()
		s.customer[sess.Token] = sess
		s.mu.Unlock()
		restored++
	}
	return restored
}

// LoginAgency records a successful back-office login. The expiry instant
// is computed here, once; nothing mutates it afterward short of a fresh
// login. The durable store is written before memory so a persistence
// failure leaves no partial state.
func (s *Store) LoginAgency(ctx context.Context, user domain.AgencyUser, token, role string, agency domain.Agency, expiresIn time.Duration) (*AgencySession, error) {
	if token == "" {
		return nil, errors.New("session: empty token")
	}
	if expiresIn <= 0 {
		expiresIn = s.cfg.DefaultDuration
	}

	now := s.cfg.Clock()
	sess := &AgencySession{
		User:      user,
		Agency:    agency,
		Role:      role,
		Token:     token,
		ExpiresAt: now.Add(expiresIn),
	}

	if err := s.persistAgency(ctx, sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.agency[token] = sess
	s.evaluateSubscriptionLocked(sess, now)
	s.mu.Unlock()

	s.startPollers()
	return sess, nil
}

// LoginCustomer records a successful customer portal login.
func (s *Store) LoginCustomer(ctx context.Context, user domain.Customer, token string, expiresIn time.Duration) (*CustomerSession, error) {
	if token == "" {
		return nil, errors.New("session: empty token")
	}
	if expiresIn <= 0 {
		expiresIn = s.cfg.DefaultDuration
	}

	sess := &CustomerSession{
		User:      user,
		Token:     token,
		ExpiresAt: s.cfg.Clock().Add(expiresIn),
	}

	if err := s.persistCustomer(ctx, sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.customer[token] = sess
	s.mu.Unlock()

	s.startPollers()
	return sess, nil
}

// LogoutAgency clears one agency session from memory and the durable
// store. Idempotent: logging out an unknown or already-cleared token is
// a no-op. When the registry empties, both pollers stop.
func (s *Store) LogoutAgency(ctx context.Context, token string) error {
	s.mu.Lock()
	sess, ok := s.agency[token]
	if ok {
		delete(s.agency, token)
		s.dropSubscriptionIfOrphanedLocked(sess.Agency.ID)
	}
	empty := len(s.agency) == 0 && len(s.customer) == 0
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, agencyKeyPrefix+token); err != nil {
		return err
	}
	if empty {
		s.stopPollers()
	}
	return nil
}

// LogoutCustomer mirrors LogoutAgency for the customer key namespace.
func (s *Store) LogoutCustomer(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.customer, token)
	empty := len(s.agency) == 0 && len(s.customer) == 0
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, customerKeyPrefix+token); err != nil {
		return err
	}
	if empty {
		s.stopPollers()
	}
	return nil
}

// UpdateAgencyUser replaces the identity on an existing session and
// persists it. The expiry instant is untouched.
func (s *Store) UpdateAgencyUser(ctx context.Context, token string, user domain.AgencyUser) error {
	s.mu.Lock()
	sess, ok := s.agency[token]
	if !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	sess.User = user
	updated := *sess
	s.mu.Unlock()

	return s.persistAgency(ctx, &updated)
}

// CheckSessions is the session poller tick: every stored expiry is
// re-evaluated against the current instant and crossed boundaries are
// enforced immediately, with no grace period. This is the only path
// that destroys a session without an explicit logout call.
func (s *Store) CheckSessions(ctx context.Context) {
	now := s.cfg.Clock()

	s.mu.Lock()
	var expiredAgency []*AgencySession
	for token, sess := range s.agency {
		if Expired(now, sess.ExpiresAt) {
			delete(s.agency, token)
			s.dropSubscriptionIfOrphanedLocked(sess.Agency.ID)
			expiredAgency = append(expiredAgency, sess)
		}
	}
	var expiredCustomer []string
	for token, sess := range s.customer {
		if Expired(now, sess.ExpiresAt) {
			delete(s.customer, token)
			expiredCustomer = append(expiredCustomer, token)
		}
	}
	onExpired := s.onExpired
	empty := len(s.agency) == 0 && len(s.customer) == 0
	s.mu.Unlock()

	for _, sess := range expiredAgency {
		log.Printf("[SESSION] Session expired for %s, logging out", sess.User.Email)
		_ = s.kv.Delete(ctx, agencyKeyPrefix+sess.Token)
		_ = s.kv.SetTTL(ctx, expiredKeyPrefix+sess.Token, []byte("1"), s.cfg.TombstoneTTL)
		if onExpired != nil {
			onExpired(*sess)
		}
	}
	for _, token := range expiredCustomer {
		_ = s.kv.Delete(ctx, customerKeyPrefix+token)
		_ = s.kv.SetTTL(ctx, expiredKeyPrefix+token, []byte("1"), s.cfg.TombstoneTTL)
	}

	if empty && (len(expiredAgency) > 0 || len(expiredCustomer) > 0) {
		s.stopPollers()
	}
}

// CheckSubscriptions is the subscription poller tick. It only flips
// UI-facing flags; an expired subscription never destroys a session.
func (s *Store) CheckSubscriptions(_ context.Context) {
	now := s.cfg.Clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.agency {
		s.evaluateSubscriptionLocked(sess, now)
	}
}

func (s *Store) evaluateSubscriptionLocked(sess *AgencySession, now time.Time) {
	at := time.Time{}
	if sess.Agency.SubscriptionExpiresAt != nil {
		at = *sess.Agency.SubscriptionExpiresAt
	}
	s.subscriptions[sess.Agency.ID] = subscriptionState{
		expired:      Expired(now, at),
		expiringSoon: ExpiringSoon(now, at, s.cfg.SubscriptionWarning),
	}
}

func (s *Store) dropSubscriptionIfOrphanedLocked(agencyID uuid.UUID) {
	for _, sess := range s.agency {
		if sess.Agency.ID == agencyID {
			return
		}
	}
	delete(s.subscriptions, agencyID)
}

// ValidAgency returns the session for token if it exists and has not
// crossed its expiry boundary. Read-only; never mutates state.
func (s *Store) ValidAgency(token string) (AgencySession, bool) {
	now := s.cfg.Clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.agency[token]
	if !ok || Expired(now, sess.ExpiresAt) {
		return AgencySession{}, false
	}
	return *sess, true
}

// ValidCustomer is the customer-side counterpart of ValidAgency.
func (s *Store) ValidCustomer(token string) (CustomerSession, bool) {
	now := s.cfg.Clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.customer[token]
	if !ok || Expired(now, sess.ExpiresAt) {
		return CustomerSession{}, false
	}
	return *sess, true
}

// AgencyRole returns the role bound to token at login time.
func (s *Store) AgencyRole(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.agency[token]
	if !ok {
		return "", false
	}
	return sess.Role, true
}

// TimeUntilExpiry reports the remaining session lifetime, zero if the
// token is unknown or already expired.
func (s *Store) TimeUntilExpiry(token string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.agency[token]
	if !ok {
		return 0
	}
	return Remaining(s.cfg.Clock(), sess.ExpiresAt)
}

// IsExpiringSoon reports whether the session ends within the warning
// window. Cosmetic: it feeds the countdown banner, never enforcement.
func (s *Store) IsExpiringSoon(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.agency[token]
	if !ok {
		return false
	}
	return ExpiringSoon(s.cfg.Clock(), sess.ExpiresAt, s.cfg.WarningWindow)
}

// SubscriptionExpired reports the blocking flag for an agency.
func (s *Store) SubscriptionExpired(agencyID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriptions[agencyID].expired
}

// SubscriptionExpiringSoon reports the 30-day warning flag.
func (s *Store) SubscriptionExpiringSoon(agencyID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriptions[agencyID].expiringSoon
}

// WasExpired reports whether token was recently force-expired by the
// poller, so the HTTP layer can answer "session expired" instead of a
// bare unauthorized.
func (s *Store) WasExpired(ctx context.Context, token string) bool {
	ok, err := s.kv.Exists(ctx, expiredKeyPrefix+token)
	return err == nil && ok
}

// ActiveSessions returns the current registry size.
func (s *Store) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agency) + len(s.customer)
}

// PollersRunning reports whether the periodic checks are active.
func (s *Store) PollersRunning() bool {
	return s.sessionPoller.running() || s.subscriptionPoller.running()
}

// Close stops both pollers. Safe to call more than once.
func (s *Store) Close() {
	s.stopPollers()
}

func (s *Store) startPollers() {
	ctx := context.Background()
	if !s.sessionPoller.running() {
		s.sessionPoller.start(ctx)
	}
	if !s.subscriptionPoller.running() {
		s.subscriptionPoller.start(ctx)
	}
}

func (s *Store) stopPollers() {
	s.sessionPoller.stop()
	s.subscriptionPoller.stop()
}

func (s *Store) persistAgency(ctx context.Context, sess *AgencySession) error {
	raw, err := encode(sess.record())
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, agencyKeyPrefix+sess.Token, raw)
}

func (s *Store) persistCustomer(ctx context.Context, sess *CustomerSession) error {
	raw, err := encode(sess.record())
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, customerKeyPrefix+sess.Token, raw)
}
