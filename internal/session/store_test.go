package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/pkg/kvstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fakeClock is a settable time source shared by a test and the store.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestKV(t *testing.T) *kvstore.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return kvstore.New(client)
}

func newTestStore(t *testing.T, kv *kvstore.Client, clock *fakeClock) *Store {
	t.Helper()
	s := NewStore(kv, Config{
		DefaultDuration:     time.Hour,
		CheckInterval:       time.Hour, // ticks driven manually unless a test says otherwise
		WarningWindow:       5 * time.Minute,
		SubscriptionWarning: 30 * 24 * time.Hour,
		Clock:               clock.Now,
	})
	t.Cleanup(s.Close)
	return s
}

func testAgencyUser() domain.AgencyUser {
	return domain.AgencyUser{
		ID:       uuid.New(),
		AgencyID: uuid.New(),
		Email:    "admin@exodustravels.com",
		Role:     domain.RoleAgencyAdmin,
		Status:   domain.UserStatusActive,
	}
}

func testAgencyFor(user domain.AgencyUser, subExpires *time.Time) domain.Agency {
	return domain.Agency{
		ID:                    user.AgencyID,
		Name:                  "Exodus Travels",
		Email:                 "owner@exodustravels.com",
		SubscriptionExpiresAt: subExpires,
		Status:                domain.AgencyStatusActive,
	}
}

func TestLoginAgencyAndValidate(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(t, newTestKV(t), clock)

	user := testAgencyUser()
	agency := testAgencyFor(user, nil)

	sess, err := store.LoginAgency(ctx, user, "tok-1", user.Role, agency, 30*time.Minute)
	if err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}
	if want := clock.Now().Add(30 * time.Minute); !sess.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, want)
	}

	got, ok := store.ValidAgency("tok-1")
	if !ok {
		t.Fatal("ValidAgency = false for live session")
	}
	if got.User.ID != user.ID || got.Role != domain.RoleAgencyAdmin {
		t.Errorf("session identity mismatch: got user %s role %s", got.User.ID, got.Role)
	}

	if _, ok := store.ValidAgency("unknown"); ok {
		t.Error("ValidAgency = true for unknown token")
	}
	if !store.PollersRunning() {
		t.Error("pollers not running after login")
	}
}

func TestLoginAgencyRejectsEmptyToken(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(t, newTestKV(t), clock)

	user := testAgencyUser()
	if _, err := store.LoginAgency(context.Background(), user, "", user.Role, testAgencyFor(user, nil), time.Hour); err == nil {
		t.Fatal("expected error for empty token")
	}
	if store.ActiveSessions() != 0 {
		t.Error("rejected login left state behind")
	}
}

func TestLoginAgencyDefaultDuration(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(t, newTestKV(t), clock)

	user := testAgencyUser()
	sess, err := store.LoginAgency(ctx, user, "tok-1", user.Role, testAgencyFor(user, nil), 0)
	if err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}
	if want := clock.Now().Add(time.Hour); !sess.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want default %v", sess.ExpiresAt, want)
	}
}

func TestLogoutAgencyIdempotent(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(t, newTestKV(t), clock)

	user := testAgencyUser()
	if _, err := store.LoginAgency(ctx, user, "tok-1", user.Role, testAgencyFor(user, nil), time.Hour); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}

	if err := store.LogoutAgency(ctx, "tok-1"); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := store.LogoutAgency(ctx, "tok-1"); err != nil {
		t.Fatalf("second logout not a no-op: %v", err)
	}
	if err := store.LogoutAgency(ctx, "never-existed"); err != nil {
		t.Fatalf("logout of unknown token: %v", err)
	}

	if _, ok := store.ValidAgency("tok-1"); ok {
		t.Error("session survived logout")
	}
	if store.PollersRunning() {
		t.Error("pollers still running with empty registry")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	kv := newTestKV(t)

	store := newTestStore(t, kv, clock)
	user := testAgencyUser()
	agency := testAgencyFor(user, nil)
	if _, err := store.LoginAgency(ctx, user, "tok-1", user.Role, agency, time.Hour); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}
	customer := domain.Customer{ID: uuid.New(), Email: "jane@example.com", FirstName: "Jane"}
	if _, err := store.LoginCustomer(ctx, customer, "ctok-1", time.Hour); err != nil {
		t.Fatalf("LoginCustomer: %v", err)
	}
	store.Close()

	// A fresh store over the same backing data sees the same sessions.
	restored := newTestStore(t, kv, clock)
	restored.Restore(ctx)

	sess, ok := restored.ValidAgency("tok-1")
	if !ok {
		t.Fatal("agency session not restored")
	}
	if sess.User.ID != user.ID || sess.Role != user.Role {
		t.Errorf("restored identity mismatch: %s / %s", sess.User.ID, sess.Role)
	}
	if !sess.ExpiresAt.Equal(clock.Now().Add(time.Hour)) {
		t.Errorf("restored expiry drifted: %v", sess.ExpiresAt)
	}
	if _, ok := restored.ValidCustomer("ctok-1"); !ok {
		t.Error("customer session not restored")
	}
	if !restored.PollersRunning() {
		t.Error("pollers not running after restoring sessions")
	}
}

func TestRestoreDropsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	kv := newTestKV(t)

	if err := kv.Set(ctx, "session:agency:bad", []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Parses but fails validation: no token, nil IDs.
	if err := kv.Set(ctx, "session:agency:empty", []byte(`{"role":"Agency_Admin"}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := newTestStore(t, kv, clock)
	store.Restore(ctx)

	if n := store.ActiveSessions(); n != 0 {
		t.Fatalf("ActiveSessions = %d after restoring only garbage", n)
	}
	for _, key := range []string{"session:agency:bad", "session:agency:empty"} {
		if _, err := kv.Get(ctx, key); !errors.Is(err, kvstore.ErrNotFound) {
			t.Errorf("malformed record %q not deleted", key)
		}
	}
	if store.PollersRunning() {
		t.Error("pollers started with nothing restored")
	}
}

func TestUpdateAgencyUserKeepsExpiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	kv := newTestKV(t)
	store := newTestStore(t, kv, clock)

	user := testAgencyUser()
	sess, err := store.LoginAgency(ctx, user, "tok-1", user.Role, testAgencyFor(user, nil), time.Hour)
	if err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}
	originalExpiry := sess.ExpiresAt

	updated := user
	updated.FirstName = "Renamed"
	if err := store.UpdateAgencyUser(ctx, "tok-1", updated); err != nil {
		t.Fatalf("UpdateAgencyUser: %v", err)
	}

	got, ok := store.ValidAgency("tok-1")
	if !ok {
		t.Fatal("session vanished after update")
	}
	if got.User.FirstName != "Renamed" {
		t.Errorf("identity not updated: %q", got.User.FirstName)
	}
	if !got.ExpiresAt.Equal(originalExpiry) {
		t.Errorf("expiry moved on profile update: %v != %v", got.ExpiresAt, originalExpiry)
	}

	// The durable record was refreshed too.
	fresh := newTestStore(t, kv, clock)
	fresh.Restore(ctx)
	if got, ok := fresh.ValidAgency("tok-1"); !ok || got.User.FirstName != "Renamed" {
		t.Error("update not persisted to the durable store")
	}

	if err := store.UpdateAgencyUser(ctx, "missing", updated); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown token: err = %v, want ErrSessionNotFound", err)
	}
}

func TestCheckSessionsForcesLogout(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	kv := newTestKV(t)
	store := newTestStore(t, kv, clock)

	var expired int64
	store.OnSessionExpired(func(sess AgencySession) {
		atomic.AddInt64(&expired, 1)
	})

	user := testAgencyUser()
	if _, err := store.LoginAgency(ctx, user, "tok-1", user.Role, testAgencyFor(user, nil), 10*time.Minute); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}

	// Before the boundary nothing happens.
	clock.Advance(9 * time.Minute)
	store.CheckSessions(ctx)
	if _, ok := store.ValidAgency("tok-1"); !ok {
		t.Fatal("session destroyed before expiry")
	}

	// Crossing the boundary destroys it, exactly once.
	clock.Advance(time.Minute)
	store.CheckSessions(ctx)
	store.CheckSessions(ctx)

	if _, ok := store.ValidAgency("tok-1"); ok {
		t.Error("expired session still valid")
	}
	if n := atomic.LoadInt64(&expired); n != 1 {
		t.Errorf("expired hook fired %d times, want 1", n)
	}
	if !store.WasExpired(ctx, "tok-1") {
		t.Error("expired flag not observable")
	}
	if _, err := kv.Get(ctx, "session:agency:tok-1"); !errors.Is(err, kvstore.ErrNotFound) {
		t.Error("durable record survived forced logout")
	}
	if store.PollersRunning() {
		t.Error("pollers still running after the registry emptied")
	}
}

func TestPollerExpiresSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewStore(kvstore.New(client), Config{
		CheckInterval: 10 * time.Millisecond,
	})
	t.Cleanup(store.Close)

	done := make(chan struct{})
	var once sync.Once
	store.OnSessionExpired(func(AgencySession) {
		once.Do(func() { close(done) })
	})

	user := testAgencyUser()
	if _, err := store.LoginAgency(ctx, user, "tok-1", user.Role, testAgencyFor(user, nil), 30*time.Millisecond); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never expired the session")
	}

	if _, ok := store.ValidAgency("tok-1"); ok {
		t.Error("session still valid after poller sweep")
	}
}

func TestSubscriptionFlagsNeverDestroySessions(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(t, newTestKV(t), clock)

	user := testAgencyUser()
	subExpiry := clock.Now().Add(10 * time.Minute)
	agency := testAgencyFor(user, &subExpiry)

	if _, err := store.LoginAgency(ctx, user, "tok-1", user.Role, agency, 24*time.Hour); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}

	// Within the 30-day window from the start.
	if !store.SubscriptionExpiringSoon(agency.ID) {
		t.Error("warning flag not set inside the notice window")
	}
	if store.SubscriptionExpired(agency.ID) {
		t.Error("expired flag set before the boundary")
	}

	clock.Advance(11 * time.Minute)
	store.CheckSubscriptions(ctx)

	if !store.SubscriptionExpired(agency.ID) {
		t.Error("expired flag not raised after the boundary")
	}
	if store.SubscriptionExpiringSoon(agency.ID) {
		t.Error("warning flag still set after expiry")
	}
	// The session itself is untouched.
	if _, ok := store.ValidAgency("tok-1"); !ok {
		t.Error("subscription expiry destroyed the session")
	}
}

func TestSubscriptionNilExpiryFailsOpen(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(t, newTestKV(t), clock)

	user := testAgencyUser()
	if _, err := store.LoginAgency(ctx, user, "tok-1", user.Role, testAgencyFor(user, nil), time.Hour); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}
	if store.SubscriptionExpired(user.AgencyID) {
		t.Error("nil subscription expiry treated as expired")
	}
	if store.SubscriptionExpiringSoon(user.AgencyID) {
		t.Error("nil subscription expiry treated as expiring")
	}
}

func TestExpiryWarningWindow(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(t, newTestKV(t), clock)

	user := testAgencyUser()
	if _, err := store.LoginAgency(ctx, user, "tok-1", user.Role, testAgencyFor(user, nil), time.Hour); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}

	if store.IsExpiringSoon("tok-1") {
		t.Error("warning raised 1h out with a 5m window")
	}
	clock.Advance(56 * time.Minute)
	if !store.IsExpiringSoon("tok-1") {
		t.Error("warning not raised 4m before expiry")
	}
	if got := store.TimeUntilExpiry("tok-1"); got != 4*time.Minute {
		t.Errorf("TimeUntilExpiry = %v, want 4m", got)
	}
}
