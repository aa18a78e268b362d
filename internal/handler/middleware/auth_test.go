package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/Anoch123/exodus-instant-booking/pkg/kvstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newGuardedStore(t *testing.T) (*session.Store, *testClock) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := session.NewStore(kvstore.New(client), session.Config{
		CheckInterval: time.Hour,
		Clock:         clock.Now,
	})
	t.Cleanup(store.Close)
	return store, clock
}

func loginTestUser(t *testing.T, store *session.Store, role string, subExpires *time.Time) (string, domain.AgencyUser) {
	t.Helper()
	user := domain.AgencyUser{
		ID:       uuid.New(),
		AgencyID: uuid.New(),
		Email:    "staff@exodustravels.com",
		Role:     role,
		Status:   domain.UserStatusActive,
	}
	agency := domain.Agency{
		ID:                    user.AgencyID,
		Name:                  "Exodus Travels",
		SubscriptionExpiresAt: subExpires,
		Status:                domain.AgencyStatusActive,
	}
	token := "tok-" + uuid.NewString()
	if _, err := store.LoginAgency(context.Background(), user, token, role, agency, time.Hour); err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}
	return token, user
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return body
}

func guardedApp(guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAgencyWithoutToken(t *testing.T) {
	store, _ := newGuardedStore(t)
	app := guardedApp(RequireAgency(store))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["redirect"] != "/agency/login" {
		t.Errorf("redirect = %v, want /agency/login", body["redirect"])
	}
}

func TestRequireAgencyWithValidSession(t *testing.T) {
	store, _ := newGuardedStore(t)
	token, _ := loginTestUser(t, store, domain.RoleAgencyAdmin, nil)

	app := guardedApp(RequireAgency(store))
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireAgencyRoleGate(t *testing.T) {
	store, _ := newGuardedStore(t)
	token, _ := loginTestUser(t, store, domain.RoleAgencyUser, nil)

	app := guardedApp(RequireAgency(store, domain.RoleAgencyAdmin))
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["redirect"] != "/agency/dashboard" {
		t.Errorf("redirect = %v, want /agency/dashboard", body["redirect"])
	}
}

func TestRequireAgencyRoleGateBeatsExpiry(t *testing.T) {
	store, clock := newGuardedStore(t)
	token, _ := loginTestUser(t, store, domain.RoleAgencyUser, nil)

	// Session crosses its boundary but is not yet swept; the role answer
	// still wins over the login prompt on admin-only routes.
	clock.Advance(2 * time.Hour)

	app := guardedApp(RequireAgency(store, domain.RoleAgencyAdmin))
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403 regardless of session validity", resp.StatusCode)
	}
}

func TestRequireAgencyReportsExpiredSession(t *testing.T) {
	store, clock := newGuardedStore(t)
	token, _ := loginTestUser(t, store, domain.RoleAgencyAdmin, nil)

	clock.Advance(2 * time.Hour)
	store.CheckSessions(context.Background())

	app := guardedApp(RequireAgency(store))
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "session expired" {
		t.Errorf("error = %v, want \"session expired\"", body["error"])
	}
}

func TestRequireSubscriptionBlocksExpiredPlan(t *testing.T) {
	store, _ := newGuardedStore(t)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	token, _ := loginTestUser(t, store, domain.RoleAgencyAdmin, &past)

	app := fiber.New()
	app.Get("/guarded", RequireAgency(store), RequireSubscription(store), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["redirect"] != "/agency/subscription" {
		t.Errorf("redirect = %v, want /agency/subscription", body["redirect"])
	}

	// The session itself is still valid: only the gate answers 403.
	if _, ok := store.ValidAgency(token); !ok {
		t.Error("subscription gate destroyed the session")
	}
}

func TestPublicOnlyRedirectsLiveSession(t *testing.T) {
	store, _ := newGuardedStore(t)
	token, _ := loginTestUser(t, store, domain.RoleAgencyAdmin, nil)

	app := fiber.New()
	app.Post("/login", PublicOnly(store), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Anonymous callers reach the login handler.
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("anonymous status = %d, want 200", resp.StatusCode)
	}

	// Authenticated callers are pointed at their dashboard instead.
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["redirect"] != "/agency/dashboard" {
		t.Errorf("redirect = %v, want /agency/dashboard", body["redirect"])
	}
}

func TestRequireCustomer(t *testing.T) {
	store, _ := newGuardedStore(t)

	customer := domain.Customer{ID: uuid.New(), Email: "jane@example.com", Status: domain.UserStatusActive}
	if _, err := store.LoginCustomer(context.Background(), customer, "ctok-1", time.Hour); err != nil {
		t.Fatalf("LoginCustomer: %v", err)
	}

	app := guardedApp(RequireCustomer(store))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["redirect"] != "/login" {
		t.Errorf("redirect = %v, want /login", body["redirect"])
	}

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer ctok-1")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
