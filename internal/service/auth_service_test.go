package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/Anoch123/exodus-instant-booking/internal/repository/postgres"
	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/Anoch123/exodus-instant-booking/pkg/hash"
	"github.com/Anoch123/exodus-instant-booking/pkg/jwt"
	"github.com/Anoch123/exodus-instant-booking/pkg/kvstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type stubUserRepo struct {
	users map[string]*domain.AgencyUser
}

func (s *stubUserRepo) Create(_ context.Context, u *domain.AgencyUser) error {
	s.users[u.Email] = u
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.AgencyUser, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.AgencyUser, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) Update(_ context.Context, u *domain.AgencyUser) error {
	s.users[u.Email] = u
	return nil
}

func (s *stubUserRepo) TouchLastLogin(context.Context, uuid.UUID) error { return nil }

func (s *stubUserRepo) ListByAgency(context.Context, uuid.UUID, repository.PageRequest) ([]*domain.AgencyUser, int64, error) {
	return nil, 0, nil
}

type stubCustomerRepo struct {
	customers map[string]*domain.Customer
}

func (s *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	s.customers[c.Email] = c
	return nil
}

func (s *stubCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	for _, c := range s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (s *stubCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := s.customers[email]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return c, nil
}

func (s *stubCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	s.customers[c.Email] = c
	return nil
}

func (s *stubCustomerRepo) TouchLastLogin(context.Context, uuid.UUID) error { return nil }

type stubAgencyRepo struct {
	agencies map[uuid.UUID]*domain.Agency
}

func (s *stubAgencyRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Agency, error) {
	a, ok := s.agencies[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return a, nil
}

func (s *stubAgencyRepo) Update(_ context.Context, a *domain.Agency) error {
	s.agencies[a.ID] = a
	return nil
}

func (s *stubAgencyRepo) ListExpiringSubscriptions(context.Context, int) ([]*domain.Agency, error) {
	return nil, nil
}

func testTokenService(t *testing.T) *jwt.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	svc, err := jwt.NewTokenService(privPEM, pubPEM, time.Hour, 7*24*time.Hour, "test")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func testSessionStore(t *testing.T) *session.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := session.NewStore(kvstore.New(client), session.Config{})
	t.Cleanup(store.Close)
	return store
}

func newTestAuthService(t *testing.T) (*AuthService, *stubUserRepo, *stubAgencyRepo, *session.Store) {
	t.Helper()
	users := &stubUserRepo{users: make(map[string]*domain.AgencyUser)}
	customers := &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
	agencies := &stubAgencyRepo{agencies: make(map[uuid.UUID]*domain.Agency)}
	sessions := testSessionStore(t)
	audit := NewAuditService(&stubAuditRepo{})

	svc := NewAuthService(users, customers, agencies, testTokenService(t), sessions, audit)
	return svc, users, agencies, sessions
}

func seedAgencyUser(t *testing.T, users *stubUserRepo, agencies *stubAgencyRepo, password string) *domain.AgencyUser {
	t.Helper()
	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	agency := &domain.Agency{
		ID:     uuid.New(),
		Name:   "Exodus Travels",
		Email:  "owner@exodustravels.com",
		Status: domain.AgencyStatusActive,
	}
	agencies.agencies[agency.ID] = agency

	user := &domain.AgencyUser{
		ID:           uuid.New(),
		AgencyID:     agency.ID,
		Email:        "admin@exodustravels.com",
		PasswordHash: passwordHash,
		Role:         domain.RoleAgencyAdmin,
		Status:       domain.UserStatusActive,
	}
	users.users[user.Email] = user
	return user
}

func TestLoginAgencySuccessRegistersSession(t *testing.T) {
	svc, users, agencies, sessions := newTestAuthService(t)
	user := seedAgencyUser(t, users, agencies, "hunter2hunter2")

	resp, err := svc.LoginAgency(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "hunter2hunter2",
	}, "203.0.113.9", "go-test")
	if err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}
	if resp.Session.AccessToken == "" {
		t.Fatal("no access token issued")
	}

	sess, ok := sessions.ValidAgency(resp.Session.AccessToken)
	if !ok {
		t.Fatal("login did not register a session")
	}
	if sess.User.ID != user.ID || sess.Role != domain.RoleAgencyAdmin {
		t.Errorf("session identity mismatch: %s / %s", sess.User.ID, sess.Role)
	}
}

func TestLoginAgencyWrongPassword(t *testing.T) {
	svc, users, agencies, sessions := newTestAuthService(t)
	user := seedAgencyUser(t, users, agencies, "hunter2hunter2")

	_, err := svc.LoginAgency(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if sessions.ActiveSessions() != 0 {
		t.Error("failed login left a session behind")
	}
}

func TestLoginAgencyUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.LoginAgency(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "irrelevant123",
	}, "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginAgencyInactiveAccount(t *testing.T) {
	svc, users, agencies, _ := newTestAuthService(t)
	user := seedAgencyUser(t, users, agencies, "hunter2hunter2")
	user.Status = domain.UserStatusInactive

	_, err := svc.LoginAgency(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "hunter2hunter2",
	}, "", "")
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("err = %v, want ErrAccountInactive", err)
	}
}

func TestLogoutAgencyClearsSession(t *testing.T) {
	svc, users, agencies, sessions := newTestAuthService(t)
	user := seedAgencyUser(t, users, agencies, "hunter2hunter2")

	resp, err := svc.LoginAgency(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "hunter2hunter2",
	}, "", "")
	if err != nil {
		t.Fatalf("LoginAgency: %v", err)
	}

	token := resp.Session.AccessToken
	if err := svc.LogoutAgency(context.Background(), token, "", ""); err != nil {
		t.Fatalf("LogoutAgency: %v", err)
	}
	if _, ok := sessions.ValidAgency(token); ok {
		t.Error("session survived logout")
	}

	// Logging out again is a no-op, not an error.
	if err := svc.LogoutAgency(context.Background(), token, "", ""); err != nil {
		t.Errorf("second logout: %v", err)
	}
}

func TestSignUpCustomerDuplicateEmail(t *testing.T) {
	svc, _, _, sessions := newTestAuthService(t)

	req := CustomerSignUpRequest{
		Email:     "jane@example.com",
		Password:  "secret-password",
		FirstName: "Jane",
		LastName:  "Doe",
	}
	if _, err := svc.SignUpCustomer(context.Background(), req); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if sessions.ActiveSessions() != 1 {
		t.Error("signup did not start a session")
	}

	if _, err := svc.SignUpCustomer(context.Background(), req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate signup err = %v, want ErrEmailTaken", err)
	}
}

func TestSignUpThenLoginCustomer(t *testing.T) {
	svc, _, _, sessions := newTestAuthService(t)

	if _, err := svc.SignUpCustomer(context.Background(), CustomerSignUpRequest{
		Email:     "jane@example.com",
		Password:  "secret-password",
		FirstName: "Jane",
		LastName:  "Doe",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	resp, err := svc.LoginCustomer(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("LoginCustomer: %v", err)
	}
	if _, ok := sessions.ValidCustomer(resp.Session.AccessToken); !ok {
		t.Error("customer login did not register a session")
	}
}
