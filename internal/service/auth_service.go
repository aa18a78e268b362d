package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/Anoch123/exodus-instant-booking/internal/repository"
	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/Anoch123/exodus-instant-booking/pkg/hash"
	"github.com/Anoch123/exodus-instant-booking/pkg/jwt"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrEmailTaken         = errors.New("email is already registered")
)

// AuthService owns the login/logout flows for both portals. The session
// store is written only after the full credential check succeeds, so a
// rejected login leaves no partial state behind.
type AuthService struct {
	userRepo     repository.AgencyUserRepository
	customerRepo repository.CustomerRepository
	agencyRepo   repository.AgencyRepository
	tokenService *jwt.TokenService
	sessions     *session.Store
	audit        *AuditService
}

func NewAuthService(
	userRepo repository.AgencyUserRepository,
	customerRepo repository.CustomerRepository,
	agencyRepo repository.AgencyRepository,
	tokenService *jwt.TokenService,
	sessions *session.Store,
	audit *AuditService,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		agencyRepo:   agencyRepo,
		tokenService: tokenService,
		sessions:     sessions,
		audit:        audit,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AgencyLoginResponse struct {
	User    *domain.AgencyUser `json:"user"`
	Agency  *domain.Agency     `json:"agency"`
	Session *domain.TokenPair  `json:"session"`
}

// LoginAgency authenticates a back-office user and records the session.
func (s *AuthService) LoginAgency(ctx context.Context, req LoginRequest, ip, userAgent string) (*AgencyLoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != domain.UserStatusActive {
		return nil, ErrAccountInactive
	}

	valid, err := hash.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	agency, err := s.agencyRepo.GetByID(ctx, user.AgencyID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		log.Printf("[AUTH] Failed to update last_login_at for %s: %v", user.Email, err)
	}

	tokens, err := s.tokenService.GenerateAgencyTokens(user)
	if err != nil {
		return nil, err
	}

	expiresIn := time.Duration(tokens.ExpiresIn) * time.Second
	if _, err := s.sessions.LoginAgency(ctx, *user, tokens.AccessToken, user.Role, *agency, expiresIn); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		AgencyID:     &user.AgencyID,
		AgencyUserID: &user.ID,
		Role:         user.Role,
		Action:       "User Logged In",
		ActionType:   domain.AuditActionLogin,
		TableName:    "agency_users",
		RecordID:     &user.ID,
		IPAddress:    ip,
		UserAgent:    userAgent,
	})

	return &AgencyLoginResponse{User: user, Agency: agency, Session: tokens}, nil
}

// LogoutAgency clears the session for token. Unknown tokens are a no-op.
func (s *AuthService) LogoutAgency(ctx context.Context, token, ip, userAgent string) error {
	sess, ok := s.sessions.ValidAgency(token)

	if err := s.sessions.LogoutAgency(ctx, token); err != nil {
		return err
	}

	if ok {
		s.audit.Record(ctx, AuditEntry{
			AgencyID:     &sess.User.AgencyID,
			AgencyUserID: &sess.User.ID,
			Role:         sess.Role,
			Action:       "User Logged Out",
			ActionType:   domain.AuditActionLogout,
			TableName:    "agency_users",
			RecordID:     &sess.User.ID,
			IPAddress:    ip,
			UserAgent:    userAgent,
		})
	}
	return nil
}

type CustomerSignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

type CustomerLoginResponse struct {
	User    *domain.Customer  `json:"user"`
	Session *domain.TokenPair `json:"session"`
}

// SignUpCustomer registers a portal customer and logs them straight in.
func (s *AuthService) SignUpCustomer(ctx context.Context, req CustomerSignUpRequest) (*CustomerLoginResponse, error) {
	if _, err := s.customerRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &domain.Customer{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Phone != "" {
		customer.Phone = &req.Phone
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return s.startCustomerSession(ctx, customer)
}

// LoginCustomer authenticates a portal customer.
func (s *AuthService) LoginCustomer(ctx context.Context, req LoginRequest) (*CustomerLoginResponse, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if customer.Status != domain.UserStatusActive {
		return nil, ErrAccountInactive
	}

	valid, err := hash.VerifyPassword(req.Password, customer.PasswordHash)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	if err := s.customerRepo.TouchLastLogin(ctx, customer.ID); err != nil {
		log.Printf("[AUTH] Failed to update last_login_at for %s: %v", customer.Email, err)
	}

	return s.startCustomerSession(ctx, customer)
}

// LogoutCustomer clears the customer session for token.
func (s *AuthService) LogoutCustomer(ctx context.Context, token string) error {
	return s.sessions.LogoutCustomer(ctx, token)
}

func (s *AuthService) startCustomerSession(ctx context.Context, customer *domain.Customer) (*CustomerLoginResponse, error) {
	tokens, err := s.tokenService.GenerateCustomerTokens(customer)
	if err != nil {
		return nil, err
	}

	expiresIn := time.Duration(tokens.ExpiresIn) * time.Second
	if _, err := s.sessions.LoginCustomer(ctx, *customer, tokens.AccessToken, expiresIn); err != nil {
		return nil, err
	}

	return &CustomerLoginResponse{User: customer, Session: tokens}, nil
}

// UpdateProfile persists profile edits and refreshes the identity held
// by the session store without touching the session expiry.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, user *domain.AgencyUser) error {
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.sessions.UpdateAgencyUser(ctx, token, *user); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		return err
	}
	return nil
}
