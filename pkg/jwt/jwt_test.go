package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/domain"
	"github.com/google/uuid"
)

func testKeyPair(t *testing.T) ([]byte, []byte) {
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
	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})
	return privPEM, pubPEM
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	priv, pub := testKeyPair(t)
	svc, err := NewTokenService(priv, pub, time.Hour, 7*24*time.Hour, "test-issuer")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestGenerateAndValidateAgencyTokens(t *testing.T) {
	svc := newTestTokenService(t)

	user := &domain.AgencyUser{
		ID:       uuid.New(),
		AgencyID: uuid.New(),
		Email:    "admin@exodustravels.com",
		Role:     domain.RoleAgencyAdmin,
	}

	pair, err := svc.GenerateAgencyTokens(user)
	if err != nil {
		t.Fatalf("GenerateAgencyTokens: %v", err)
	}
	if pair.ExpiresIn <= 0 || pair.ExpiresIn > 3600 {
		t.Errorf("ExpiresIn = %d, want (0, 3600]", pair.ExpiresIn)
	}

	claims, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", claims.UserID, user.ID)
	}
	if claims.Role != domain.RoleAgencyAdmin {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.AgencyID == nil || *claims.AgencyID != user.AgencyID {
		t.Error("AgencyID not carried in claims")
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q", claims.TokenType)
	}

	refresh, err := svc.ValidateToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateToken(refresh): %v", err)
	}
	if refresh.TokenType != "refresh" {
		t.Errorf("refresh TokenType = %q", refresh.TokenType)
	}
}

func TestGenerateCustomerTokens(t *testing.T) {
	svc := newTestTokenService(t)

	customer := &domain.Customer{ID: uuid.New(), Email: "jane@example.com"}
	pair, err := svc.GenerateCustomerTokens(customer)
	if err != nil {
		t.Fatalf("GenerateCustomerTokens: %v", err)
	}

	claims, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Role != domain.RoleCustomer {
		t.Errorf("Role = %q, want customer", claims.Role)
	}
	if claims.AgencyID != nil {
		t.Error("customer token carries an agency id")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}

	// A token signed by a different key must not validate.
	other := newTestTokenService(t)
	pair, err := other.GenerateCustomerTokens(&domain.Customer{ID: uuid.New(), Email: "x@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(pair.AccessToken); err == nil {
		t.Error("token from a foreign key validated")
	}
}
