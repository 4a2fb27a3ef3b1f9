package auth

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medidex/internal/models"
)

func testAccount() *models.StaffAccount {
	return &models.StaffAccount{
		ID:    primitive.NewObjectID(),
		Email: "sara@medidex.pk",
		Role:  models.RoleManager,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	acct := testAccount()

	token, err := IssueToken(acct, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if claims.ID != acct.ID.Hex() || claims.Email != acct.Email || claims.Role != acct.Role {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := IssueToken(testAccount(), "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := IssueToken(testAccount(), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	if _, err := ParseToken(token, "other-secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := ParseToken("not-a-token", "test-secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestUnknownRoleRejected(t *testing.T) {
	acct := testAccount()
	acct.Role = "SUPERUSER"

	token, err := IssueToken(acct, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
