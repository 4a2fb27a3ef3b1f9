package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"medidex/internal/models"
)

// Claims is the decoded identity embedded in a bearer token.
type Claims struct {
	ID    string
	Email string
	Role  string
}

var ErrInvalidToken = errors.New("invalid token")

// IssueToken signs an HS256 token for the account, valid for ttl.
func IssueToken(acct *models.StaffAccount, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   acct.ID.Hex(),
		"email": acct.Email,
		"role":  acct.Role,
		"exp":   time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the embedded claims.
func ParseToken(raw, secret string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if strings.TrimSpace(sub) == "" || !models.ValidRole(role) {
		return nil, ErrInvalidToken
	}

	return &Claims{ID: sub, Email: email, Role: role}, nil
}
