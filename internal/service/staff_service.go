package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"medidex/internal/auth"
	"medidex/internal/models"
	"medidex/internal/store"
)

// OwnerEmail is the canonical account behind owner-key logins.
const OwnerEmail = "owner@medidex.local"

// StaffService owns credential verification and staff account management.
type StaffService struct {
	staff     store.StaffStore
	ownerKey  string
	jwtSecret string
	tokenTTL  time.Duration
}

func NewStaffService(staff store.StaffStore, ownerKey, jwtSecret string, tokenTTL time.Duration) *StaffService {
	return &StaffService{
		staff:     staff,
		ownerKey:  ownerKey,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// EnsureDefaultAdmin seeds the canonical owner account when the staff
// collection is empty, so a fresh deployment can always be administered.
func (s *StaffService) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.staff.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = s.ownerAccount(ctx)
	return err
}

// OwnerLogin exchanges the shared owner key for a bearer token bound to the
// canonical ADMIN account, lazily creating it.
func (s *StaffService) OwnerLogin(ctx context.Context, key string) (string, *models.StaffAccount, error) {
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.ownerKey)) != 1 {
		return "", nil, authErr("invalid access key")
	}

	acct, err := s.ownerAccount(ctx)
	if err != nil {
		return "", nil, err
	}

	token, err := auth.IssueToken(acct, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

// Login verifies a staff email/password pair. Unknown, inactive and
// wrong-password accounts all fail the same way.
func (s *StaffService) Login(ctx context.Context, email, password string) (string, *models.StaffAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return "", nil, invalidf("email and password are required")
	}

	acct, err := s.staff.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, authErr("invalid credentials")
	}
	if err != nil {
		return "", nil, err
	}

	if !acct.IsActive {
		return "", nil, authErr("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", nil, authErr("invalid credentials")
	}

	token, err := auth.IssueToken(acct, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

// Verify resolves token claims back to a live account. Tokens for
// deactivated or deleted accounts are rejected.
func (s *StaffService) Verify(ctx context.Context, claims *auth.Claims) (*models.StaffAccount, error) {
	acct, err := s.staff.Get(ctx, claims.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, authErr("unknown account")
	}
	if err != nil {
		return nil, err
	}
	if !acct.IsActive {
		return nil, ErrAccountInactive
	}
	return acct, nil
}

// List returns all staff accounts, newest first.
func (s *StaffService) List(ctx context.Context) ([]models.StaffAccount, error) {
	return s.staff.List(ctx)
}

// CreateStaffInput is the admin-facing account creation payload.
type CreateStaffInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Create adds a staff account. Emails are unique case-insensitively.
func (s *StaffService) Create(ctx context.Context, input CreateStaffInput) (*models.StaffAccount, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	password := strings.TrimSpace(input.Password)

	if email == "" || name == "" || password == "" {
		return nil, invalidf("email, name and password are required")
	}
	if !models.ValidRole(input.Role) {
		return nil, invalidf("invalid role: %s", input.Role)
	}

	if _, err := s.staff.GetByEmail(ctx, email); err == nil {
		return nil, invalidf("email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	acct := models.StaffAccount{
		Email:        email,
		Name:         name,
		Role:         input.Role,
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.staff.Insert(ctx, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// UpdateStaffInput carries partial account edits.
type UpdateStaffInput struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// Update edits name, role or password of an existing account.
func (s *StaffService) Update(ctx context.Context, id string, input UpdateStaffInput) (*models.StaffAccount, error) {
	acct, err := s.staff.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalidf("name must not be empty")
		}
		acct.Name = name
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, invalidf("invalid role: %s", *input.Role)
		}
		acct.Role = *input.Role
	}
	if input.Password != nil {
		password := strings.TrimSpace(*input.Password)
		if password == "" {
			return nil, invalidf("password must not be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		acct.PasswordHash = string(hash)
	}

	acct.UpdatedAt = time.Now()
	if err := s.staff.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// ToggleActive flips the active flag. Deactivation is the only removal
// path; records are never deleted.
func (s *StaffService) ToggleActive(ctx context.Context, id string) (*models.StaffAccount, error) {
	acct, err := s.staff.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	acct.IsActive = !acct.IsActive
	acct.UpdatedAt = time.Now()
	if err := s.staff.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (s *StaffService) ownerAccount(ctx context.Context) (*models.StaffAccount, error) {
	acct, err := s.staff.GetByEmail(ctx, OwnerEmail)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	owner := models.StaffAccount{
		Email:     OwnerEmail,
		Name:      "Owner",
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.staff.Insert(ctx, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}
