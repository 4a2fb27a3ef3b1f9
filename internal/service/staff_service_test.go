package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"medidex/internal/auth"
	"medidex/internal/models"
	"medidex/internal/store"
)

func newStaffService(t *testing.T) (*StaffService, store.StaffStore) {
	t.Helper()
	staff := store.NewMemoryStore().Staff()
	return NewStaffService(staff, "owner-key", "test-secret", time.Hour), staff
}

func TestOwnerLoginWrongKey(t *testing.T) {
	svc, staff := newStaffService(t)

	if _, _, err := svc.OwnerLogin(context.Background(), "wrong"); !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}

	count, _ := staff.Count(context.Background())
	if count != 0 {
		t.Fatalf("failed login must not create accounts, got %d", count)
	}
}

func TestOwnerLoginCreatesCanonicalAdmin(t *testing.T) {
	svc, _ := newStaffService(t)

	token, acct, err := svc.OwnerLogin(context.Background(), "owner-key")
	if err != nil {
		t.Fatalf("owner login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if acct.Email != OwnerEmail || acct.Role != models.RoleAdmin || !acct.IsActive {
		t.Fatalf("unexpected owner account: %+v", acct)
	}

	_, again, err := svc.OwnerLogin(context.Background(), "owner-key")
	if err != nil {
		t.Fatalf("second owner login returned error: %v", err)
	}
	if again.ID != acct.ID {
		t.Fatal("owner account must be reused, not recreated")
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc, staff := newStaffService(t)

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap returned error: %v", err)
	}
	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("second bootstrap returned error: %v", err)
	}

	count, _ := staff.Count(context.Background())
	if count != 1 {
		t.Fatalf("expected exactly one seeded account, got %d", count)
	}

	acct, err := staff.GetByEmail(context.Background(), OwnerEmail)
	if err != nil {
		t.Fatalf("seeded owner missing: %v", err)
	}
	if acct.Role != models.RoleAdmin {
		t.Fatalf("expected ADMIN owner, got %s", acct.Role)
	}
}

func TestStaffLoginFlow(t *testing.T) {
	svc, _ := newStaffService(t)

	acct, err := svc.Create(context.Background(), CreateStaffInput{
		Email:    "Sara@Medidex.PK",
		Name:     "Sara",
		Role:     models.RoleStaff,
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if acct.Email != "sara@medidex.pk" {
		t.Fatalf("email must be lowercased, got %q", acct.Email)
	}

	token, logged, err := svc.Login(context.Background(), "SARA@medidex.pk", "s3cret-pass")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if token == "" || logged.ID != acct.ID {
		t.Fatal("login must return a token for the created account")
	}

	if _, _, err := svc.Login(context.Background(), "sara@medidex.pk", "wrong"); !IsAuth(err) {
		t.Fatalf("expected auth error for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@medidex.pk", "s3cret-pass"); !IsAuth(err) {
		t.Fatalf("expected auth error for unknown email, got %v", err)
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, _ := newStaffService(t)

	acct, err := svc.Create(context.Background(), CreateStaffInput{
		Email:    "sara@medidex.pk",
		Name:     "Sara",
		Role:     models.RoleStaff,
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	toggled, err := svc.ToggleActive(context.Background(), acct.ID.Hex())
	if err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected account to be deactivated")
	}

	if _, _, err := svc.Login(context.Background(), "sara@medidex.pk", "s3cret-pass"); !IsAuth(err) {
		t.Fatalf("inactive login must fail like bad credentials, got %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newStaffService(t)

	input := CreateStaffInput{
		Email:    "sara@medidex.pk",
		Name:     "Sara",
		Role:     models.RoleManager,
		Password: "s3cret-pass",
	}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create returned error: %v", err)
	}

	input.Email = "SARA@medidex.pk"
	if _, err := svc.Create(context.Background(), input); !IsValidation(err) {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc, _ := newStaffService(t)

	_, err := svc.Create(context.Background(), CreateStaffInput{
		Email:    "sara@medidex.pk",
		Name:     "Sara",
		Role:     "SUPERUSER",
		Password: "s3cret-pass",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVerifyRejectsDeactivatedToken(t *testing.T) {
	svc, _ := newStaffService(t)

	acct, err := svc.Create(context.Background(), CreateStaffInput{
		Email:    "sara@medidex.pk",
		Name:     "Sara",
		Role:     models.RoleStaff,
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	claims := &auth.Claims{ID: acct.ID.Hex(), Email: acct.Email, Role: acct.Role}
	if _, err := svc.Verify(context.Background(), claims); err != nil {
		t.Fatalf("verify of active account returned error: %v", err)
	}

	if _, err := svc.ToggleActive(context.Background(), acct.ID.Hex()); err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}

	if _, err := svc.Verify(context.Background(), claims); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestUpdateStaffPartialEdit(t *testing.T) {
	svc, _ := newStaffService(t)

	acct, err := svc.Create(context.Background(), CreateStaffInput{
		Email:    "sara@medidex.pk",
		Name:     "Sara",
		Role:     models.RoleStaff,
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	role := models.RoleManager
	updated, err := svc.Update(context.Background(), acct.ID.Hex(), UpdateStaffInput{Role: &role})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Role != models.RoleManager || updated.Name != "Sara" {
		t.Fatalf("unexpected account after partial update: %+v", updated)
	}

	if _, _, err := svc.Login(context.Background(), "sara@medidex.pk", "s3cret-pass"); err != nil {
		t.Fatalf("password must survive a role-only update: %v", err)
	}
}
