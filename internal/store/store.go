package store

import (
	"context"
	"errors"

	"medidex/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// OrderStore owns order persistence. List returns orders
// most-recent-first by createdAt.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
}

// StaffStore owns staff account persistence. Emails are stored lowercase.
type StaffStore interface {
	Insert(ctx context.Context, a *models.StaffAccount) error
	Get(ctx context.Context, id string) (*models.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error)
	List(ctx context.Context) ([]models.StaffAccount, error)
	Update(ctx context.Context, a *models.StaffAccount) error
	Count(ctx context.Context) (int64, error)
}

// MedicineStore owns catalog persistence.
type MedicineStore interface {
	Insert(ctx context.Context, m *models.Medicine) error
	Get(ctx context.Context, id string) (*models.Medicine, error)
	List(ctx context.Context) ([]models.Medicine, error)
	Update(ctx context.Context, m *models.Medicine) error
	Delete(ctx context.Context, id string) error
}
