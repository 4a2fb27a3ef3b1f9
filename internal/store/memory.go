package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medidex/internal/models"
)

// MemoryStore is an in-memory implementation of all three stores. It backs
// the service and handler tests and keeps the same id scheme as Mongo.
type MemoryStore struct {
	mu        sync.RWMutex
	orders    map[string]models.Order
	staff     map[string]models.StaffAccount
	medicines map[string]models.Medicine
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:    make(map[string]models.Order),
		staff:     make(map[string]models.StaffAccount),
		medicines: make(map[string]models.Medicine),
	}
}

var (
	_ OrderStore    = (*MemoryStore)(nil)
	_ StaffStore    = (*memoryStaff)(nil)
	_ MedicineStore = (*memoryMedicines)(nil)
)

// OrderStore

func (m *MemoryStore) Insert(ctx context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = primitive.NewObjectID()
	m.orders[o.ID.Hex()] = *o
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) Update(ctx context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID.Hex()]; !ok {
		return ErrNotFound
	}
	m.orders[o.ID.Hex()] = *o
	return nil
}

// StaffStore. Method names collide with OrderStore, so staff methods carry
// their own names via an adapter.

type memoryStaff struct{ store *MemoryStore }

// Staff returns the StaffStore view of the memory store.
func (m *MemoryStore) Staff() StaffStore { return &memoryStaff{store: m} }

func (s *memoryStaff) Insert(ctx context.Context, a *models.StaffAccount) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a.ID = primitive.NewObjectID()
	s.store.staff[a.ID.Hex()] = *a
	return nil
}

func (s *memoryStaff) Get(ctx context.Context, id string) (*models.StaffAccount, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	a, ok := s.store.staff[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (s *memoryStaff) GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, a := range s.store.staff {
		if a.Email == email {
			cp := a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStaff) List(ctx context.Context) ([]models.StaffAccount, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	out := make([]models.StaffAccount, 0, len(s.store.staff))
	for _, a := range s.store.staff {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryStaff) Update(ctx context.Context, a *models.StaffAccount) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.staff[a.ID.Hex()]; !ok {
		return ErrNotFound
	}
	s.store.staff[a.ID.Hex()] = *a
	return nil
}

func (s *memoryStaff) Count(ctx context.Context) (int64, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return int64(len(s.store.staff)), nil
}

// MedicineStore view.

type memoryMedicines struct{ store *MemoryStore }

// Medicines returns the MedicineStore view of the memory store.
func (m *MemoryStore) Medicines() MedicineStore { return &memoryMedicines{store: m} }

func (s *memoryMedicines) Insert(ctx context.Context, med *models.Medicine) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	med.ID = primitive.NewObjectID()
	s.store.medicines[med.ID.Hex()] = *med
	return nil
}

func (s *memoryMedicines) Get(ctx context.Context, id string) (*models.Medicine, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	med, ok := s.store.medicines[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := med
	return &cp, nil
}

func (s *memoryMedicines) List(ctx context.Context) ([]models.Medicine, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	out := make([]models.Medicine, 0, len(s.store.medicines))
	for _, med := range s.store.medicines {
		out = append(out, med)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *memoryMedicines) Update(ctx context.Context, med *models.Medicine) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.medicines[med.ID.Hex()]; !ok {
		return ErrNotFound
	}
	s.store.medicines[med.ID.Hex()] = *med
	return nil
}

func (s *memoryMedicines) Delete(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.medicines[id]; !ok {
		return ErrNotFound
	}
	delete(s.store.medicines, id)
	return nil
}
