package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"medidex/internal/models"
	"medidex/internal/store"
)

// Dispatcher receives persisted orders for best-effort notification.
// Dispatch must return immediately and never report failure to the caller.
type Dispatcher interface {
	Dispatch(order models.Order)
}

// OrderService owns the order lifecycle: creation with server-side total
// computation and staff-driven status transitions.
type OrderService struct {
	orders   store.OrderStore
	notifier Dispatcher
}

func NewOrderService(orders store.OrderStore, notifier Dispatcher) *OrderService {
	return &OrderService{orders: orders, notifier: notifier}
}

// CreateOrderItem is one incoming order line, keyed by catalog id with the
// client's price snapshot.
type CreateOrderItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// CreateOrderCustomer carries the checkout contact fields.
// DoctorRecommended is loosely typed upstream: boolean true or the string
// "yes" count as recommended.
type CreateOrderCustomer struct {
	Name                 string              `json:"name"`
	Phone                string              `json:"phone"`
	Location             string              `json:"location"`
	CNIC                 string              `json:"cnic"`
	DoctorRecommended    interface{}         `json:"doctorRecommended"`
	PrescriptionFile     string              `json:"prescriptionFile"`
	PrescriptionFileName string              `json:"prescriptionFileName"`
	MapLocation          *models.MapLocation `json:"mapLocation"`
}

// CreateOrderInput is the full create payload. Any client-sent total is not
// part of the contract and never reaches the stored order.
type CreateOrderInput struct {
	Customer CreateOrderCustomer `json:"customer"`
	Items    []CreateOrderItem   `json:"items"`
}

// Create validates the payload, recomputes the total and persists the order
// with status RECEIVED, then hands it to the notifier without waiting.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	name := strings.TrimSpace(input.Customer.Name)
	phone := strings.TrimSpace(input.Customer.Phone)
	location := strings.TrimSpace(input.Customer.Location)
	if name == "" || phone == "" || location == "" {
		return nil, invalidf("missing name/phone/location")
	}

	if len(input.Items) == 0 {
		return nil, invalidf("at least one item is required")
	}

	cnic, err := normalizeCNIC(input.Customer.CNIC)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	total := 0.0
	for i, it := range input.Items {
		if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.Name) == "" {
			return nil, invalidf("item %d must include id, name, price and qty", i+1)
		}
		if it.Qty < 1 {
			return nil, invalidf("item %d quantity must be at least 1", i+1)
		}
		if it.Price < 0 {
			return nil, invalidf("item %d price must not be negative", i+1)
		}
		items = append(items, models.OrderItem{
			ProductID: strings.TrimSpace(it.ID),
			Name:      strings.TrimSpace(it.Name),
			Price:     it.Price,
			Quantity:  it.Qty,
		})
		total += it.Price * float64(it.Qty)
	}

	now := time.Now()
	order := models.Order{
		Name:                 name,
		Phone:                phone,
		Location:             location,
		CNIC:                 cnic,
		DoctorRecommended:    doctorRecommended(input.Customer.DoctorRecommended),
		PrescriptionFile:     strings.TrimSpace(input.Customer.PrescriptionFile),
		PrescriptionFileName: strings.TrimSpace(input.Customer.PrescriptionFileName),
		MapLocation:          input.Customer.MapLocation,
		Items:                items,
		Total:                roundMoney(total),
		Status:               models.StatusReceived,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.orders.Insert(ctx, &order); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Dispatch(order)
	}

	return &order, nil
}

// Get returns a single order or ErrNotFound.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return order, err
}

// List returns all orders, most-recent-first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// SetStatus applies a status transition. Transitions are unordered within
// the enum; racing updates are last-write-wins.
func (s *OrderService) SetStatus(ctx context.Context, id, status, actor string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, invalidf("invalid status: %s", status)
	}

	order, err := s.orders.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	order.Status = status
	order.AssignedTo = actor
	order.UpdatedAt = time.Now()

	if err := s.orders.Update(ctx, order); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// normalizeCNIC strips non-digit characters. A supplied CNIC must come out
// to exactly 13 digits; empty input is fine.
func normalizeCNIC(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 13 {
		return "", invalidf("cnic must contain exactly 13 digits")
	}
	return digits.String(), nil
}

func doctorRecommended(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "yes")
	}
	return false
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
