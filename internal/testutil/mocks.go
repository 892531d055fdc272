// Package testutil provides shared test utilities, mocks, and fixtures
// for testing the venue console.
package testutil

import (
	"context"
	"errors"
	"sync"

	"venue-console/internal/domain"
)

// Common test errors
var (
	ErrMockNotImplemented = errors.New("mock function not implemented")
	ErrMockNotFound       = errors.New("mock: not found")
)

// MockOrderStore implements the booking store contract for testing
type MockOrderStore struct {
	mu sync.RWMutex

	// Function overrides - set these to customize behavior
	AddFunc        func(ctx context.Context, order *domain.Order) error
	UpdateFunc     func(ctx context.Context, order domain.Order) error
	DeactivateFunc func(ctx context.Context, id string) error
	AllFunc        func(ctx context.Context) ([]domain.Order, error)
	SearchFunc     func(ctx context.Context, startDate, endDate string) ([]domain.Order, error)

	// In-memory storage for simple tests
	Orders map[string]domain.Order

	// Call counters
	AddCalls    int
	UpdateCalls int
}

// NewMockOrderStore creates a new MockOrderStore with initialized maps
func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		Orders: make(map[string]domain.Order),
	}
}

func (m *MockOrderStore) Add(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	m.AddCalls++
	m.mu.Unlock()

	if m.AddFunc != nil {
		return m.AddFunc(ctx, order)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == "" {
		order.ID = nextID("order")
	}
	order.IsActive = true
	m.Orders[order.ID] = *order
	return nil
}

func (m *MockOrderStore) Update(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()

	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, order)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	m.Orders[order.ID] = order
	return nil
}

func (m *MockOrderStore) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.Orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.IsActive = false
	m.Orders[id] = order
	return nil
}

func (m *MockOrderStore) All(ctx context.Context) ([]domain.Order, error) {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]domain.Order, 0, len(m.Orders))
	for _, o := range m.Orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *MockOrderStore) Search(ctx context.Context, startDate, endDate string) ([]domain.Order, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, startDate, endDate)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]domain.Order, 0)
	for _, o := range m.Orders {
		if o.Date >= startDate && o.Date <= endDate {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// MockSessionValidator implements the session validation contract for testing
type MockSessionValidator struct {
	ValidateFunc func(ctx context.Context, token string) (*domain.UserProfile, error)

	// Sessions maps tokens to profiles for simple tests
	Sessions map[string]*domain.UserProfile
}

// NewMockSessionValidator creates a new MockSessionValidator with initialized maps
func NewMockSessionValidator() *MockSessionValidator {
	return &MockSessionValidator{
		Sessions: make(map[string]*domain.UserProfile),
	}
}

func (m *MockSessionValidator) ValidateSession(ctx context.Context, token string) (*domain.UserProfile, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	profile, ok := m.Sessions[token]
	if !ok {
		return nil, ErrMockNotFound
	}
	return profile, nil
}
