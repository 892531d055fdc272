package stubserver

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"venue-console/internal/domain"
)

// OrderStore is the booking persistence contract. The stub backend ships an
// in-memory implementation; internal/repository/postgres provides a
// database-backed one.
type OrderStore interface {
	Add(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order domain.Order) error
	Deactivate(ctx context.Context, id string) error
	All(ctx context.Context) ([]domain.Order, error)
	Search(ctx context.Context, startDate, endDate string) ([]domain.Order, error)
}

// MemoryOrderStore keeps bookings in a mutex-guarded map.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]domain.Order)}
}

func (s *MemoryOrderStore) Add(_ context.Context, order *domain.Order) error {
	if order.FullName == "" || order.Date == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.IsActive && existing.Date == order.Date && existing.StartTime == order.StartTime {
			return domain.ErrDuplicateBooking
		}
	}
	order.ID = uuid.NewString()
	order.IsActive = true
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryOrderStore) Update(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.orders[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.IsActive = existing.IsActive
	s.orders[order.ID] = order
	return nil
}

func (s *MemoryOrderStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.IsActive = false
	s.orders[id] = order
	return nil
}

func (s *MemoryOrderStore) All(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(domain.Order) bool { return true }), nil
}

// Search matches bookings whose date falls in [startDate, endDate]. Dates
// are "2006-01-02" strings, so lexical comparison is chronological.
func (s *MemoryOrderStore) Search(_ context.Context, startDate, endDate string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(o domain.Order) bool {
		return o.Date >= startDate && o.Date <= endDate
	}), nil
}

func (s *MemoryOrderStore) sortedLocked(match func(domain.Order) bool) []domain.Order {
	result := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if match(o) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result
}
