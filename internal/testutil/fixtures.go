package testutil

import (
	"fmt"
	"sync/atomic"

	"venue-console/internal/domain"
)

// Counter for generating unique IDs
var idCounter atomic.Int64

// nextID generates a unique ID for test fixtures
func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, idCounter.Add(1))
}

// ProfileOptions allows customizing profile fixture creation
type ProfileOptions struct {
	ID       int64
	Username string
	Email    string
	IsAdmin  bool
}

// NewTestProfile creates a test user profile with sensible defaults
// Pass options to override specific fields
func NewTestProfile(opts ...func(*ProfileOptions)) *domain.UserProfile {
	o := &ProfileOptions{
		ID:       idCounter.Add(1),
		Username: fmt.Sprintf("testuser%d", idCounter.Load()),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.Email == "" {
		o.Email = o.Username + "@example.com"
	}

	return &domain.UserProfile{
		ID:       o.ID,
		Username: o.Username,
		Email:    o.Email,
		IsAdmin:  o.IsAdmin,
	}
}

// WithProfileID sets the profile ID
func WithProfileID(id int64) func(*ProfileOptions) {
	return func(o *ProfileOptions) {
		o.ID = id
	}
}

// WithUsername sets the username
func WithUsername(username string) func(*ProfileOptions) {
	return func(o *ProfileOptions) {
		o.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) func(*ProfileOptions) {
	return func(o *ProfileOptions) {
		o.Email = email
	}
}

// WithAdmin marks the profile as an administrator
func WithAdmin() func(*ProfileOptions) {
	return func(o *ProfileOptions) {
		o.IsAdmin = true
	}
}

// OrderOptions allows customizing order fixture creation
type OrderOptions struct {
	ID        string
	FullName  string
	Date      string
	StartTime string
	EndTime   string
	OrderType string
	IsActive  bool
}

// NewTestOrder creates a test booking with sensible defaults
func NewTestOrder(opts ...func(*OrderOptions)) domain.Order {
	o := &OrderOptions{
		ID:        nextID("order"),
		FullName:  fmt.Sprintf("Guest %d", idCounter.Load()),
		Date:      "2026-09-15",
		StartTime: "19:00",
		EndTime:   "23:30",
		OrderType: "wedding",
		IsActive:  true,
	}

	for _, opt := range opts {
		opt(o)
	}

	return domain.Order{
		ID:          o.ID,
		FullName:    o.FullName,
		Phone:       "050-1234567",
		Price:       150,
		MinGuests:   80,
		MaxGuests:   120,
		Date:        o.Date,
		StartTime:   o.StartTime,
		EndTime:     o.EndTime,
		OrderAmount: 18000,
		PaidAmount:  5000,
		OrderType:   o.OrderType,
		IsActive:    o.IsActive,
	}
}

// WithOrderID sets the order ID
func WithOrderID(id string) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.ID = id
	}
}

// WithOrderDate sets the booking date
func WithOrderDate(date string) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.Date = date
	}
}

// WithOrderSlot sets the booking time window
func WithOrderSlot(start, end string) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.StartTime = start
		o.EndTime = end
	}
}

// WithOrderType sets the event type
func WithOrderType(orderType string) func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.OrderType = orderType
	}
}

// WithInactive marks the booking as deactivated
func WithInactive() func(*OrderOptions) {
	return func(o *OrderOptions) {
		o.IsActive = false
	}
}

// NewTestCategory creates a test category
func NewTestCategory(name string) domain.Category {
	return domain.Category{
		ID:        nextID("cat"),
		Name:      name,
		IsActive:  true,
		CreatedBy: "admin",
	}
}

// NewTestSubCategory creates a test sub-category under the given parent
func NewTestSubCategory(name string, parent domain.Category) domain.SubCategory {
	return domain.SubCategory{
		ID:                 nextID("sub"),
		Name:               name,
		ParentCategoryID:   parent.ID,
		ParentCategoryName: parent.Name,
		IsActive:           true,
		CreatedBy:          "admin",
	}
}

// NewTestOrders creates multiple bookings on consecutive dates
func NewTestOrders(count int) []domain.Order {
	orders := make([]domain.Order, count)
	for i := 0; i < count; i++ {
		orders[i] = NewTestOrder(
			WithOrderDate(fmt.Sprintf("2026-09-%02d", i+1)),
		)
	}
	return orders
}

// ResetIDCounter resets the ID counter (useful for deterministic tests)
func ResetIDCounter() {
	idCounter.Store(0)
}
