package domain

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateBooking = errors.New("slot already booked")
)

// Order is a venue booking. Dates and times travel as strings on the wire
// ("2006-01-02" and "15:04") exactly as the backend stores them.
type Order struct {
	ID           string  `json:"id,omitempty"`
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone"`
	AnotherPhone string  `json:"another_phone,omitempty"`
	Price        float64 `json:"price"`
	MinGuests    int     `json:"min_guests"`
	MaxGuests    int     `json:"max_guests"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	OrderAmount  float64 `json:"order_amount"`
	PaidAmount   float64 `json:"paid_amount"`
	OrderType    string  `json:"order_type"`
	Comments     string  `json:"comments,omitempty"`
	IsActive     bool    `json:"is_active,omitempty"`
}

// OrderSearch bounds a date-range order query (inclusive on both ends).
type OrderSearch struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
