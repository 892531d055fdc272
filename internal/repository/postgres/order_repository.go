package postgres

import (
	"context"
	"database/sql"

	"venue-console/internal/domain"
)

// OrderRepository is the database-backed booking store. It satisfies the
// same contract as the stub backend's in-memory store.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Add inserts a new booking. The slot (date, start_time) carries a unique
// constraint so the venue cannot be double-booked.
func (r *OrderRepository) Add(ctx context.Context, order *domain.Order) error {
	if order.FullName == "" || order.Date == "" {
		return domain.ErrInvalidInput
	}

	query := `
		INSERT INTO orders (
			full_name, phone, another_phone, price, min_guests, max_guests,
			date, start_time, end_time, order_amount, paid_amount,
			order_type, comments, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		order.FullName,
		order.Phone,
		order.AnotherPhone,
		order.Price,
		order.MinGuests,
		order.MaxGuests,
		order.Date,
		order.StartTime,
		order.EndTime,
		order.OrderAmount,
		order.PaidAmount,
		order.OrderType,
		order.Comments,
	).Scan(&order.ID)

	if IsUniqueViolation(err, ConstraintOrderSlot) {
		return domain.ErrDuplicateBooking
	}
	if err != nil {
		return err
	}

	order.IsActive = true
	return nil
}

// Update rewrites a booking in place. IsActive is not touched here; use
// Deactivate for that.
func (r *OrderRepository) Update(ctx context.Context, order domain.Order) error {
	query := `
		UPDATE orders
		SET full_name = $2, phone = $3, another_phone = $4, price = $5,
			min_guests = $6, max_guests = $7, date = $8, start_time = $9,
			end_time = $10, order_amount = $11, paid_amount = $12,
			order_type = $13, comments = $14
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.FullName,
		order.Phone,
		order.AnotherPhone,
		order.Price,
		order.MinGuests,
		order.MaxGuests,
		order.Date,
		order.StartTime,
		order.EndTime,
		order.OrderAmount,
		order.PaidAmount,
		order.OrderType,
		order.Comments,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// Deactivate soft-deletes a booking.
func (r *OrderRepository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE orders
		SET is_active = FALSE
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// All retrieves every booking ordered by slot.
func (r *OrderRepository) All(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, full_name, phone, another_phone, price, min_guests,
			max_guests, date, start_time, end_time, order_amount,
			paid_amount, order_type, comments, is_active
		FROM orders
		ORDER BY date, start_time
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Search retrieves bookings whose date falls in [startDate, endDate].
func (r *OrderRepository) Search(ctx context.Context, startDate, endDate string) ([]domain.Order, error) {
	query := `
		SELECT id, full_name, phone, another_phone, price, min_guests,
			max_guests, date, start_time, end_time, order_amount,
			paid_amount, order_type, comments, is_active
		FROM orders
		WHERE date >= $1 AND date <= $2
		ORDER BY date, start_time
	`
	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID,
			&o.FullName,
			&o.Phone,
			&o.AnotherPhone,
			&o.Price,
			&o.MinGuests,
			&o.MaxGuests,
			&o.Date,
			&o.StartTime,
			&o.EndTime,
			&o.OrderAmount,
			&o.PaidAmount,
			&o.OrderType,
			&o.Comments,
			&o.IsActive,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
