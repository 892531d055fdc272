package client

import (
	"context"
	"net/http"

	"venue-console/internal/domain"
)

// OrdersClient talks to the booking endpoints.
type OrdersClient struct {
	api *api
}

// MessageResponse is the generic mutation acknowledgement.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// Add creates a booking.
func (c *OrdersClient) Add(ctx context.Context, order domain.Order) (string, error) {
	var resp MessageResponse
	if err := c.api.doJSON(ctx, http.MethodPost, "/orders/addorder", order, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Edit updates an existing booking, matched by its ID.
func (c *OrdersClient) Edit(ctx context.Context, order domain.Order) (string, error) {
	var resp MessageResponse
	if err := c.api.doJSON(ctx, http.MethodPut, "/orders/editorder", order, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Deactivate soft-deletes a booking; it stays queryable but inactive.
func (c *OrdersClient) Deactivate(ctx context.Context, order domain.Order) (string, error) {
	var resp MessageResponse
	if err := c.api.doJSON(ctx, http.MethodPut, "/orders/deactivateorder", order, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// All lists every booking, e.g. for the calendar view.
func (c *OrdersClient) All(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.api.doJSON(ctx, http.MethodGet, "/orders/getorders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Search lists bookings within an inclusive date range ("2006-01-02").
func (c *OrdersClient) Search(ctx context.Context, startDate, endDate string) ([]domain.Order, error) {
	var orders []domain.Order
	search := domain.OrderSearch{StartDate: startDate, EndDate: endDate}
	if err := c.api.doJSON(ctx, http.MethodPost, "/orders/getorders", search, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
