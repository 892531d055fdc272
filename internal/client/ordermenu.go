package client

import (
	"context"
	"net/http"

	"venue-console/internal/domain"
)

// OrderMenuClient manages the menu selection attached to an order.
type OrderMenuClient struct {
	api *api
}

type orderMenuEnvelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    *domain.OrderMenuSelection `json:"data,omitempty"`
}

type menuCategoriesEnvelope struct {
	Success bool                               `json:"success"`
	Message string                             `json:"message"`
	Data    []domain.CategoryWithSubCategories `json:"data,omitempty"`
}

// CategoriesWithSubCategories returns the taxonomy in the nested shape the
// menu editor renders.
func (c *OrderMenuClient) CategoriesWithSubCategories(ctx context.Context) ([]domain.CategoryWithSubCategories, error) {
	var resp menuCategoriesEnvelope
	if err := c.api.doJSON(ctx, http.MethodGet, "/order-menu/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ForOrder returns the current menu selection of one order. A menu-less
// order yields an empty selection, not an error.
func (c *OrderMenuClient) ForOrder(ctx context.Context, orderID string) (domain.OrderMenuSelection, error) {
	var resp orderMenuEnvelope
	if err := c.api.doJSON(ctx, http.MethodGet, "/order-menu/order/"+orderID, nil, &resp); err != nil {
		return domain.OrderMenuSelection{}, err
	}
	if resp.Data == nil {
		return domain.OrderMenuSelection{}, nil
	}
	return *resp.Data, nil
}

// Replace swaps the order's entire selection for the given one.
func (c *OrderMenuClient) Replace(ctx context.Context, orderID string, update domain.OrderMenuUpdate) (string, error) {
	var resp orderMenuEnvelope
	if err := c.api.doJSON(ctx, http.MethodPut, "/order-menu/order/"+orderID, update, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
