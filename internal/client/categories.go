package client

import (
	"context"
	"net/http"

	"venue-console/internal/domain"
)

// CategoriesClient manages the top level of the menu taxonomy. Mutations are
// admin-only server-side; the admin guard keeps the console honest.
type CategoriesClient struct {
	api *api
}

type categoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// Add creates a category.
func (c *CategoriesClient) Add(ctx context.Context, name string) (string, error) {
	var resp MessageResponse
	payload := map[string]string{"name": name}
	if err := c.api.doJSON(ctx, http.MethodPost, "/categories/add", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// All lists every category.
func (c *CategoriesClient) All(ctx context.Context) ([]domain.Category, error) {
	var resp categoriesResponse
	if err := c.api.doJSON(ctx, http.MethodGet, "/categories/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Delete removes a category by ID.
func (c *CategoriesClient) Delete(ctx context.Context, id string) error {
	return c.api.doJSON(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
}
