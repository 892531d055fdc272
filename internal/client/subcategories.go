package client

import (
	"context"
	"net/http"

	"venue-console/internal/domain"
)

// SubCategoriesClient manages the second level of the menu taxonomy.
type SubCategoriesClient struct {
	api *api
}

type subCategoriesResponse struct {
	SubCategories []domain.SubCategory `json:"sub_categories"`
}

// Add creates a sub-category under the given parent.
func (c *SubCategoriesClient) Add(ctx context.Context, name, parentCategoryID string) (string, error) {
	var resp MessageResponse
	payload := map[string]string{
		"name":               name,
		"parent_category_id": parentCategoryID,
	}
	if err := c.api.doJSON(ctx, http.MethodPost, "/sub-categories/add", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// All lists every sub-category.
func (c *SubCategoriesClient) All(ctx context.Context) ([]domain.SubCategory, error) {
	var resp subCategoriesResponse
	if err := c.api.doJSON(ctx, http.MethodGet, "/sub-categories/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.SubCategories, nil
}

// ByParent lists the sub-categories of one parent category.
func (c *SubCategoriesClient) ByParent(ctx context.Context, parentCategoryID string) ([]domain.SubCategory, error) {
	var resp subCategoriesResponse
	path := "/sub-categories/by-parent/" + parentCategoryID
	if err := c.api.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.SubCategories, nil
}

// Delete removes a sub-category by ID.
func (c *SubCategoriesClient) Delete(ctx context.Context, id string) error {
	return c.api.doJSON(ctx, http.MethodDelete, "/sub-categories/"+id, nil, nil)
}
