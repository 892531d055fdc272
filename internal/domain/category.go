package domain

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("sub-category not found")
	ErrCategoryExists      = errors.New("category already exists")
)

// Category is a top-level menu taxonomy entry.
type Category struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SubCategory belongs to exactly one parent category.
type SubCategory struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"name"`
	ParentCategoryID   string `json:"parent_category_id"`
	ParentCategoryName string `json:"parent_category_name,omitempty"`
	IsActive           bool   `json:"isActive,omitempty"`
	CreatedBy          string `json:"createdBy,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// CategoryWithSubCategories is the nested shape served to the menu editor.
type CategoryWithSubCategories struct {
	Category
	SubCategories []SubCategory `json:"sub_categories"`
}
