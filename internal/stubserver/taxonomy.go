package stubserver

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"venue-console/internal/domain"
)

// TaxonomyStore keeps the category tree and per-order menu selections.
type TaxonomyStore struct {
	mu            sync.RWMutex
	categories    map[string]domain.Category
	subCategories map[string]domain.SubCategory
	menus         map[string]domain.OrderMenuSelection
}

func NewTaxonomyStore() *TaxonomyStore {
	return &TaxonomyStore{
		categories:    make(map[string]domain.Category),
		subCategories: make(map[string]domain.SubCategory),
		menus:         make(map[string]domain.OrderMenuSelection),
	}
}

func (s *TaxonomyStore) AddCategory(name, createdBy string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == name {
			return domain.Category{}, domain.ErrCategoryExists
		}
	}
	cat := domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		IsActive:  true,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.categories[cat.ID] = cat
	return cat, nil
}

func (s *TaxonomyStore) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		result = append(result, c)
	}
	sortByName(result, func(c domain.Category) string { return c.Name })
	return result
}

// DeleteCategory removes a category and its sub-categories.
func (s *TaxonomyStore) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(s.categories, id)
	for subID, sub := range s.subCategories {
		if sub.ParentCategoryID == id {
			delete(s.subCategories, subID)
		}
	}
	return nil
}

func (s *TaxonomyStore) AddSubCategory(name, parentID, createdBy string) (domain.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, ok := s.categories[parentID]
	if !ok {
		return domain.SubCategory{}, domain.ErrCategoryNotFound
	}
	sub := domain.SubCategory{
		ID:                 uuid.NewString(),
		Name:               name,
		ParentCategoryID:   parentID,
		ParentCategoryName: parent.Name,
		IsActive:           true,
		CreatedBy:          createdBy,
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
	}
	s.subCategories[sub.ID] = sub
	return sub, nil
}

func (s *TaxonomyStore) SubCategories() []domain.SubCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subCategoriesLocked("")
}

func (s *TaxonomyStore) SubCategoriesByParent(parentID string) []domain.SubCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subCategoriesLocked(parentID)
}

func (s *TaxonomyStore) DeleteSubCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subCategories[id]; !ok {
		return domain.ErrSubCategoryNotFound
	}
	delete(s.subCategories, id)
	return nil
}

// CategoriesWithSubCategories returns the nested tree the menu editor uses.
func (s *TaxonomyStore) CategoriesWithSubCategories() []domain.CategoryWithSubCategories {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.CategoryWithSubCategories, 0, len(s.categories))
	for id, cat := range s.categories {
		result = append(result, domain.CategoryWithSubCategories{
			Category:      cat,
			SubCategories: s.subCategoriesLocked(id),
		})
	}
	sortByName(result, func(c domain.CategoryWithSubCategories) string { return c.Name })
	return result
}

// MenuForOrder returns the stored selection; empty when none exists.
func (s *TaxonomyStore) MenuForOrder(orderID string) domain.OrderMenuSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menus[orderID]
}

// ReplaceMenu swaps an order's selection wholesale, resolving display names
// from the current taxonomy.
func (s *TaxonomyStore) ReplaceMenu(orderID string, update domain.OrderMenuUpdate) (domain.OrderMenuSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.OrderMenuItem, 0, len(update.Items))
	for _, ref := range update.Items {
		sub, ok := s.subCategories[ref.SubCategoryID]
		if !ok {
			return domain.OrderMenuSelection{}, domain.ErrSubCategoryNotFound
		}
		qty := ref.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, domain.OrderMenuItem{
			ID:              uuid.NewString(),
			OrderID:         orderID,
			SubCategoryID:   sub.ID,
			SubCategoryName: sub.Name,
			CategoryName:    sub.ParentCategoryName,
			Quantity:        qty,
			Notes:           ref.Notes,
		})
	}

	selection := domain.OrderMenuSelection{Items: items, GeneralNotes: update.GeneralNotes}
	s.menus[orderID] = selection
	return selection, nil
}

func (s *TaxonomyStore) subCategoriesLocked(parentID string) []domain.SubCategory {
	result := make([]domain.SubCategory, 0)
	for _, sub := range s.subCategories {
		if parentID == "" || sub.ParentCategoryID == parentID {
			result = append(result, sub)
		}
	}
	sortByName(result, func(sc domain.SubCategory) string { return sc.Name })
	return result
}

func sortByName[T any](items []T, name func(T) string) {
	sort.Slice(items, func(i, j int) bool { return name(items[i]) < name(items[j]) })
}
