package stubserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"venue-console/internal/domain"
)

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	user := currentUser(r.Context())
	cat, err := s.Taxonomy.AddCategory(req.Name, user.Username)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			writeError(w, http.StatusConflict, "Category already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Category created",
		"category": cat,
	})
}

func (s *Server) handleAllCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.Taxonomy.Categories(),
	})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")
	if err := s.Taxonomy.DeleteCategory(id); err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

func (s *Server) handleAddSubCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             string `json:"name"`
		ParentCategoryID string `json:"parent_category_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.ParentCategoryID == "" {
		writeError(w, http.StatusBadRequest, "Name and parent_category_id are required")
		return
	}

	user := currentUser(r.Context())
	sub, err := s.Taxonomy.AddSubCategory(req.Name, req.ParentCategoryID, user.Username)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Parent category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create sub-category")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "Sub-category created",
		"sub_category": sub,
	})
}

func (s *Server) handleAllSubCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sub_categories": s.Taxonomy.SubCategories(),
	})
}

func (s *Server) handleSubCategoriesByParent(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "categoryID")
	writeJSON(w, http.StatusOK, map[string]any{
		"sub_categories": s.Taxonomy.SubCategoriesByParent(parentID),
	})
}

func (s *Server) handleDeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "subCategoryID")
	if err := s.Taxonomy.DeleteSubCategory(id); err != nil {
		writeError(w, http.StatusNotFound, "Sub-category not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sub-category deleted"})
}

func (s *Server) handleMenuCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "ok",
		"data":    s.Taxonomy.CategoriesWithSubCategories(),
	})
}

func (s *Server) handleMenuForOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	selection := s.Taxonomy.MenuForOrder(orderID)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "ok",
		"data":    selection,
	})
}

func (s *Server) handleReplaceMenu(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var update domain.OrderMenuUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	if _, err := s.Taxonomy.ReplaceMenu(orderID, update); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown sub-category in selection")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Menu updated",
	})
}
