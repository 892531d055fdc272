package stubserver

import (
	"errors"
	"net/http"

	"venue-console/internal/domain"
)

func (s *Server) handleAddOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if !decodeJSON(w, r, &order) {
		return
	}

	if err := s.Orders.Add(r.Context(), &order); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Order is missing required fields")
			return
		}
		if errors.Is(err, domain.ErrDuplicateBooking) {
			writeError(w, http.StatusConflict, "Slot is already booked")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Order created",
		"id":      order.ID,
	})
}

func (s *Server) handleEditOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if !decodeJSON(w, r, &order) {
		return
	}

	if err := s.Orders.Update(r.Context(), order); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order updated"})
}

func (s *Server) handleDeactivateOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if !decodeJSON(w, r, &order) {
		return
	}

	if err := s.Orders.Deactivate(r.Context(), order.ID); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to deactivate order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deactivated"})
}

func (s *Server) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Orders.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleSearchOrders(w http.ResponseWriter, r *http.Request) {
	var search domain.OrderSearch
	if !decodeJSON(w, r, &search) {
		return
	}

	orders, err := s.Orders.Search(r.Context(), search.StartDate, search.EndDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to search orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
