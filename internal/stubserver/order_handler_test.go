package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-console/internal/domain"
	"venue-console/internal/testutil"
)

var _ OrderStore = (*testutil.MockOrderStore)(nil)

func orderHandlerFixture(t *testing.T) (*Server, *testutil.MockOrderStore) {
	t.Helper()
	orders := testutil.NewMockOrderStore()
	srv := New(Options{Orders: orders})
	t.Cleanup(srv.Close)
	return srv, orders
}

func TestHandleAddOrder(t *testing.T) {
	t.Run("assigns_id_and_records_call", func(t *testing.T) {
		srv, orders := orderHandlerFixture(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/orders/addorder", testutil.NewTestOrder(testutil.WithOrderID("")))
		w := httptest.NewRecorder()
		srv.handleAddOrder(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, orders.AddCalls)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["id"])
		assert.Equal(t, "Order created", resp["message"])
	})

	t.Run("duplicate_slot_conflict", func(t *testing.T) {
		srv, orders := orderHandlerFixture(t)
		orders.AddFunc = func(context.Context, *domain.Order) error {
			return domain.ErrDuplicateBooking
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/orders/addorder", testutil.NewTestOrder())
		w := httptest.NewRecorder()
		srv.handleAddOrder(w, req)

		testutil.AssertJSONError(t, w, http.StatusConflict, "Slot is already booked")
	})

	t.Run("store_failure_maps_to_500", func(t *testing.T) {
		srv, orders := orderHandlerFixture(t)
		orders.AddFunc = func(context.Context, *domain.Order) error {
			return errors.New("connection reset")
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/orders/addorder", testutil.NewTestOrder())
		w := httptest.NewRecorder()
		srv.handleAddOrder(w, req)

		testutil.AssertJSONError(t, w, http.StatusInternalServerError, "Failed to create order")
	})
}

func TestHandleEditOrder_UnknownOrder(t *testing.T) {
	srv, _ := orderHandlerFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/orders/editorder", testutil.NewTestOrder(testutil.WithOrderID("missing")))
	w := httptest.NewRecorder()
	srv.handleEditOrder(w, req)

	testutil.AssertJSONError(t, w, http.StatusNotFound, "Order not found")
}

func TestHandleGetOrders_ListsStore(t *testing.T) {
	srv, orders := orderHandlerFixture(t)
	for _, o := range testutil.NewTestOrders(3) {
		orders.Orders[o.ID] = o
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/getorders", nil)
	w := httptest.NewRecorder()
	srv.handleGetOrders(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 3)
}

func TestHandleSearchOrders_PassesBounds(t *testing.T) {
	srv, orders := orderHandlerFixture(t)

	var gotStart, gotEnd string
	orders.SearchFunc = func(_ context.Context, startDate, endDate string) ([]domain.Order, error) {
		gotStart, gotEnd = startDate, endDate
		return []domain.Order{}, nil
	}

	search := domain.OrderSearch{StartDate: "2026-09-01", EndDate: "2026-09-30"}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/orders/getorders", search)
	w := httptest.NewRecorder()
	srv.handleSearchOrders(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-09-01", gotStart)
	assert.Equal(t, "2026-09-30", gotEnd)
}
