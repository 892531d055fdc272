package stubserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-console/internal/domain"
)

// serverFixture is a running stub backend plus a cookie-aware client.
type serverFixture struct {
	srv    *Server
	server *httptest.Server
	client *http.Client
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	srv := New(Options{})
	t.Cleanup(srv.Close)
	srv.Seed("admin", "admin@example.com", "admin-pass", true)
	srv.Seed("staff", "staff@example.com", "staff-pass", false)

	server := httptest.NewServer(srv.Router())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &serverFixture{
		srv:    srv,
		server: server,
		client: &http.Client{Jar: jar},
	}
}

func (f *serverFixture) post(t *testing.T, path string, payload any) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := f.client.Post(f.server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func (f *serverFixture) put(t *testing.T, path string, payload any) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, f.server.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	return resp
}

func (f *serverFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (f *serverFixture) login(t *testing.T, username, password string) {
	t.Helper()
	resp := f.post(t, "/auth/login", domain.LoginRequest{Username: username, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestServer_AuthFlow(t *testing.T) {
	t.Run("login_sets_session_cookie", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.post(t, "/auth/login", domain.LoginRequest{Username: "admin", Password: "admin-pass"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var sessionSet bool
		for _, c := range resp.Cookies() {
			if c.Name == sessionCookie && c.Value != "" {
				sessionSet = true
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, sessionSet)
	})

	t.Run("login_rejects_bad_credentials", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.post(t, "/auth/login", domain.LoginRequest{Username: "admin", Password: "wrong"})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("whoami_returns_profile", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "admin", "admin-pass")

		resp := f.get(t, "/auth/whoami")
		body := decodeBody[domain.WhoAmIResponse](t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, body.UserDetails)
		assert.Equal(t, "admin", body.UserDetails.Username)
		assert.True(t, body.UserDetails.IsAdmin)
	})

	t.Run("whoami_requires_session", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.get(t, "/auth/whoami")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh_rotates_cookie", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "admin", "admin-pass")

		// Invalidate the access window; whoami fails, refresh recovers.
		f.srv.Sessions.ExpireAll()

		resp := f.get(t, "/auth/whoami")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = f.get(t, "/auth/refresh")
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = f.get(t, "/auth/whoami")
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("refresh_without_session_is_401", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.get(t, "/auth/refresh")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout_revokes_session", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "admin", "admin-pass")

		resp := f.get(t, "/auth/logout")
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = f.get(t, "/auth/whoami")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestServer_Orders(t *testing.T) {
	order := domain.Order{
		FullName:  "Dana Weiss",
		Phone:     "050-1234567",
		Date:      "2026-09-15",
		StartTime: "19:00",
		EndTime:   "23:30",
		OrderType: "wedding",
	}

	t.Run("requires_authentication", func(t *testing.T) {
		f := newServerFixture(t)

		resp := f.get(t, "/orders/getorders")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("create_list_search_deactivate", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "staff", "staff-pass")

		resp := f.post(t, "/orders/addorder", order)
		created := decodeBody[map[string]string](t, resp)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		id := created["id"]
		require.NotEmpty(t, id)

		resp = f.get(t, "/orders/getorders")
		orders := decodeBody[[]domain.Order](t, resp)
		require.Len(t, orders, 1)
		assert.Equal(t, "Dana Weiss", orders[0].FullName)

		resp = f.post(t, "/orders/getorders", domain.OrderSearch{StartDate: "2026-09-01", EndDate: "2026-09-30"})
		orders = decodeBody[[]domain.Order](t, resp)
		assert.Len(t, orders, 1)

		resp = f.post(t, "/orders/getorders", domain.OrderSearch{StartDate: "2026-10-01", EndDate: "2026-10-31"})
		orders = decodeBody[[]domain.Order](t, resp)
		assert.Empty(t, orders)

		resp = f.put(t, "/orders/deactivateorder", domain.Order{ID: id})
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("double_booking_conflict", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "staff", "staff-pass")

		resp := f.post(t, "/orders/addorder", order)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = f.post(t, "/orders/addorder", order)
		resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("edit_unknown_order", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "staff", "staff-pass")

		edit := order
		edit.ID = "missing"
		resp := f.put(t, "/orders/editorder", edit)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_CategoriesAdminGating(t *testing.T) {
	t.Run("staff_cannot_mutate", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "staff", "staff-pass")

		resp := f.post(t, "/categories/add", map[string]string{"name": "Starters"})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin_full_lifecycle", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "admin", "admin-pass")

		resp := f.post(t, "/categories/add", map[string]string{"name": "Starters"})
		created := decodeBody[struct {
			Category domain.Category `json:"category"`
		}](t, resp)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NotEmpty(t, created.Category.ID)

		resp = f.post(t, "/sub-categories/add", map[string]string{
			"name":               "Hummus",
			"parent_category_id": created.Category.ID,
		})
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = f.get(t, "/sub-categories/by-parent/" + created.Category.ID)
		byParent := decodeBody[struct {
			SubCategories []domain.SubCategory `json:"sub_categories"`
		}](t, resp)
		require.Len(t, byParent.SubCategories, 1)
		assert.Equal(t, "Hummus", byParent.SubCategories[0].Name)

		req, err := http.NewRequest(http.MethodDelete, f.server.URL+"/categories/"+created.Category.ID, nil)
		require.NoError(t, err)
		delResp, err := f.client.Do(req)
		require.NoError(t, err)
		delResp.Body.Close()
		assert.Equal(t, http.StatusOK, delResp.StatusCode)
	})

	t.Run("staff_can_read", func(t *testing.T) {
		f := newServerFixture(t)
		f.login(t, "staff", "staff-pass")

		resp := f.get(t, "/categories/all")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestServer_OrderMenu(t *testing.T) {
	f := newServerFixture(t)
	f.login(t, "admin", "admin-pass")

	resp := f.post(t, "/categories/add", map[string]string{"name": "Starters"})
	created := decodeBody[struct {
		Category domain.Category `json:"category"`
	}](t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.post(t, "/sub-categories/add", map[string]string{
		"name":               "Hummus",
		"parent_category_id": created.Category.ID,
	})
	subCreated := decodeBody[struct {
		SubCategory domain.SubCategory `json:"sub_category"`
	}](t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.put(t, "/order-menu/order/order-1", domain.OrderMenuUpdate{
		Items:        []domain.OrderMenuItemRef{{OrderID: "order-1", SubCategoryID: subCreated.SubCategory.ID}},
		GeneralNotes: "no garlic",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.get(t, "/order-menu/order/order-1")
	menu := decodeBody[struct {
		Data domain.OrderMenuSelection `json:"data"`
	}](t, resp)
	require.Len(t, menu.Data.Items, 1)
	assert.Equal(t, "Hummus", menu.Data.Items[0].SubCategoryName)
	assert.Equal(t, "no garlic", menu.Data.GeneralNotes)

	resp = f.get(t, "/order-menu/categories")
	tree := decodeBody[struct {
		Data []domain.CategoryWithSubCategories `json:"data"`
	}](t, resp)
	require.Len(t, tree.Data, 1)
	assert.Equal(t, "Starters", tree.Data[0].Name)
}

func TestServer_Health(t *testing.T) {
	f := newServerFixture(t)

	resp := f.get(t, "/health")
	body := decodeBody[map[string]string](t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
