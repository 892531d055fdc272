// Package stubserver is a development backend honoring the HTTP contract
// the console SDK consumes: cookie-session auth endpoints plus the booking
// and taxonomy resources. It exists so the console can be exercised end to
// end without the production backend.
package stubserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"venue-console/internal/domain"
	"venue-console/internal/middleware"
)

// Options configures the stub backend.
type Options struct {
	// AccessTTL is how long a session cookie passes validation. Short in
	// tests so the client's refresh path gets exercised.
	AccessTTL time.Duration
	// RefreshTTL is how long a cookie can still be rotated after issue.
	RefreshTTL time.Duration
	// Orders is the booking store. Defaults to in-memory.
	Orders OrderStore
	// AllowedOrigins is a comma-separated CORS allowlist. Empty disables CORS.
	AllowedOrigins string
	// OpenAPISpec is the path to the contract document. Empty disables
	// request validation.
	OpenAPISpec string
	// LoginRPS/LoginBurst throttle credential attempts per IP. Zero RPS
	// disables throttling.
	LoginRPS   float64
	LoginBurst int
}

// Server holds the stub backend's state and router.
type Server struct {
	Users    *UserStore
	Sessions *SessionStore
	Orders   OrderStore
	Taxonomy *TaxonomyStore

	router  chi.Router
	limiter *middleware.LoginRateLimiter
}

// New assembles the stub backend.
func New(opts Options) *Server {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 15 * time.Minute
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 12 * time.Hour
	}
	if opts.Orders == nil {
		opts.Orders = NewMemoryOrderStore()
	}

	s := &Server{
		Users:    NewUserStore(),
		Sessions: NewSessionStore(opts.AccessTTL, opts.RefreshTTL),
		Orders:   opts.Orders,
		Taxonomy: NewTaxonomyStore(),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if opts.AllowedOrigins != "" {
		r.Use(middleware.CORS(middleware.ParseOrigins(opts.AllowedOrigins)))
	}
	r.Use(middleware.Metrics())
	if opts.OpenAPISpec != "" {
		r.Use(middleware.OpenAPIValidator(middleware.DefaultOpenAPIValidatorConfig(opts.OpenAPISpec)))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	login := http.Handler(http.HandlerFunc(s.handleLogin))
	if opts.LoginRPS > 0 {
		s.limiter = middleware.NewLoginRateLimiter(opts.LoginRPS, opts.LoginBurst)
		login = s.limiter.Middleware(login)
	}
	r.Method(http.MethodPost, "/auth/login", login)
	r.Get("/auth/logout", s.handleLogout)
	r.Get("/auth/refresh", s.handleRefresh)
	r.Get("/auth/whoami", s.handleWhoAmI)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(s.Sessions))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/addorder", s.handleAddOrder)
			r.Put("/editorder", s.handleEditOrder)
			r.Put("/deactivateorder", s.handleDeactivateOrder)
			r.Get("/getorders", s.handleGetOrders)
			r.Post("/getorders", s.handleSearchOrders)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/all", s.handleAllCategories)
			r.With(middleware.RequireAdmin).Post("/add", s.handleAddCategory)
			r.With(middleware.RequireAdmin).Delete("/{categoryID}", s.handleDeleteCategory)
		})

		r.Route("/sub-categories", func(r chi.Router) {
			r.Get("/all", s.handleAllSubCategories)
			r.Get("/by-parent/{categoryID}", s.handleSubCategoriesByParent)
			r.With(middleware.RequireAdmin).Post("/add", s.handleAddSubCategory)
			r.With(middleware.RequireAdmin).Delete("/{subCategoryID}", s.handleDeleteSubCategory)
		})

		r.Route("/order-menu", func(r chi.Router) {
			r.Get("/categories", s.handleMenuCategories)
			r.Get("/order/{orderID}", s.handleMenuForOrder)
			r.Put("/order/{orderID}", s.handleReplaceMenu)
		})
	})

	s.router = r
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close stops background workers.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Seed registers a user, panicking on conflict; intended for startup and
// tests only.
func (s *Server) Seed(username, email, password string, admin bool) {
	if err := s.Users.Add(username, email, password, admin); err != nil {
		panic("seed user: " + err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// currentUser returns the profile stashed by the auth middleware.
func currentUser(ctx context.Context) *domain.UserProfile {
	profile, _ := middleware.GetUser(ctx)
	return profile
}
