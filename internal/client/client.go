// Package client assembles the console SDK: one cookie jar shared between
// the session manager and the retrying transport, plus typed clients for
// each backend resource.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/time/rate"

	"venue-console/internal/auth"
	"venue-console/internal/config"
	"venue-console/internal/guard"
	"venue-console/internal/store"
	"venue-console/internal/transport"
)

// Client is the assembled SDK. Auth and Guards manage the session; the
// resource clients ride the refreshing transport.
type Client struct {
	Auth          *auth.Manager
	Guards        *guard.Guard
	Orders        *OrdersClient
	Categories    *CategoriesClient
	SubCategories *SubCategoriesClient
	OrderMenu     *OrderMenuClient

	Sessions *store.SessionStore
}

// New wires the SDK from configuration. navigate receives forced redirects
// (may be nil).
func New(cfg *config.Config, navigate auth.Navigator) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	storage := store.NewSecureStorage(cfg.StateFile)
	sessions := store.NewSessionStore(storage, cfg.MaxIdleTime)

	manager := auth.NewManager(auth.Options{
		BaseURL:  cfg.APIBaseURL,
		Jar:      jar,
		Store:    sessions,
		Timeout:  cfg.RequestTimeout,
		Navigate: navigate,
	})

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	httpClient := &http.Client{
		Jar:       jar,
		Timeout:   cfg.RequestTimeout,
		Transport: transport.New(manager, jar, limiter),
	}

	api := &api{http: httpClient, baseURL: cfg.APIBaseURL}
	return &Client{
		Auth:          manager,
		Guards:        guard.New(manager),
		Orders:        &OrdersClient{api: api},
		Categories:    &CategoriesClient{api: api},
		SubCategories: &SubCategoriesClient{api: api},
		OrderMenu:     &OrderMenuClient{api: api},
		Sessions:      sessions,
	}, nil
}

// APIError is a non-2xx response from a resource endpoint.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
}

// api performs JSON round trips for the resource clients.
type api struct {
	http    *http.Client
	baseURL string
}

// doJSON sends payload (optional) and decodes the response into out
// (optional). Non-2xx responses come back as *APIError.
func (a *api) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
