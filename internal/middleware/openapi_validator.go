package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"venue-console/internal/observability"
)

// OpenAPIValidatorConfig configures request validation against the API
// contract the SDK consumes.
type OpenAPIValidatorConfig struct {
	Enabled   bool
	SpecPath  string
	SkipPaths []string
}

// DefaultOpenAPIValidatorConfig enables validation against api/openapi.yaml,
// skipping operational endpoints.
func DefaultOpenAPIValidatorConfig(specPath string) *OpenAPIValidatorConfig {
	return &OpenAPIValidatorConfig{
		Enabled:   true,
		SpecPath:  specPath,
		SkipPaths: []string{"/health", "/metrics"},
	}
}

// OpenAPIValidator validates incoming requests against an OpenAPI 3
// document. A spec that fails to load disables validation rather than
// breaking the server; the stub backend is a development aid.
func OpenAPIValidator(config *OpenAPIValidatorConfig) func(next http.Handler) http.Handler {
	noop := func(next http.Handler) http.Handler { return next }
	if config == nil || !config.Enabled {
		return noop
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(config.SpecPath)
	if err != nil {
		observability.Warn("failed to load OpenAPI spec, validation disabled",
			"path", config.SpecPath, "error", err.Error())
		return noop
	}
	if err := doc.Validate(loader.Context); err != nil {
		observability.Warn("OpenAPI spec invalid, validation disabled", "error", err.Error())
		return noop
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		observability.Warn("failed to build OpenAPI router, validation disabled",
			"error", err.Error())
		return noop
	}

	observability.Info("OpenAPI request validation enabled", "spec_path", config.SpecPath)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipPath(r.URL.Path, config.SkipPaths) {
				next.ServeHTTP(w, r)
				return
			}

			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				writeValidationError(w, fmt.Sprintf("Path not found in OpenAPI spec: %s %s", r.Method, r.URL.Path))
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				observability.Warn("request validation failed",
					"method", r.Method, "path", r.URL.Path, "error", err.Error())
				writeValidationError(w, fmt.Sprintf("Request validation failed: %s", err.Error()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func shouldSkipPath(path string, skipPaths []string) bool {
	for _, skip := range skipPaths {
		if path == skip || strings.HasPrefix(path, skip+"/") {
			return true
		}
	}
	return false
}

func writeValidationError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}
