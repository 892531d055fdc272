package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// AssertJSONError fails unless the recorded response carries the expected
// status and its body mentions the expected message.
func AssertJSONError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if w.Code != status {
		t.Errorf("expected status %d, got %d. Body: %s", status, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), msg) {
		t.Errorf("expected error message %q in response, got: %s", msg, w.Body.String())
	}
}

// NewJSONRequest builds a request with a JSON-encoded body and the matching
// content type.
func NewJSONRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequestWithCookie builds a request carrying one session cookie.
func NewRequestWithCookie(t *testing.T, method, url, cookieName, cookieValue string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	return req
}
