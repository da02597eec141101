package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ydpps/schoolcms/internal/app/system/auth"
)

// TestAdmin represents admin account data for testing HTTP handlers.
type TestAdmin struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// AdminAccount returns a TestAdmin with the admin role.
func AdminAccount() TestAdmin {
	return TestAdmin{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  "admin",
	}
}

// WithAdmin adds an admin to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the account
// directly.
func WithAdmin(r *http.Request, admin TestAdmin) *http.Request {
	sessionAdmin := &auth.SessionAdmin{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
		Role:  admin.Role,
	}
	return auth.WithTestAdmin(r, sessionAdmin)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request with the given body marshaled as
// JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with an admin in context.
func NewAuthenticatedRequest(method, target string, admin TestAdmin) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithAdmin(req, admin)
}

// NewAuthenticatedJSONRequest creates a JSON request with an admin in context.
func NewAuthenticatedJSONRequest(t *testing.T, method, target string, body any, admin TestAdmin) *http.Request {
	t.Helper()
	return WithAdmin(NewJSONRequest(t, method, target, body), admin)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// DecodeJSON unmarshals the response body into v.
func (r *ResponseRecorder) DecodeJSON(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response body: %v\nbody: %s", err, r.Body.String())
	}
}
