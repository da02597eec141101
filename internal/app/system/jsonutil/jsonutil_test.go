package jsonutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "200 OK with data",
			status:     http.StatusOK,
			data:       map[string]string{"schoolName": "Hillside Academy"},
			wantStatus: http.StatusOK,
			wantBody:   `{"schoolName":"Hillside Academy"}`,
		},
		{
			name:       "201 Created with data",
			status:     http.StatusCreated,
			data:       map[string]string{"status": "pending"},
			wantStatus: http.StatusCreated,
			wantBody:   `{"status":"pending"}`,
		},
		{
			name:       "nil data",
			status:     http.StatusOK,
			data:       nil,
			wantStatus: http.StatusOK,
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.status, tt.data)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			body := strings.TrimSpace(rec.Body.String())
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body should be empty, got %q", rec.Body.String())
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantError  string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "invalid event id") }, 400, "invalid event id"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "authentication required") }, 401, "authentication required"},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, "CSRF token invalid or missing") }, 403, "CSRF token invalid or missing"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "notice not found") }, 404, "notice not found"},
		{"internal error", func(w http.ResponseWriter) { InternalError(w, "failed to load events") }, 500, "failed to load events"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var got map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("json unmarshal error: %v", err)
			}
			if got["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", got["error"], tt.wantError)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{
		"Email":      "invalid email format",
		"ParentName": "required",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var got struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal error: %v", err)
	}

	if got.Error != "validation failed" {
		t.Errorf("error = %q, want 'validation failed'", got.Error)
	}
	if got.Fields["Email"] != "invalid email format" {
		t.Errorf("fields.Email = %q, want 'invalid email format'", got.Fields["Email"])
	}
	if got.Fields["ParentName"] != "required" {
		t.Errorf("fields.ParentName = %q, want 'required'", got.Fields["ParentName"])
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid JSON", `{"title":"Sports Day","date":"2026-09-12"}`, false},
		{"invalid JSON", `{invalid}`, true},
		{"empty body", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var got map[string]any
			err := Decode(req, &got)

			if (err != nil) != tt.wantErr {
				t.Errorf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_StructBinding(t *testing.T) {
	type input struct {
		Title string `json:"title"`
		Date  string `json:"date"`
	}

	body := `{"title":"Orientation","date":"2026-06-01"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var in input
	if err := Decode(req, &in); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if in.Title != "Orientation" {
		t.Errorf("Title = %q, want 'Orientation'", in.Title)
	}
	if in.Date != "2026-06-01" {
		t.Errorf("Date = %q, want '2026-06-01'", in.Date)
	}
}
