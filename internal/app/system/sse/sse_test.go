package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type snapshot struct {
	Items []string `json:"items"`
}

func TestStream(t *testing.T) {
	updates := make(chan snapshot, 2)
	updates <- snapshot{Items: []string{"a", "b"}}
	updates <- snapshot{Items: []string{"a", "b", "c"}}
	close(updates)

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	rec := httptest.NewRecorder()

	Stream(rec, req, snapshot{Items: []string{"a"}}, updates, zap.NewNop())

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/event-stream")
	}

	body := rec.Body.String()
	events := strings.Count(body, "data: ")
	if events != 3 {
		t.Errorf("wrote %d events, want 3 (initial plus two updates)\nbody: %s", events, body)
	}
	if !strings.Contains(body, `data: {"items":["a"]}`) {
		t.Errorf("initial snapshot missing from body: %s", body)
	}
	if !strings.Contains(body, `data: {"items":["a","b","c"]}`) {
		t.Errorf("final snapshot missing from body: %s", body)
	}
}

func TestStream_ClientDisconnect(t *testing.T) {
	updates := make(chan snapshot)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		Stream(rec, req, snapshot{}, updates, zap.NewNop())
		close(done)
	}()

	cancel()
	<-done

	if !strings.Contains(rec.Body.String(), "data: ") {
		t.Error("initial snapshot was not written before disconnect")
	}
}

type plainWriter struct {
	header http.Header
	code   int
}

func (p *plainWriter) Header() http.Header { return p.header }

func (p *plainWriter) Write(b []byte) (int, error) { return len(b), nil }

func (p *plainWriter) WriteHeader(code int) { p.code = code }

func TestStream_RequiresFlusher(t *testing.T) {
	updates := make(chan snapshot)
	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	w := &plainWriter{header: make(http.Header)}

	Stream(w, req, snapshot{}, updates, zap.NewNop())

	if w.code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.code, http.StatusInternalServerError)
	}
}
