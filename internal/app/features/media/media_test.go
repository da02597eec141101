package media

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/ydpps/schoolcms/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/uploads",
	})
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	return NewHandler(files, zap.NewNop())
}

func uploadRequest(t *testing.T, dir, filename, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if dir != "" {
		if err := w.WriteField("dir", dir); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if _, err := part.Write([]byte("fake file bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	h := newTestHandler(t)

	req := uploadRequest(t, "hero", "banner.jpg", "image/jpeg")
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp map[string]string
	rec.DecodeJSON(t, &resp)
	if !strings.HasPrefix(resp["url"], "/uploads/hero/") {
		t.Errorf("url = %q, want a /uploads/hero/ URL", resp["url"])
	}
	if resp["fileName"] != "banner.jpg" {
		t.Errorf("fileName = %q, want %q", resp["fileName"], "banner.jpg")
	}
}

func TestUploadHandler_PDFForNotices(t *testing.T) {
	h := newTestHandler(t)

	req := uploadRequest(t, "notices", "circular.pdf", "application/pdf")
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
}

func TestUploadHandler_RejectsUnknownDir(t *testing.T) {
	h := newTestHandler(t)

	for _, dir := range []string{"", "secrets", "../etc", "gallery/../x"} {
		req := uploadRequest(t, dir, "banner.jpg", "image/jpeg")
		rec := testutil.NewRecorder()
		AdminRoutes(h).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("dir %q: status = %d, want %d", dir, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestUploadHandler_RejectsUnknownType(t *testing.T) {
	h := newTestHandler(t)

	req := uploadRequest(t, "hero", "script.sh", "application/x-sh")
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}
