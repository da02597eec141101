package gallery

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	gallerystore "github.com/ydpps/schoolcms/internal/app/store/gallery"
	"github.com/ydpps/schoolcms/internal/domain/models"
	"github.com/ydpps/schoolcms/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *gallerystore.Store, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := gallerystore.New(db)

	baseDir := t.TempDir()
	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: baseDir,
		BaseURL:  "/uploads",
	})
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	return NewHandler(store, files, zap.NewNop()), store, baseDir
}

func uploadRequest(t *testing.T, title, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if title != "" {
		if err := w.WriteField("title", title); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="photo.jpg"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
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
	h, _, baseDir := newTestHandler(t)

	req := uploadRequest(t, "Sports Day", "image/jpeg")
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var image models.GalleryImage
	rec.DecodeJSON(t, &image)
	if image.Title != "Sports Day" {
		t.Errorf("Title = %q, want %q", image.Title, "Sports Day")
	}
	if !strings.HasPrefix(image.URL, "/uploads/gallery/") {
		t.Errorf("URL = %q, want a /uploads/gallery/ URL", image.URL)
	}

	// The file landed on disk under the gallery prefix.
	entries, err := os.ReadDir(filepath.Join(baseDir, "gallery"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("stored %d files, want 1", len(entries))
	}
}

func TestUploadHandler_RejectsNonImage(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := uploadRequest(t, "", "application/zip")
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestUploadHandler_MissingFile(t *testing.T) {
	h, _, _ := newTestHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", "No file"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestDeleteHandler_RemovesFile(t *testing.T) {
	h, _, baseDir := newTestHandler(t)

	req := uploadRequest(t, "Doomed", "image/png")
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var image models.GalleryImage
	rec.DecodeJSON(t, &image)

	req = testutil.NewRequest(http.MethodDelete, "/"+image.ID.Hex())
	rec = testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)

	entries, err := os.ReadDir(filepath.Join(baseDir, "gallery"))
	if err == nil && len(entries) != 0 {
		t.Errorf("%d files remain after delete, want 0", len(entries))
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	images, err := h.store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(images) != 0 {
		t.Errorf("%d gallery entries remain, want 0", len(images))
	}
}

func TestListHandler_Empty(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/")
	rec := testutil.NewRecorder()
	PublicRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "[]")
}
