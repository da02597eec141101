package settingsapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/ydpps/schoolcms/internal/app/settingscache"
	"github.com/ydpps/schoolcms/internal/app/store/sitesettings"
	"github.com/ydpps/schoolcms/internal/domain/models"
	"github.com/ydpps/schoolcms/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cache := settingscache.New(sitesettings.New(db), models.DefaultSiteSettings(), zap.NewNop())

	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/uploads",
	})
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	return NewHandler(cache, files, zap.NewNop())
}

func TestGetHandler_Defaults(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/")
	rec := testutil.NewRecorder()
	PublicRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var settings models.SiteSettings
	rec.DecodeJSON(t, &settings)
	if settings.SchoolName != models.DefaultSchoolName {
		t.Errorf("SchoolName = %q, want default %q", settings.SchoolName, models.DefaultSchoolName)
	}
}

func TestUpdateHandler(t *testing.T) {
	h := newTestHandler(t)
	admin := testutil.AdminAccount()

	phone := "+91 11111 22222"
	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPatch, "/",
		UpdateInput{Phone: &phone}, admin)
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var settings models.SiteSettings
	rec.DecodeJSON(t, &settings)
	if settings.Phone != phone {
		t.Errorf("Phone = %q, want %q", settings.Phone, phone)
	}
	// Untouched fields keep their defaults after a partial patch.
	if settings.SchoolName != models.DefaultSchoolName {
		t.Errorf("SchoolName = %q, want default preserved", settings.SchoolName)
	}
}

func TestUpdateHandler_Socials(t *testing.T) {
	h := newTestHandler(t)
	admin := testutil.AdminAccount()

	fb := "https://facebook.com/ydpps"
	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPatch, "/",
		UpdateInput{Facebook: &fb}, admin)
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var settings models.SiteSettings
	rec.DecodeJSON(t, &settings)
	if settings.Socials.Facebook != fb {
		t.Errorf("Socials.Facebook = %q, want %q", settings.Socials.Facebook, fb)
	}
}

func multipartImage(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", "image/png")
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
	return &buf, w.FormDataContentType()
}

func TestLogoHandler(t *testing.T) {
	h := newTestHandler(t)

	body, contentType := multipartImage(t, "file", "logo.png")
	req := httptest.NewRequest(http.MethodPost, "/logo", body)
	req.Header.Set("Content-Type", contentType)
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var settings models.SiteSettings
	rec.DecodeJSON(t, &settings)
	if !strings.HasPrefix(settings.Logo, "/uploads/settings/") {
		t.Errorf("Logo = %q, want a /uploads/settings/ URL", settings.Logo)
	}
}

func TestLogoHandler_MissingFile(t *testing.T) {
	h := newTestHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/logo", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := testutil.NewRecorder()
	AdminRoutes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}
