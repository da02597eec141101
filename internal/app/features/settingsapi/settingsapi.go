// Package settingsapi provides the site settings endpoints.
//
// Reads are served from the in-memory settings cache, so the public site
// always gets a complete document with defaults filled in. Writes are
// merge-patches: omitted fields are never clobbered.
package settingsapi

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/settingscache"
	"github.com/ydpps/schoolcms/internal/app/store/sitesettings"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/app/system/sse"
	"github.com/ydpps/schoolcms/internal/app/system/uploads"
)

// uploadDir is the storage prefix for the school logo.
const uploadDir = "settings"

// Handler handles site settings requests.
type Handler struct {
	cache  *settingscache.Cache
	files  storage.Store
	logger *zap.Logger
}

// NewHandler creates a new settings handler.
func NewHandler(cache *settingscache.Cache, files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, files: files, logger: logger}
}

// PublicRoutes returns a router with the public settings endpoints.
//
// When mounted at /api/settings:
//   - GET /api/settings        - Current settings with defaults filled in
//   - GET /api/settings/stream - SSE stream of settings snapshots
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.GetHandler)
	r.Get("/stream", h.StreamHandler)
	return r
}

// AdminRoutes returns a router with the admin settings endpoints.
//
// When mounted at /admin/api/settings:
//   - PATCH /admin/api/settings      - Merge-patch the settings
//   - POST  /admin/api/settings/logo - Upload a new logo (multipart form)
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Patch("/", h.UpdateHandler)
	r.Post("/logo", h.LogoHandler)
	return r
}

// GetHandler handles GET / requests.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, h.cache.Current())
}

// StreamHandler handles GET /stream requests. Each event carries the full
// merged settings document.
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	updates, cancel := h.cache.Subscribe()
	defer cancel()
	sse.Stream(w, r, h.cache.Current(), updates, h.logger)
}

// UpdateInput is the request body for patching the settings. Omitted fields
// are left untouched.
type UpdateInput struct {
	SchoolName *string `json:"schoolName"`
	ShortName  *string `json:"shortName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`

	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	YouTube   *string `json:"youtube"`
}

// UpdateHandler handles PATCH / requests. The logo is not patchable here;
// it only changes through the logo upload endpoint.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err := h.cache.Update(r.Context(), sitesettings.Partial{
		SchoolName: in.SchoolName,
		ShortName:  in.ShortName,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		Facebook:   in.Facebook,
		Instagram:  in.Instagram,
		YouTube:    in.YouTube,
	})
	if err != nil {
		h.logger.Error("failed to update site settings", zap.Error(err))
		jsonutil.InternalError(w, "failed to update settings")
		return
	}

	h.logger.Info("site settings updated")
	jsonutil.OK(w, h.cache.Current())
}

// LogoHandler handles POST /logo requests. The multipart form carries the
// image under "file".
func (h *Handler) LogoHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxImageSize); err != nil {
		jsonutil.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "logo file is required")
		return
	}
	defer file.Close()

	if header.Size > uploads.MaxImageSize {
		jsonutil.Error(w, http.StatusRequestEntityTooLarge, "logo exceeds the 10 MB limit")
		return
	}
	if ct := header.Header.Get("Content-Type"); !uploads.IsAllowedImageType(ct) {
		jsonutil.BadRequest(w, "unsupported image type")
		return
	}

	path, url, err := uploads.SaveFile(r.Context(), h.files, uploadDir, file, header)
	if err != nil {
		h.logger.Error("failed to store logo",
			zap.String("filename", header.Filename), zap.Error(err))
		jsonutil.InternalError(w, "failed to store logo")
		return
	}

	if err := h.cache.Update(r.Context(), sitesettings.Partial{Logo: &url}); err != nil {
		h.logger.Error("failed to save logo URL",
			zap.String("path", path), zap.Error(err))
		jsonutil.InternalError(w, "failed to save logo")
		return
	}

	h.logger.Info("logo updated", zap.String("path", path))
	jsonutil.OK(w, h.cache.Current())
}
