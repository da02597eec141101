// Package media provides the shared admin upload endpoint.
//
// Content features store image and attachment URLs, not files: the admin
// console uploads the file here first, then saves the returned URL on the
// content record. The gallery and the settings logo have their own combined
// endpoints and do not use this one.
package media

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/app/system/uploads"
)

// allowedDirs are the storage prefixes uploads may target, keyed by the
// "dir" form field. Keeping this closed prevents path-shaped input from
// reaching the storage backend.
var allowedDirs = map[string]bool{
	"hero":    true,
	"faculty": true,
	"pride":   true,
	"notices": true,
	"pages":   true,
}

// Handler handles media upload requests.
type Handler struct {
	files  storage.Store
	logger *zap.Logger
}

// NewHandler creates a new media handler.
func NewHandler(files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{files: files, logger: logger}
}

// AdminRoutes returns a router with the media endpoints.
//
// When mounted at /admin/api/media:
//   - POST /admin/api/media - Upload a file (multipart form: "file", "dir")
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.UploadHandler)
	return r
}

// UploadHandler handles POST / requests and responds with the stored path
// and public URL of the uploaded file.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxImageSize); err != nil {
		jsonutil.BadRequest(w, "invalid multipart form")
		return
	}

	dir := r.FormValue("dir")
	if !allowedDirs[dir] {
		jsonutil.BadRequest(w, "unknown upload target")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	if header.Size > uploads.MaxImageSize {
		jsonutil.Error(w, http.StatusRequestEntityTooLarge, "file exceeds the 10 MB limit")
		return
	}
	if ct := header.Header.Get("Content-Type"); !uploads.IsAllowedImageType(ct) && ct != "application/pdf" {
		// Notices attach PDFs; everything else is images.
		jsonutil.BadRequest(w, "unsupported file type")
		return
	}

	path, url, err := uploads.SaveFile(r.Context(), h.files, dir, file, header)
	if err != nil {
		h.logger.Error("failed to store upload",
			zap.String("dir", dir),
			zap.String("filename", header.Filename),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to store file")
		return
	}

	h.logger.Info("file uploaded",
		zap.String("dir", dir),
		zap.String("path", path))
	jsonutil.Created(w, map[string]string{
		"path":     path,
		"url":      url,
		"fileName": header.Filename,
	})
}
