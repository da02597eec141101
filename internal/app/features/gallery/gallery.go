// Package gallery provides the photo gallery endpoints.
//
// Unlike the other content features, uploads here go straight into the
// gallery: one multipart request stores the file and creates the entry.
// Deleting an entry also deletes the stored file; a failure to remove the
// file is logged but does not resurrect the entry.
package gallery

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	gallerystore "github.com/ydpps/schoolcms/internal/app/store/gallery"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/app/system/uploads"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// uploadDir is the storage prefix for gallery images.
const uploadDir = "gallery"

// Handler handles gallery requests.
type Handler struct {
	store  *gallerystore.Store
	files  storage.Store
	logger *zap.Logger
}

// NewHandler creates a new gallery handler.
func NewHandler(store *gallerystore.Store, files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, files: files, logger: logger}
}

// PublicRoutes returns a router with the public gallery endpoints.
//
// When mounted at /api/gallery:
//   - GET /api/gallery - List images, newest first
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	return r
}

// AdminRoutes returns a router with the admin gallery endpoints.
//
// When mounted at /admin/api/gallery:
//   - POST   /admin/api/gallery      - Upload an image (multipart form)
//   - DELETE /admin/api/gallery/{id} - Delete an image and its file
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.UploadHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// ListHandler handles GET / requests.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list gallery images", zap.Error(err))
		jsonutil.InternalError(w, "failed to load gallery")
		return
	}
	if images == nil {
		images = []models.GalleryImage{}
	}
	jsonutil.OK(w, images)
}

// UploadHandler handles POST / requests. The multipart form carries the
// image under "file" and an optional "title" field.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxImageSize); err != nil {
		jsonutil.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	if header.Size > uploads.MaxImageSize {
		jsonutil.Error(w, http.StatusRequestEntityTooLarge, "image exceeds the 10 MB limit")
		return
	}
	if ct := header.Header.Get("Content-Type"); !uploads.IsAllowedImageType(ct) {
		jsonutil.BadRequest(w, "unsupported image type")
		return
	}

	path, url, err := uploads.SaveFile(r.Context(), h.files, uploadDir, file, header)
	if err != nil {
		h.logger.Error("failed to store gallery image",
			zap.String("filename", header.Filename), zap.Error(err))
		jsonutil.InternalError(w, "failed to store image")
		return
	}

	image, err := h.store.Create(r.Context(), url, path, r.FormValue("title"))
	if err != nil {
		h.logger.Error("failed to record gallery image",
			zap.String("path", path), zap.Error(err))
		// Best effort: drop the orphaned file.
		if delErr := h.files.Delete(r.Context(), path); delErr != nil {
			h.logger.Warn("failed to remove orphaned gallery file",
				zap.String("path", path), zap.Error(delErr))
		}
		jsonutil.InternalError(w, "failed to record image")
		return
	}

	h.logger.Info("gallery image uploaded",
		zap.String("id", image.ID.Hex()),
		zap.String("path", path))
	jsonutil.Created(w, image)
}

// DeleteHandler handles DELETE /{id} requests.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid image id")
		return
	}

	image, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "image not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load gallery image",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to load image")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete gallery image",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete image")
		return
	}

	if image.Path != "" {
		if err := h.files.Delete(r.Context(), image.Path); err != nil {
			h.logger.Warn("failed to delete gallery file",
				zap.String("path", image.Path), zap.Error(err))
		}
	}

	h.logger.Info("gallery image deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
