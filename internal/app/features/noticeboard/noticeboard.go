// Package noticeboard provides the notice board endpoints.
//
// The public site lists notices newest-first; admins create, update and
// delete them. A notice may carry an attachment that was uploaded through
// the media endpoint before the notice was saved.
package noticeboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/store/notices"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Handler handles notice board requests.
type Handler struct {
	store  *notices.Store
	logger *zap.Logger
}

// NewHandler creates a new notice board handler.
func NewHandler(store *notices.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// PublicRoutes returns a router with the public notice endpoints.
//
// When mounted at /api/notices:
//   - GET /api/notices - List notices, newest first
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	return r
}

// AdminRoutes returns a router with the admin notice endpoints.
//
// When mounted at /admin/api/notices:
//   - POST   /admin/api/notices      - Create a notice
//   - PATCH  /admin/api/notices/{id} - Update a notice
//   - DELETE /admin/api/notices/{id} - Delete a notice
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.CreateHandler)
	r.Patch("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// ListHandler handles GET / requests.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list notices", zap.Error(err))
		jsonutil.InternalError(w, "failed to load notices")
		return
	}
	if items == nil {
		items = []models.Notice{}
	}
	jsonutil.OK(w, items)
}

// CreateInput is the request body for creating a notice.
type CreateInput struct {
	Title    string `json:"title" validate:"required" label:"Title"`
	Content  string `json:"content" validate:"required" label:"Content"`
	Category string `json:"category" validate:"required,noticecategory" label:"Category"`
	Date     string `json:"date" validate:"required,dateymd" label:"Date"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// CreateHandler handles POST / requests.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.BadRequest(w, result.First())
		return
	}

	notice, err := h.store.Create(r.Context(), notices.CreateInput{
		Title:    in.Title,
		Content:  in.Content,
		Category: models.NoticeCategory(in.Category),
		Date:     in.Date,
		FileURL:  in.FileURL,
		FileName: in.FileName,
	})
	if err != nil {
		h.logger.Error("failed to create notice", zap.Error(err))
		jsonutil.InternalError(w, "failed to create notice")
		return
	}

	h.logger.Info("notice created",
		zap.String("id", notice.ID.Hex()),
		zap.String("category", string(notice.Category)))
	jsonutil.Created(w, notice)
}

// UpdateInput is the request body for updating a notice. Omitted fields are
// left untouched.
type UpdateInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Date     *string `json:"date"`
	FileURL  *string `json:"fileUrl"`
	FileName *string `json:"fileName"`
}

// UpdateHandler handles PATCH /{id} requests.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid notice id")
		return
	}

	var in UpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if in.Category != nil && !models.IsValidNoticeCategory(models.NoticeCategory(*in.Category)) {
		jsonutil.BadRequest(w, "unknown notice category")
		return
	}
	if in.Date != nil && !inputval.IsValidDateYMD(*in.Date) {
		jsonutil.BadRequest(w, "Date must be a date in YYYY-MM-DD format.")
		return
	}

	var category *models.NoticeCategory
	if in.Category != nil {
		c := models.NoticeCategory(*in.Category)
		category = &c
	}

	err = h.store.Update(r.Context(), id, notices.UpdateInput{
		Title:    in.Title,
		Content:  in.Content,
		Category: category,
		Date:     in.Date,
		FileURL:  in.FileURL,
		FileName: in.FileName,
	})
	if err != nil {
		h.logger.Error("failed to update notice",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update notice")
		return
	}

	notice, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "notice not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to reload notice",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to load notice")
		return
	}
	jsonutil.OK(w, notice)
}

// DeleteHandler handles DELETE /{id} requests.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid notice id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete notice",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete notice")
		return
	}

	h.logger.Info("notice deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
