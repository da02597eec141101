// Package pride provides the "pride of school" student showcase endpoints.
package pride

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	pridestore "github.com/ydpps/schoolcms/internal/app/store/pride"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Handler handles pride student requests.
type Handler struct {
	store  *pridestore.Store
	sort   models.ListSort
	logger *zap.Logger
}

// NewHandler creates a new pride student handler with the configured list
// sort (see the faculty feature for the sort rationale).
func NewHandler(store *pridestore.Store, sort models.ListSort, logger *zap.Logger) *Handler {
	return &Handler{store: store, sort: sort, logger: logger}
}

// PublicRoutes returns a router with the public pride student endpoints.
//
// When mounted at /api/pride-students:
//   - GET /api/pride-students - List pride students
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	return r
}

// AdminRoutes returns a router with the admin pride student endpoints.
//
// When mounted at /admin/api/pride-students:
//   - POST   /admin/api/pride-students      - Create an entry
//   - PATCH  /admin/api/pride-students/{id} - Update an entry
//   - DELETE /admin/api/pride-students/{id} - Delete an entry
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.CreateHandler)
	r.Patch("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// ListHandler handles GET / requests.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	students, err := h.store.List(r.Context(), h.sort)
	if err != nil {
		h.logger.Error("failed to list pride students", zap.Error(err))
		jsonutil.InternalError(w, "failed to load pride students")
		return
	}
	if students == nil {
		students = []models.PrideStudent{}
	}
	jsonutil.OK(w, students)
}

// CreateInput is the request body for creating a pride student entry.
type CreateInput struct {
	Name        string `json:"name" validate:"required" label:"Name"`
	Achievement string `json:"achievement" validate:"required" label:"Achievement"`
	Class       string `json:"class"`
	Year        string `json:"year"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Order       int    `json:"order"`
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

	student, err := h.store.Create(r.Context(), pridestore.CreateInput{
		Name:        in.Name,
		Achievement: in.Achievement,
		Class:       in.Class,
		Year:        in.Year,
		Image:       in.Image,
		Description: in.Description,
		Order:       in.Order,
	})
	if err != nil {
		h.logger.Error("failed to create pride student", zap.Error(err))
		jsonutil.InternalError(w, "failed to create pride student")
		return
	}

	h.logger.Info("pride student created",
		zap.String("id", student.ID.Hex()),
		zap.String("name", student.Name))
	jsonutil.Created(w, student)
}

// UpdateInput is the request body for updating a pride student entry.
// Omitted fields are left untouched.
type UpdateInput struct {
	Name        *string `json:"name"`
	Achievement *string `json:"achievement"`
	Class       *string `json:"class"`
	Year        *string `json:"year"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// UpdateHandler handles PATCH /{id} requests.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid pride student id")
		return
	}

	var in UpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err = h.store.Update(r.Context(), id, pridestore.UpdateInput{
		Name:        in.Name,
		Achievement: in.Achievement,
		Class:       in.Class,
		Year:        in.Year,
		Image:       in.Image,
		Description: in.Description,
		Order:       in.Order,
	})
	if err != nil {
		h.logger.Error("failed to update pride student",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update pride student")
		return
	}

	student, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "pride student not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to reload pride student",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to load pride student")
		return
	}
	jsonutil.OK(w, student)
}

// DeleteHandler handles DELETE /{id} requests.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid pride student id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete pride student",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete pride student")
		return
	}

	h.logger.Info("pride student deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
