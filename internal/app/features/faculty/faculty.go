// Package faculty provides the faculty roster endpoints.
//
// The public list sort is a deployment choice: newest-first by creation time
// or the manual order field. The handler is constructed with the configured
// sort and applies it to every public read.
package faculty

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	facultystore "github.com/ydpps/schoolcms/internal/app/store/faculty"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Handler handles faculty roster requests.
type Handler struct {
	store  *facultystore.Store
	sort   models.ListSort
	logger *zap.Logger
}

// NewHandler creates a new faculty handler with the configured list sort.
func NewHandler(store *facultystore.Store, sort models.ListSort, logger *zap.Logger) *Handler {
	return &Handler{store: store, sort: sort, logger: logger}
}

// PublicRoutes returns a router with the public faculty endpoints.
//
// When mounted at /api/faculty:
//   - GET /api/faculty - List faculty members
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	return r
}

// AdminRoutes returns a router with the admin faculty endpoints.
//
// When mounted at /admin/api/faculty:
//   - POST   /admin/api/faculty      - Create a faculty member
//   - PATCH  /admin/api/faculty/{id} - Update a faculty member
//   - DELETE /admin/api/faculty/{id} - Delete a faculty member
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.CreateHandler)
	r.Patch("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// ListHandler handles GET / requests.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.List(r.Context(), h.sort)
	if err != nil {
		h.logger.Error("failed to list faculty", zap.Error(err))
		jsonutil.InternalError(w, "failed to load faculty")
		return
	}
	if members == nil {
		members = []models.FacultyMember{}
	}
	jsonutil.OK(w, members)
}

// CreateInput is the request body for creating a faculty member.
type CreateInput struct {
	Name          string `json:"name" validate:"required" label:"Name"`
	Role          string `json:"role" validate:"required" label:"Role"`
	Qualification string `json:"qualification"`
	Image         string `json:"image"`
	Order         int    `json:"order"`
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

	member, err := h.store.Create(r.Context(), facultystore.CreateInput{
		Name:          in.Name,
		Role:          in.Role,
		Qualification: in.Qualification,
		Image:         in.Image,
		Order:         in.Order,
	})
	if err != nil {
		h.logger.Error("failed to create faculty member", zap.Error(err))
		jsonutil.InternalError(w, "failed to create faculty member")
		return
	}

	h.logger.Info("faculty member created",
		zap.String("id", member.ID.Hex()),
		zap.String("name", member.Name))
	jsonutil.Created(w, member)
}

// UpdateInput is the request body for updating a faculty member. Omitted
// fields are left untouched.
type UpdateInput struct {
	Name          *string `json:"name"`
	Role          *string `json:"role"`
	Qualification *string `json:"qualification"`
	Image         *string `json:"image"`
	Order         *int    `json:"order"`
}

// UpdateHandler handles PATCH /{id} requests.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid faculty id")
		return
	}

	var in UpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err = h.store.Update(r.Context(), id, facultystore.UpdateInput{
		Name:          in.Name,
		Role:          in.Role,
		Qualification: in.Qualification,
		Image:         in.Image,
		Order:         in.Order,
	})
	if err != nil {
		h.logger.Error("failed to update faculty member",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update faculty member")
		return
	}

	member, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "faculty member not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to reload faculty member",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to load faculty member")
		return
	}
	jsonutil.OK(w, member)
}

// DeleteHandler handles DELETE /{id} requests.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid faculty id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete faculty member",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete faculty member")
		return
	}

	h.logger.Info("faculty member deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
