// Package events provides the school calendar endpoints.
package events

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventstore "github.com/ydpps/schoolcms/internal/app/store/events"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Handler handles calendar event requests.
type Handler struct {
	store  *eventstore.Store
	logger *zap.Logger
}

// NewHandler creates a new event handler.
func NewHandler(store *eventstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// PublicRoutes returns a router with the public event endpoints.
//
// When mounted at /api/events:
//   - GET /api/events - List events by date ascending
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	return r
}

// AdminRoutes returns a router with the admin event endpoints.
//
// When mounted at /admin/api/events:
//   - POST   /admin/api/events      - Create an event
//   - PATCH  /admin/api/events/{id} - Update an event
//   - DELETE /admin/api/events/{id} - Delete an event
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.CreateHandler)
	r.Patch("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// ListHandler handles GET / requests. Past events are included; the public
// page decides what to show.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		jsonutil.InternalError(w, "failed to load events")
		return
	}
	if items == nil {
		items = []models.Event{}
	}
	jsonutil.OK(w, items)
}

// CreateInput is the request body for creating an event.
type CreateInput struct {
	Title       string `json:"title" validate:"required" label:"Title"`
	Date        string `json:"date" validate:"required,dateymd" label:"Date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
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

	event, err := h.store.Create(r.Context(), eventstore.CreateInput{
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Description: in.Description,
	})
	if err != nil {
		h.logger.Error("failed to create event", zap.Error(err))
		jsonutil.InternalError(w, "failed to create event")
		return
	}

	h.logger.Info("event created",
		zap.String("id", event.ID.Hex()),
		zap.String("date", event.Date))
	jsonutil.Created(w, event)
}

// UpdateInput is the request body for updating an event. Omitted fields are
// left untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// UpdateHandler handles PATCH /{id} requests.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid event id")
		return
	}

	var in UpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if in.Date != nil && !inputval.IsValidDateYMD(*in.Date) {
		jsonutil.BadRequest(w, "Date must be a date in YYYY-MM-DD format.")
		return
	}

	err = h.store.Update(r.Context(), id, eventstore.UpdateInput{
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Description: in.Description,
	})
	if err != nil {
		h.logger.Error("failed to update event",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update event")
		return
	}

	event, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to reload event",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to load event")
		return
	}
	jsonutil.OK(w, event)
}

// DeleteHandler handles DELETE /{id} requests.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid event id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete event",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete event")
		return
	}

	h.logger.Info("event deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
