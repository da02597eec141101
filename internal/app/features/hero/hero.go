// Package hero provides the homepage hero slider endpoints.
//
// The public site reads the slide list and can subscribe to a live stream
// that pushes a fresh snapshot whenever an admin changes the slider. Admin
// endpoints cover create, update, delete and single-step reordering.
package hero

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/store/heroslides"
	appsync "github.com/ydpps/schoolcms/internal/app/sync"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/app/system/sse"
	"github.com/ydpps/schoolcms/internal/app/system/timeouts"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Handler handles hero slide requests.
type Handler struct {
	store  *heroslides.Store
	sync   *appsync.Synchronizer[models.HeroSlide]
	logger *zap.Logger
}

// NewHandler creates a new hero slide handler. sync may be nil when no live
// stream is wired (tests); the stream endpoint then reports unavailable.
func NewHandler(store *heroslides.Store, sync *appsync.Synchronizer[models.HeroSlide], logger *zap.Logger) *Handler {
	return &Handler{store: store, sync: sync, logger: logger}
}

// PublicRoutes returns a router with the public hero slide endpoints.
//
// When mounted at /api/hero-slides:
//   - GET /api/hero-slides        - List slides in display order
//   - GET /api/hero-slides/stream - SSE stream of slide snapshots
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	r.Get("/stream", h.StreamHandler)
	return r
}

// AdminRoutes returns a router with the admin hero slide endpoints.
//
// When mounted at /admin/api/hero-slides:
//   - POST   /admin/api/hero-slides           - Create a slide (appended last)
//   - PATCH  /admin/api/hero-slides/{id}      - Update a slide's content
//   - DELETE /admin/api/hero-slides/{id}      - Delete a slide
//   - POST   /admin/api/hero-slides/{id}/move - Move a slide up or down
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.CreateHandler)
	r.Patch("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
	r.Post("/{id}/move", h.MoveHandler)
	return r
}

// ListHandler handles GET / requests. The public hero router is mounted
// outside the request timeout group because of the stream sibling, so the
// list bounds its store call itself.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	slides, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list hero slides", zap.Error(err))
		jsonutil.InternalError(w, "failed to load slides")
		return
	}
	if slides == nil {
		slides = []models.HeroSlide{}
	}
	jsonutil.OK(w, slides)
}

// StreamHandler handles GET /stream requests. Each event carries the full
// slide list in display order.
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	if h.sync == nil {
		jsonutil.Error(w, http.StatusServiceUnavailable, "stream unavailable")
		return
	}
	updates, cancel := h.sync.Subscribe()
	defer cancel()
	sse.Stream(w, r, h.sync.Snapshot(), updates, h.logger)
}

// CreateInput is the request body for creating a slide. The image must
// already be uploaded; only its URL is stored here.
type CreateInput struct {
	Title    string `json:"title" validate:"required" label:"Title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image" validate:"required" label:"Image"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
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

	slide, err := h.store.Create(r.Context(), heroslides.CreateInput{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Image:    in.Image,
		CTAText:  in.CTAText,
		CTALink:  in.CTALink,
	})
	if err != nil {
		h.logger.Error("failed to create hero slide", zap.Error(err))
		jsonutil.InternalError(w, "failed to create slide")
		return
	}

	h.logger.Info("hero slide created",
		zap.String("id", slide.ID.Hex()),
		zap.String("title", slide.Title))
	jsonutil.Created(w, slide)
}

// UpdateInput is the request body for updating a slide. Omitted fields are
// left untouched; order cannot be changed here, only through move.
type UpdateInput struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Image    *string `json:"image"`
	CTAText  *string `json:"ctaText"`
	CTALink  *string `json:"ctaLink"`
}

// UpdateHandler handles PATCH /{id} requests.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid slide id")
		return
	}

	var in UpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if in.Title != nil && *in.Title == "" {
		jsonutil.BadRequest(w, "Title cannot be empty.")
		return
	}

	err = h.store.Update(r.Context(), id, heroslides.UpdateInput{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Image:    in.Image,
		CTAText:  in.CTAText,
		CTALink:  in.CTALink,
	})
	if err != nil {
		h.logger.Error("failed to update hero slide",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update slide")
		return
	}

	slide, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "slide not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to reload hero slide",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to load slide")
		return
	}
	jsonutil.OK(w, slide)
}

// DeleteHandler handles DELETE /{id} requests. The surviving slides are
// renumbered so order values stay contiguous.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid slide id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete hero slide",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete slide")
		return
	}

	h.logger.Info("hero slide deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

// MoveInput is the request body for moving a slide.
type MoveInput struct {
	Direction string `json:"direction" validate:"required,oneof=up down" label:"Direction"`
}

// MoveHandler handles POST /{id}/move requests. Boundary moves (first slide
// up, last slide down) succeed without changing anything; the response
// reports whether a move happened.
func (h *Handler) MoveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid slide id")
		return
	}

	var in MoveInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.BadRequest(w, result.First())
		return
	}

	moved, err := h.store.Move(r.Context(), id, heroslides.Direction(in.Direction))
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "slide not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to move hero slide",
			zap.String("id", id.Hex()),
			zap.String("direction", in.Direction),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to move slide")
		return
	}

	jsonutil.OK(w, map[string]bool{"moved": moved})
}
