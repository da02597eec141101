// Package admissionsapi provides the admission application endpoints.
//
// The public site submits applications; admins list them live, change their
// status and delete them. Status changes go through the moderation service,
// which enqueues the approval email alongside the status write.
package admissionsapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/moderation"
	admissionstore "github.com/ydpps/schoolcms/internal/app/store/admissions"
	appsync "github.com/ydpps/schoolcms/internal/app/sync"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/app/system/sse"
	"github.com/ydpps/schoolcms/internal/app/system/timeouts"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Handler handles admission application requests.
type Handler struct {
	service *moderation.Service
	store   *admissionstore.Store
	sync    *appsync.Synchronizer[models.AdmissionApplication]
	logger  *zap.Logger
}

// NewHandler creates a new admissions handler. sync may be nil when no live
// stream is wired (tests); the stream endpoint then reports unavailable.
func NewHandler(service *moderation.Service, store *admissionstore.Store, sync *appsync.Synchronizer[models.AdmissionApplication], logger *zap.Logger) *Handler {
	return &Handler{service: service, store: store, sync: sync, logger: logger}
}

// PublicRoutes returns a router with the public admission endpoints.
//
// When mounted at /api/admissions:
//   - POST /api/admissions - Submit an application
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.SubmitHandler)
	return r
}

// AdminRoutes returns a router with the admin admission endpoints.
//
// When mounted at /admin/api/admissions:
//   - GET    /admin/api/admissions             - List applications, newest first
//   - GET    /admin/api/admissions/stream      - SSE stream of application snapshots
//   - GET    /admin/api/admissions/stats       - Count applications per status
//   - PATCH  /admin/api/admissions/{id}/status - Set an application's status
//   - DELETE /admin/api/admissions/{id}        - Delete an application
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	r.Get("/stream", h.StreamHandler)
	r.Get("/stats", h.StatsHandler)
	r.Patch("/{id}/status", h.SetStatusHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// SubmitHandler handles POST / requests from the public admission form.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var in moderation.SubmitInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	app, err := h.service.Submit(r.Context(), in)
	if err != nil {
		var invalid *moderation.ValidationError
		if errors.As(err, &invalid) {
			jsonutil.ValidationError(w, invalid.Fields)
			return
		}
		h.logger.Error("failed to record admission application", zap.Error(err))
		jsonutil.InternalError(w, "failed to submit application")
		return
	}

	jsonutil.Created(w, app)
}

// ListHandler handles GET / requests. This router is mounted outside the
// request timeout group because of the stream sibling, so the non-stream
// handlers bound their store calls themselves.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list admission applications", zap.Error(err))
		jsonutil.InternalError(w, "failed to load applications")
		return
	}
	if apps == nil {
		apps = []models.AdmissionApplication{}
	}
	jsonutil.OK(w, apps)
}

// StreamHandler handles GET /stream requests. Each event carries the full
// application list, newest first.
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	if h.sync == nil {
		jsonutil.Error(w, http.StatusServiceUnavailable, "stream unavailable")
		return
	}
	updates, cancel := h.sync.Subscribe()
	defer cancel()
	sse.Stream(w, r, h.sync.Snapshot(), updates, h.logger)
}

// StatsHandler handles GET /stats requests for the admin dashboard.
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts := make(map[string]int64, len(models.AllApplicationStatuses()))
	var total int64
	for _, status := range models.AllApplicationStatuses() {
		n, err := h.store.CountByStatus(ctx, status)
		if err != nil {
			h.logger.Error("failed to count applications",
				zap.String("status", string(status)), zap.Error(err))
			jsonutil.InternalError(w, "failed to load stats")
			return
		}
		counts[string(status)] = n
		total += n
	}
	jsonutil.OK(w, map[string]any{
		"total":    total,
		"byStatus": counts,
	})
}

// SetStatusInput is the request body for setting an application's status.
type SetStatusInput struct {
	Status string `json:"status"`
}

// SetStatusHandler handles PATCH /{id}/status requests. Any status may
// replace any other; re-approving re-sends the approval email.
func (h *Handler) SetStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}

	var in SetStatusInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.service.SetStatus(ctx, id, models.ApplicationStatus(in.Status))
	if errors.Is(err, moderation.ErrInvalidStatus) {
		jsonutil.BadRequest(w, "unknown application status")
		return
	}
	if errors.Is(err, moderation.ErrNotFound) {
		jsonutil.NotFound(w, "application not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to set application status",
			zap.String("id", id.Hex()),
			zap.String("status", in.Status),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to update application")
		return
	}

	jsonutil.OK(w, map[string]string{"status": in.Status})
}

// DeleteHandler handles DELETE /{id} requests.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid application id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.logger.Error("failed to delete admission application",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete application")
		return
	}

	h.logger.Info("admission application deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
