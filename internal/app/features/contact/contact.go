// Package contact provides the contact form endpoints.
//
// Public submissions are stored and a copy is queued for delivery to the
// school's inbox through the notification outbox; admins list messages live
// and delete them.
package contact

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	messagestore "github.com/ydpps/schoolcms/internal/app/store/messages"
	"github.com/ydpps/schoolcms/internal/app/store/outbox"
	appsync "github.com/ydpps/schoolcms/internal/app/sync"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/app/system/mailer"
	"github.com/ydpps/schoolcms/internal/app/system/sse"
	"github.com/ydpps/schoolcms/internal/app/system/timeouts"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// SettingsFn supplies the current site settings; the handler reads the
// school's name and inbox address from it per request.
type SettingsFn func() models.SiteSettings

// Handler handles contact form requests.
type Handler struct {
	store    *messagestore.Store
	outbox   *outbox.Store
	sync     *appsync.Synchronizer[models.ContactMessage]
	settings SettingsFn
	logger   *zap.Logger
}

// NewHandler creates a new contact handler. outbox may be nil to disable the
// inbox copy; sync may be nil when no live stream is wired (tests).
func NewHandler(store *messagestore.Store, ob *outbox.Store, sync *appsync.Synchronizer[models.ContactMessage], settings SettingsFn, logger *zap.Logger) *Handler {
	if settings == nil {
		settings = models.DefaultSiteSettings
	}
	return &Handler{store: store, outbox: ob, sync: sync, settings: settings, logger: logger}
}

// PublicRoutes returns a router with the public contact endpoints.
//
// When mounted at /api/contact:
//   - POST /api/contact - Submit a contact message
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.SubmitHandler)
	return r
}

// AdminRoutes returns a router with the admin contact endpoints.
//
// When mounted at /admin/api/messages:
//   - GET    /admin/api/messages        - List messages, newest first
//   - GET    /admin/api/messages/stream - SSE stream of message snapshots
//   - DELETE /admin/api/messages/{id}   - Delete a message
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	r.Get("/stream", h.StreamHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// SubmitInput is the request body for the public contact form.
type SubmitInput struct {
	Name    string `json:"name" validate:"required" label:"Name"`
	Email   string `json:"email" validate:"required,email" label:"Email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required" label:"Message"`
}

// SubmitHandler handles POST / requests.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var in SubmitInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.BadRequest(w, result.First())
		return
	}

	msg, err := h.store.Create(r.Context(), messagestore.CreateInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	})
	if err != nil {
		h.logger.Error("failed to record contact message", zap.Error(err))
		jsonutil.InternalError(w, "failed to submit message")
		return
	}

	h.enqueueInboxCopy(r, msg)

	h.logger.Info("contact message submitted", zap.String("id", msg.ID.Hex()))
	jsonutil.Created(w, msg)
}

// enqueueInboxCopy queues a copy of the message for the school's inbox. The
// copy is best effort: a queue failure is logged and the submission still
// succeeds.
func (h *Handler) enqueueInboxCopy(r *http.Request, msg *models.ContactMessage) {
	if h.outbox == nil {
		return
	}
	settings := h.settings()
	if settings.Email == "" {
		return
	}

	textBody, htmlBody := mailer.ContactMessageEmail(mailer.ContactMessageEmailData{
		SchoolName: settings.SchoolName,
		Name:       msg.Name,
		Email:      msg.Email,
		Phone:      msg.Phone,
		Message:    msg.Message,
	})

	subject := "New Contact Message - " + settings.SchoolName
	if msg.Subject != "" {
		subject = "Contact Form: " + msg.Subject
	}

	if _, err := h.outbox.Enqueue(r.Context(), outbox.EnqueueInput{
		To:       settings.Email,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}); err != nil {
		h.logger.Warn("failed to queue contact message copy",
			zap.String("id", msg.ID.Hex()), zap.Error(err))
	}
}

// ListHandler handles GET / requests. The messages router is mounted outside
// the request timeout group because of the stream sibling, so the non-stream
// handlers bound their store calls themselves.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msgs, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list contact messages", zap.Error(err))
		jsonutil.InternalError(w, "failed to load messages")
		return
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	jsonutil.OK(w, msgs)
}

// StreamHandler handles GET /stream requests.
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	if h.sync == nil {
		jsonutil.Error(w, http.StatusServiceUnavailable, "stream unavailable")
		return
	}
	updates, cancel := h.sync.Subscribe()
	defer cancel()
	sse.Stream(w, r, h.sync.Snapshot(), updates, h.logger)
}

// DeleteHandler handles DELETE /{id} requests.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid message id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.store.Delete(ctx, id); err != nil {
		h.logger.Error("failed to delete contact message",
			zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete message")
		return
	}

	h.logger.Info("contact message deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
