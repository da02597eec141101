// Package session provides the admin sign-in and sign-out endpoints.
//
// Authentication is email plus password against the admins collection; a
// successful sign-in issues the session cookie the admin API middleware
// checks on every request.
package session

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminstore "github.com/ydpps/schoolcms/internal/app/store/admins"
	"github.com/ydpps/schoolcms/internal/app/system/auth"
	"github.com/ydpps/schoolcms/internal/app/system/authutil"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
)

// Handler handles admin sign-in and sign-out requests.
type Handler struct {
	admins  *adminstore.Store
	session *auth.SessionManager
	logger  *zap.Logger
}

// NewHandler creates a new session handler.
func NewHandler(admins *adminstore.Store, session *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{admins: admins, session: session, logger: logger}
}

// Routes returns a router with the session endpoints.
//
// When mounted at /admin/api/session:
//   - POST   /admin/api/session - Sign in
//   - DELETE /admin/api/session - Sign out
//   - GET    /admin/api/session - Current admin, if signed in
//
// Sign-in is mounted outside the authenticated group; the current-admin
// probe classifies its own session state.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.SignInHandler)
	r.Delete("/", h.SignOutHandler)
	r.Get("/", h.CurrentHandler)
	return r
}

// SignInInput is the request body for signing in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// SignInHandler handles POST / requests. Unknown email and wrong password
// both answer the same 401 so the response does not reveal which part failed.
func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var in SignInInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.BadRequest(w, result.First())
		return
	}

	admin, err := h.admins.GetByEmail(r.Context(), in.Email)
	if err == mongo.ErrNoDocuments {
		// Burn roughly the same time as a real hash check.
		authutil.CheckPassword(in.Password, "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
		jsonutil.Unauthorized(w, "invalid email or password")
		return
	}
	if err != nil {
		h.logger.Error("failed to look up admin", zap.Error(err))
		jsonutil.InternalError(w, "sign-in failed")
		return
	}

	if !authutil.CheckPassword(in.Password, admin.PasswordHash) {
		h.logger.Warn("failed sign-in attempt", zap.String("email", admin.Email))
		jsonutil.Unauthorized(w, "invalid email or password")
		return
	}

	if err := h.session.CreateSession(w, r, admin.ID, admin.Role); err != nil {
		h.logger.Error("failed to create session",
			zap.String("admin_id", admin.ID.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "sign-in failed")
		return
	}

	h.logger.Info("admin signed in",
		zap.String("admin_id", admin.ID.Hex()),
		zap.String("email", admin.Email))
	jsonutil.OK(w, admin)
}

// SignOutHandler handles DELETE / requests. Signing out without a session is
// not an error.
func (h *Handler) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	if a, ok := auth.CurrentAdmin(r); ok {
		h.logger.Info("admin signed out", zap.String("admin_id", a.ID))
	}
	h.session.DestroySession(w, r)
	jsonutil.NoContent(w)
}

// CurrentHandler handles GET / requests. Answers 401 when no valid session
// is present; the admin console uses this to decide whether to show the
// sign-in screen.
func (h *Handler) CurrentHandler(w http.ResponseWriter, r *http.Request) {
	a, ok := auth.CurrentAdmin(r)
	if !ok {
		jsonutil.Unauthorized(w, "not signed in")
		return
	}
	jsonutil.OK(w, map[string]string{
		"id":    a.ID,
		"name":  a.Name,
		"email": a.Email,
		"role":  a.Role,
	})
}

// SessionTTL is the default lifetime of an admin session.
const SessionTTL = 24 * time.Hour
