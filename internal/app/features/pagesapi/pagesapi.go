// Package pagesapi provides the editable page content endpoints.
//
// Only the about page is editable today. Rich-text sections are sanitized on
// save so whatever the editor produced is safe to render on the public site.
package pagesapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	pagestore "github.com/ydpps/schoolcms/internal/app/store/pages"
	"github.com/ydpps/schoolcms/internal/app/system/htmlsanitize"
	"github.com/ydpps/schoolcms/internal/app/system/inputval"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Handler handles page content requests.
type Handler struct {
	store  *pagestore.Store
	logger *zap.Logger
}

// NewHandler creates a new page content handler.
func NewHandler(store *pagestore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// PublicRoutes returns a router with the public page endpoints.
//
// When mounted at /api/pages:
//   - GET /api/pages/about - About page content (defaults until first save)
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/about", h.GetAboutHandler)
	return r
}

// AdminRoutes returns a router with the admin page endpoints.
//
// When mounted at /admin/api/pages:
//   - PUT /admin/api/pages/about - Replace the about page content
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Put("/about", h.SaveAboutHandler)
	return r
}

// GetAboutHandler handles GET /about requests.
func (h *Handler) GetAboutHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.GetAbout(r.Context())
	if err != nil {
		h.logger.Error("failed to load about page", zap.Error(err))
		jsonutil.InternalError(w, "failed to load page")
		return
	}
	jsonutil.OK(w, page)
}

// SaveAboutInput is the request body for saving the about page. This is a
// full replace, not a patch: the editor always submits the whole page.
type SaveAboutInput struct {
	HeroTitle    string `json:"heroTitle" validate:"required" label:"Hero title"`
	HeroSubtitle string `json:"heroSubtitle"`
	HeroImage    string `json:"heroImage"`

	HistoryTitle   string `json:"historyTitle" validate:"required" label:"History title"`
	HistoryContent string `json:"historyContent" validate:"required" label:"History content"`
	HistoryImage   string `json:"historyImage"`

	VisionTitle   string `json:"visionTitle" validate:"required" label:"Vision title"`
	VisionContent string `json:"visionContent" validate:"required" label:"Vision content"`

	MissionTitle   string `json:"missionTitle" validate:"required" label:"Mission title"`
	MissionContent string `json:"missionContent" validate:"required" label:"Mission content"`
}

// SaveAboutHandler handles PUT /about requests.
func (h *Handler) SaveAboutHandler(w http.ResponseWriter, r *http.Request) {
	var in SaveAboutInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.BadRequest(w, result.First())
		return
	}

	page := models.AboutPage{
		Slug:           models.PageSlugAbout,
		HeroTitle:      in.HeroTitle,
		HeroSubtitle:   in.HeroSubtitle,
		HeroImage:      in.HeroImage,
		HistoryTitle:   in.HistoryTitle,
		HistoryContent: htmlsanitize.Sanitize(in.HistoryContent),
		HistoryImage:   in.HistoryImage,
		VisionTitle:    in.VisionTitle,
		VisionContent:  htmlsanitize.Sanitize(in.VisionContent),
		MissionTitle:   in.MissionTitle,
		MissionContent: htmlsanitize.Sanitize(in.MissionContent),
	}

	if err := h.store.SaveAbout(r.Context(), page); err != nil {
		h.logger.Error("failed to save about page", zap.Error(err))
		jsonutil.InternalError(w, "failed to save page")
		return
	}

	saved, err := h.store.GetAbout(r.Context())
	if err != nil {
		h.logger.Error("failed to reload about page", zap.Error(err))
		jsonutil.InternalError(w, "failed to load page")
		return
	}

	h.logger.Info("about page saved")
	jsonutil.OK(w, saved)
}
