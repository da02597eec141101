// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	admissionsfeature "github.com/ydpps/schoolcms/internal/app/features/admissionsapi"
	contactfeature "github.com/ydpps/schoolcms/internal/app/features/contact"
	errorsfeature "github.com/ydpps/schoolcms/internal/app/features/errors"
	eventsfeature "github.com/ydpps/schoolcms/internal/app/features/events"
	facultyfeature "github.com/ydpps/schoolcms/internal/app/features/faculty"
	galleryfeature "github.com/ydpps/schoolcms/internal/app/features/gallery"
	healthfeature "github.com/ydpps/schoolcms/internal/app/features/health"
	herofeature "github.com/ydpps/schoolcms/internal/app/features/hero"
	mediafeature "github.com/ydpps/schoolcms/internal/app/features/media"
	noticesfeature "github.com/ydpps/schoolcms/internal/app/features/noticeboard"
	pagesfeature "github.com/ydpps/schoolcms/internal/app/features/pagesapi"
	pridefeature "github.com/ydpps/schoolcms/internal/app/features/pride"
	sessionfeature "github.com/ydpps/schoolcms/internal/app/features/session"
	settingsfeature "github.com/ydpps/schoolcms/internal/app/features/settingsapi"
	"github.com/ydpps/schoolcms/internal/app/moderation"
	adminstore "github.com/ydpps/schoolcms/internal/app/store/admins"
	admissionstore "github.com/ydpps/schoolcms/internal/app/store/admissions"
	eventstore "github.com/ydpps/schoolcms/internal/app/store/events"
	facultystore "github.com/ydpps/schoolcms/internal/app/store/faculty"
	gallerystore "github.com/ydpps/schoolcms/internal/app/store/gallery"
	"github.com/ydpps/schoolcms/internal/app/store/heroslides"
	messagestore "github.com/ydpps/schoolcms/internal/app/store/messages"
	noticestore "github.com/ydpps/schoolcms/internal/app/store/notices"
	"github.com/ydpps/schoolcms/internal/app/store/outbox"
	pagestore "github.com/ydpps/schoolcms/internal/app/store/pages"
	pridestore "github.com/ydpps/schoolcms/internal/app/store/pride"
	"github.com/ydpps/schoolcms/internal/app/system/apicors"
	"github.com/ydpps/schoolcms/internal/app/system/auth"
	"github.com/ydpps/schoolcms/internal/app/system/jsonutil"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the settings cache and synchronizers
// started in Startup are available here.
//
// Route layout:
//   - /api/*       public content endpoints, no auth, permissive CORS,
//     no CSRF (the public site is a different origin)
//   - /admin/api/* admin console endpoints, session auth + CSRF; everything
//     except /admin/api/session requires the admin role
//   - /health, /ready, /live  health probes
//   - local storage files served under the configured URL prefix
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh account data on each request so deleted admins and role
	// changes take effect immediately.
	sessionMgr.SetAdminFetcher(adminstore.NewFetcher(deps.MongoDatabase, logger))

	errLog := errorsfeature.NewErrorLogger(logger)

	db := deps.MongoDatabase

	// Stores
	heroStore := heroslides.New(db, logger)
	noticeStore := noticestore.New(db)
	eventStore := eventstore.New(db)
	facultyStore := facultystore.New(db)
	prideStore := pridestore.New(db)
	galleryStore := gallerystore.New(db)
	applicationStore := admissionstore.New(db)
	messageStore := messagestore.New(db)
	pageStore := pagestore.New(db)
	adminStore := adminstore.New(db)
	outboxStore := outbox.New(db)

	// Moderation service: status writes and the approval email enqueue
	// commit together.
	moderationSvc := moderation.NewService(applicationStore, outboxStore, db, settingsCache.Current, logger)

	// Feature handlers
	heroHandler := herofeature.NewHandler(heroStore, heroSync, logger)
	noticesHandler := noticesfeature.NewHandler(noticeStore, logger)
	eventsHandler := eventsfeature.NewHandler(eventStore, logger)
	facultyHandler := facultyfeature.NewHandler(facultyStore, models.ParseListSort(appCfg.FacultySort), logger)
	prideHandler := pridefeature.NewHandler(prideStore, models.ParseListSort(appCfg.PrideSort), logger)
	galleryHandler := galleryfeature.NewHandler(galleryStore, deps.FileStorage, logger)
	admissionsHandler := admissionsfeature.NewHandler(moderationSvc, applicationStore, admissionsSync, logger)
	contactHandler := contactfeature.NewHandler(messageStore, outboxStore, messagesSync, settingsCache.Current, logger)
	settingsHandler := settingsfeature.NewHandler(settingsCache, deps.FileStorage, logger)
	pagesHandler := pagesfeature.NewHandler(pageStore, logger)
	mediaHandler := mediafeature.NewHandler(deps.FileStorage, logger)
	sessionHandler := sessionfeature.NewHandler(adminStore, sessionMgr, logger)

	r := chi.NewRouter()

	// Global middleware. The request timeout is applied per-group rather
	// than globally: chi's Timeout cancels the request context, which
	// would cut off the SSE streams.
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))
	r.Use(sessionMgr.LoadSessionAdmin)

	// CSRF protection with path-based exemption. The public /api endpoints
	// carry no session, so a forged request gains nothing there; the admin
	// API runs on session cookies and keeps full CSRF checks. Cookie name
	// is "schoolcms_csrf" to avoid collisions with other services on the
	// same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("schoolcms_csrf"),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			errLog.Log(req, "CSRF validation failed", csrf.FailureReason(req))
			jsonutil.Forbidden(w, "CSRF token invalid or missing")
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.HasPrefix(req.URL.Path, "/api/") {
				next.ServeHTTP(w, req)
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// Public content API. CORS here is separate from the admin origin
	// configured in CoreConfig; the public site may be hosted anywhere.
	publicCORS := apicors.Middleware()
	if len(appCfg.PublicCORSOrigins) > 0 {
		publicCORS = apicors.MiddlewareWithOrigins(appCfg.PublicCORSOrigins...)
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(publicCORS)

		// SSE endpoints live on these routers; no request timeout here.
		r.Mount("/hero-slides", herofeature.PublicRoutes(heroHandler))
		r.Mount("/settings", settingsfeature.PublicRoutes(settingsHandler))

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(30 * time.Second))
			r.Mount("/notices", noticesfeature.PublicRoutes(noticesHandler))
			r.Mount("/events", eventsfeature.PublicRoutes(eventsHandler))
			r.Mount("/faculty", facultyfeature.PublicRoutes(facultyHandler))
			r.Mount("/pride-students", pridefeature.PublicRoutes(prideHandler))
			r.Mount("/gallery", galleryfeature.PublicRoutes(galleryHandler))
			r.Mount("/pages", pagesfeature.PublicRoutes(pagesHandler))
			r.Mount("/admissions", admissionsfeature.PublicRoutes(admissionsHandler))
			r.Mount("/contact", contactfeature.PublicRoutes(contactHandler))
		})
	})

	// Admin API. Sign-in and the session probe are reachable without the
	// admin role; everything else requires it.
	r.Route("/admin/api", func(r chi.Router) {
		r.Mount("/session", sessionfeature.Routes(sessionHandler))

		// Token bootstrap for the admin console: the SPA fetches this once
		// and sends the token back in X-CSRF-Token on mutating requests.
		r.Get("/csrf", func(w http.ResponseWriter, req *http.Request) {
			jsonutil.OK(w, map[string]string{"csrfToken": csrf.Token(req)})
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionMgr.RequireRole(models.RoleAdmin))

			// Streams first; the timeout group below would cut them off.
			r.Mount("/admissions", admissionsfeature.AdminRoutes(admissionsHandler))
			r.Mount("/messages", contactfeature.AdminRoutes(contactHandler))

			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(30 * time.Second))
				r.Mount("/hero-slides", herofeature.AdminRoutes(heroHandler))
				r.Mount("/notices", noticesfeature.AdminRoutes(noticesHandler))
				r.Mount("/events", eventsfeature.AdminRoutes(eventsHandler))
				r.Mount("/faculty", facultyfeature.AdminRoutes(facultyHandler))
				r.Mount("/pride-students", pridefeature.AdminRoutes(prideHandler))
				r.Mount("/gallery", galleryfeature.AdminRoutes(galleryHandler))
				r.Mount("/settings", settingsfeature.AdminRoutes(settingsHandler))
				r.Mount("/pages", pagesfeature.AdminRoutes(pagesHandler))
				r.Mount("/media", mediafeature.AdminRoutes(mediaHandler))
			})
		})
	})

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Uploaded files (local storage only). S3 deployments serve files from
	// CloudFront directly.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}
