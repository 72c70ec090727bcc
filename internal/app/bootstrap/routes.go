// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	adminfeature "github.com/tanneryworkspace/website/internal/app/features/admin"
	blogfeature "github.com/tanneryworkspace/website/internal/app/features/blog"
	contactfeature "github.com/tanneryworkspace/website/internal/app/features/contact"
	errorsfeature "github.com/tanneryworkspace/website/internal/app/features/errors"
	eventsfeature "github.com/tanneryworkspace/website/internal/app/features/events"
	galleryfeature "github.com/tanneryworkspace/website/internal/app/features/gallery"
	healthfeature "github.com/tanneryworkspace/website/internal/app/features/health"
	homefeature "github.com/tanneryworkspace/website/internal/app/features/home"
	pagesfeature "github.com/tanneryworkspace/website/internal/app/features/pages"
	sitemapfeature "github.com/tanneryworkspace/website/internal/app/features/sitemap"
	videoapifeature "github.com/tanneryworkspace/website/internal/app/features/videoapi"
	appresources "github.com/tanneryworkspace/website/internal/app/resources"
	contactstore "github.com/tanneryworkspace/website/internal/app/store/contactmsg"
	videostore "github.com/tanneryworkspace/website/internal/app/store/videos"
	"github.com/tanneryworkspace/website/internal/app/system/adminauth"
	"github.com/tanneryworkspace/website/internal/app/system/seo"
	"github.com/tanneryworkspace/website/internal/app/system/viewdata"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Route map:
//   - Public pages: home, static marketing pages, /pages/{slug}, /blog,
//     /events, /gallery, /contact
//   - Admin: /admin (passphrase login + video manager), /api/videos
//   - Infrastructure: /health, probes, /sitemap.xml, /robots.txt, assets
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	authMgr, err := adminauth.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.AdminPassphraseHash, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("admin auth init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Shared view data: site identity and the structured-data builder that
	// feeds JSON-LD blocks into page heads.
	viewdata.Init(appCfg.SiteName, appCfg.BaseURL, seo.NewBuilder(seo.Business{
		Name:       appCfg.SiteName,
		BaseURL:    appCfg.BaseURL,
		Street:     "Gold Hill",
		Locality:   "Shaftesbury",
		Region:     "Dorset",
		PostalCode: "SP7 8LY",
		Country:    "GB",
		Telephone:  "+44 1747 000000",
		Email:      appCfg.MailFrom,
		Latitude:   51.0055,
		Longitude:  -2.1963,
	}))

	errLog := errorsfeature.NewErrorLogger(logger)

	videos := videostore.New(deps.MongoDatabase)
	contacts := contactstore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	// Video uploads get their own longer budget inside the handler.
	r.Use(chimw.Timeout(90 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: marks the request context when an admin session
	// cookie is present. Public routes simply see no admin.
	r.Use(authMgr.LoadSession)

	// CSRF protection with a path-based exemption for the video API, which
	// is called from admin JS with raw request bodies and session auth.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("tannery_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
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
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.HasPrefix(req.URL.Path, "/api/videos") {
				next.ServeHTTP(w, req)
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// ─────────────────────────────────────────────────────────────────────────────
	// Infrastructure routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Content, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Sitemap and robots built from static routes plus published CMS content
	sitemapHandler := sitemapfeature.NewHandler(deps.Content, appCfg.BaseURL, logger)
	sitemapfeature.MountRootEndpoints(r, sitemapHandler)

	// Static assets with pre-compressed file support (gzip/brotli)
	// /static/* serves files from disk (static directory)
	r.Handle("/static/*", fileserver.Handler("/static", "static"))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Uploaded videos (local storage only); S3 serves from CloudFront
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// ─────────────────────────────────────────────────────────────────────────────
	// Public routes
	// ─────────────────────────────────────────────────────────────────────────────

	homeHandler := homefeature.NewHandler(deps.Content, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	pagesHandler := pagesfeature.NewHandler(deps.Content, errLog, logger)
	r.Mount("/pages", pagesfeature.Routes(pagesHandler))
	pagesfeature.MountStaticRoutes(r, pagesHandler)

	blogHandler := blogfeature.NewHandler(deps.Content, logger)
	r.Mount("/blog", blogfeature.Routes(blogHandler))

	eventsHandler := eventsfeature.NewHandler(deps.Content, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	galleryHandler := galleryfeature.NewHandler(videos, logger)
	r.Mount("/gallery", galleryfeature.Routes(galleryHandler))

	contactHandler := contactfeature.NewHandler(contacts, deps.Mailer, appCfg.ContactNotifyTo, appCfg.BaseURL, logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	// ─────────────────────────────────────────────────────────────────────────────
	// Admin routes
	// ─────────────────────────────────────────────────────────────────────────────

	adminHandler := adminfeature.NewHandler(authMgr, videos, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	videoapiHandler := videoapifeature.NewHandler(deps.FileStorage, videos, authMgr, logger)
	r.Mount("/api/videos", videoapifeature.Routes(videoapiHandler))

	// 404 catch-all for unmatched routes
	r.NotFound(errorsfeature.NotFound)

	return r, nil
}
