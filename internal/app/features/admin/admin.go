package admin

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/app/store/videos"
	"github.com/tanneryworkspace/website/internal/app/system/adminauth"
	"github.com/tanneryworkspace/website/internal/app/system/viewdata"
	"github.com/tanneryworkspace/website/internal/domain/models"
)

// Handler serves the admin area: passphrase login and the video manager.
type Handler struct {
	auth   *adminauth.Manager
	videos *videostore.Store
	logger *zap.Logger
}

// NewHandler creates a new admin Handler.
func NewHandler(auth *adminauth.Manager, videos *videostore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		auth:   auth,
		videos: videos,
		logger: logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
	ReturnTo string
	Error    string
}

// DashboardVM is the view model for the video manager.
type DashboardVM struct {
	viewdata.BaseVM
	Videos []models.Video
}

// Routes returns a router with the admin endpoints. Everything except the
// login pages requires an authenticated admin session.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/login", h.ShowLogin)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Group(func(r chi.Router) {
		r.Use(h.auth.RequireAdmin)
		r.Get("/", h.Dashboard)
	})
	return r
}

// ShowLogin renders the passphrase form.
func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	vm := LoginVM{
		BaseVM:   viewdata.New(r, "Admin Login", ""),
		ReturnTo: safeReturnPath(r.URL.Query().Get("return")),
	}
	templates.Render(w, r, "admin/login", vm)
}

// Login checks the passphrase and starts an admin session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	returnTo := safeReturnPath(r.PostFormValue("return"))
	passphrase := r.PostFormValue("passphrase")

	if !h.auth.CheckPassphrase(passphrase) {
		h.logger.Warn("admin login failed", zap.String("remote", r.RemoteAddr))
		vm := LoginVM{
			BaseVM:   viewdata.New(r, "Admin Login", ""),
			ReturnTo: returnTo,
			Error:    "That passphrase is not right.",
		}
		w.WriteHeader(http.StatusUnauthorized)
		templates.Render(w, r, "admin/login", vm)
		return
	}

	if err := h.auth.SignIn(w, r); err != nil {
		h.logger.Error("failed to start admin session", zap.Error(err))
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin signed in", zap.String("remote", r.RemoteAddr))
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// Logout ends the admin session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard renders the video manager with the stored videos, newest first.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	vids, err := h.videos.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list videos for dashboard", zap.Error(err))
	}

	vm := DashboardVM{
		BaseVM: viewdata.New(r, "Video Manager", ""),
		Videos: vids,
	}
	templates.Render(w, r, "admin/dashboard", vm)
}

// safeReturnPath keeps post-login redirects on this site. Anything that is
// not a local absolute path falls back to the dashboard.
func safeReturnPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/admin"
	}
	return p
}
