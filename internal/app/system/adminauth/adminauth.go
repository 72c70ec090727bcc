// Package adminauth provides cookie-session authentication for the single
// admin area. There are no user accounts; access is granted by a shared
// passphrase checked against a bcrypt hash from configuration.
package adminauth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	isAdminKey  = "is_admin"
	signedInKey = "signed_in_at"
)

// Manager encapsulates the admin session store and passphrase check.
// Use NewManager to create an instance.
type Manager struct {
	store          *sessions.CookieStore
	logger         *zap.Logger
	name           string
	passphraseHash string
}

// ConfigError is returned when session configuration is invalid.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewManager creates a Manager.
//
// sessionKey signs the cookie and must be ≥32 random chars in production
// (secure=true); in dev mode an empty key is replaced with a random one,
// which invalidates sessions across restarts. passphraseHash is the bcrypt
// hash of the admin passphrase; empty disables admin sign-in entirely.
func NewManager(sessionKey, name, passphraseHash string, maxAge time.Duration, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		if secure {
			return nil, &ConfigError{Message: "session key is empty; provide ≥32 random chars"}
		}
		sessionKey = string(securecookie.GenerateRandomKey(32))
		logger.Warn("session key not set; generated ephemeral key, sessions reset on restart")
	} else if len(sessionKey) < 32 {
		if secure {
			return nil, &ConfigError{Message: "session key is too weak for production; provide ≥32 random chars"}
		}
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)))
	}

	if name == "" {
		name = "tannery-admin"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if passphraseHash == "" {
		logger.Warn("admin passphrase hash not set; admin sign-in disabled")
	}

	return &Manager{
		store:          store,
		logger:         logger,
		name:           name,
		passphraseHash: passphraseHash,
	}, nil
}

// SessionName returns the configured session cookie name.
func (m *Manager) SessionName() string {
	return m.name
}

// CheckPassphrase reports whether the supplied passphrase matches the
// configured hash. Always false when no hash is configured.
func (m *Manager) CheckPassphrase(passphrase string) bool {
	if m.passphraseHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(m.passphraseHash), []byte(passphrase)) == nil
}

// SignIn marks the session as an authenticated admin session.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		sess, _ = m.store.New(r, m.name)
	}
	sess.Values[isAdminKey] = true
	sess.Values[signedInKey] = time.Now().UTC().Format(time.RFC3339)
	return sess.Save(r, w)
}

// SignOut terminates the admin session.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return
	}
	delete(sess.Values, isAdminKey)
	delete(sess.Values, signedInKey)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

type ctxKey string

const adminCtxKey ctxKey = "isAdmin"

// IsAdmin reports whether the request carries an authenticated admin session.
func IsAdmin(r *http.Request) bool {
	v, _ := r.Context().Value(adminCtxKey).(bool)
	return v
}

// WithTestAdmin marks the request context as admin for testing.
func WithTestAdmin(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), adminCtxKey, true))
}

// LoadSession returns middleware that flags the request context when the
// session cookie is a valid admin session. Cookie errors start a fresh
// anonymous session.
func (m *Manager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			m.logger.Debug("admin session decode failed, treating as anonymous",
				zap.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
			return
		}
		if isAdmin, _ := sess.Values[isAdminKey].(bool); isAdmin {
			r = r.WithContext(context.WithValue(r.Context(), adminCtxKey, true))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that gates a subtree behind an admin
// session. Browser requests are redirected to the login form with a return
// URL; API callers get a plain 401.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsAdmin(r) {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, "/admin/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
