package http

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/utils"
	"github.com/MKhiriev/go-sched/models"
)

const sessionCookieName = "session"

// withSession loads the user of the session cookie into the request context.
//
// Requests without a usable session continue anonymously:
//   - no cookie;
//   - an expired, forged or malformed token;
//   - a fingerprint mismatch under strong session protection;
//   - a session whose user no longer exists or was disabled.
//
// An unusable cookie is cleared. Storage failures render the server error
// page.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		log := logger.FromRequest(r)
		auth := h.services.AuthService

		session, err := auth.ParseSession(ctx, cookie.Value, auth.Fingerprint(utils.ClientIP(r), r.UserAgent()))
		if err != nil {
			if errors.Is(err, service.ErrSessionFingerprintMismatch) {
				log.Warn().Msg("session cookie cleared: client changed")
			}
			clearSessionCookie(w, r)
			next.ServeHTTP(w, r)
			return
		}

		user, err := auth.CurrentUser(ctx, session.UserID)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		if user == nil {
			log.Info().Int64("user_id", session.UserID).Msg("session of a missing or disabled user")
			clearSessionCookie(w, r)
			next.ServeHTTP(w, r)
			return
		}

		ctx = log.WithField("user_id", user.UserID).WithContext(utils.WithUser(ctx, user))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireLogin redirects anonymous requests to the login page, remembering
// the requested path in the "next" query parameter.
func (h *Handler) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserFromContext(r.Context()); !ok {
			http.Redirect(w, r, loginURL(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loginURL(next string) string {
	return pathLogin + "?" + url.Values{"next": {next}}.Encode()
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, session models.Session) {
	expires := time.Time{}
	if session.Claims.ExpiresAt != nil {
		expires = session.Claims.ExpiresAt.Time
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.String(),
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
