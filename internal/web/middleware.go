package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/erazemk/resell/internal/session"
)

type webContextKey string

const wizardSessionKey webContextKey = "wizardsession"

// wizardCookie names the cookie carrying the signed wizard session token.
const wizardCookie = "wizard"

// WizardSessionMiddleware validates the wizard cookie, if any, and adds the
// session ID to the context. An invalid cookie is cleared.
func WizardSessionMiddleware(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(wizardCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := sessions.ParseToken(cookie.Value)
			if err != nil {
				slog.Debug("dropping invalid wizard cookie", "error", err)
				clearWizardCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), wizardSessionKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// setWizardCookie stores the token for an open wizard session.
func setWizardCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearWizardCookie clears the wizard cookie with consistent attributes.
func clearWizardCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// WizardSession retrieves the wizard session ID from web context.
func WizardSession(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(wizardSessionKey).(uuid.UUID)
	return id, ok
}
