package access

import (
	"context"
	"net/http"

	"backoffice/internal/session"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
)

const SessionHeader = "X-Session-ID"

// SessionLoader returns the snapshot for a fresh session.
type SessionLoader interface {
	Current(ctx context.Context, sid string) (*session.Snapshot, error)
}

// SessionID reads the session id from the header, falling back to the cookie.
func SessionID(r *http.Request, cookieName string) string {
	if sid := r.Header.Get(SessionHeader); sid != "" {
		return sid
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// LoadSession attaches the caller's snapshot to the request context when the
// session exists and its token is fresh. It never rejects a request.
func LoadSession(loader SessionLoader, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := SessionID(r, cookieName)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}
			snap, err := loader.Current(r.Context(), sid)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithSnapshot(r.Context(), snap)))
		})
	}
}

// RequireSession sends callers without a fresh session to login.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			WriteDecision(w, Decision{Redirect: RedirectLogin, Reason: ReasonNoSession})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows only sessions holding one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := session.FromContext(r.Context())
			if snap == nil {
				WriteDecision(w, Decision{Redirect: RedirectLogin, Reason: ReasonNoSession})
				return
			}
			if !snap.HasRole(roles...) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role not permitted for this area"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireVerifiedClient runs the guard on every request it wraps.
func RequireVerifiedClient(guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := guard.Evaluate(r.Context(), session.FromContext(r.Context()))
			if !d.Allowed {
				WriteDecision(w, d)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteDecision answers a denied navigation with 303 See Other to the redirect
// target and a JSON body for API callers.
func WriteDecision(w http.ResponseWriter, d Decision) {
	w.Header().Set("Location", d.Redirect)
	httputil.WriteJSON(w, http.StatusSeeOther, d)
}
