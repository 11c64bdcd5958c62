package httptransport

import (
	"context"
	"net/http"
	"time"

	"backoffice/internal/access"
	"backoffice/internal/backend/models"
	"backoffice/internal/session"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/requestcontext"
)

// SessionService is the login surface of internal/session.
type SessionService interface {
	Login(ctx context.Context, req models.LoginRequest, userAgent string) (*session.LoginResult, error)
	Logout(ctx context.Context, sid string) error
	Current(ctx context.Context, sid string) (*session.Snapshot, error)
}

type meResponse struct {
	SessionID    string      `json:"session_id"`
	User         models.User `json:"user"`
	TokenExpiry  time.Time   `json:"token_expiry"`
	BankAccess   bool        `json:"bank_access"`
	ClientAccess bool        `json:"client_access"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.sessions.Login(ctx, req, requestcontext.UserAgent(ctx))
	if err != nil {
		h.logFailure(ctx, "login failed", err)
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    res.SessionID,
		Path:     "/",
		Expires:  res.TokenExpiry,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if sid := access.SessionID(r, h.cookieName); sid != "" {
		if err := h.sessions.Logout(ctx, sid); err != nil {
			h.logFailure(ctx, "logout failed", err)
			httputil.WriteError(w, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	snap := session.FromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, meResponse{
		SessionID:    snap.SessionID,
		User:         snap.User,
		TokenExpiry:  snap.TokenExpiry,
		BankAccess:   snap.HasBankAccess(),
		ClientAccess: snap.HasClientAccess(),
	})
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}
