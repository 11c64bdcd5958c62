package access

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/session"
	dErrors "backoffice/pkg/domain-errors"
)

type stubLoader struct {
	snaps map[string]*session.Snapshot
}

func (l stubLoader) Current(_ context.Context, sid string) (*session.Snapshot, error) {
	if snap, ok := l.snaps[sid]; ok {
		return snap, nil
	}
	return nil, dErrors.New(dErrors.CodeUnauthorized, "no active session")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionID(req, "sid"))

	req.AddCookie(&http.Cookie{Name: "sid", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", SessionID(req, "sid"))

	req.Header.Set(SessionHeader, "from-header")
	assert.Equal(t, "from-header", SessionID(req, "sid"))
}

func TestLoadSessionAndRequireSession(t *testing.T) {
	loader := stubLoader{snaps: map[string]*session.Snapshot{"good": clientSnapshot(42)}}
	var seen *session.Snapshot
	h := LoadSession(loader, "sid")(RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("fresh session passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/session/me", nil)
		req.Header.Set(SessionHeader, "good")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "sid", seen.SessionID)
	})

	t.Run("cleared session goes to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/session/me", nil)
		req.Header.Set(SessionHeader, "logged-out")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, RedirectLogin, rr.Header().Get("Location"))
	})

	t.Run("no session id goes to login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/session/me", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
	})
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(session.RoleBankAdmin, session.RoleBankUser)(okHandler())

	t.Run("matching role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bank-user/verifications", nil)
		snap := &session.Snapshot{User: clientSnapshot(1).User}
		snap.User.Role = session.RoleBankUser
		req = req.WithContext(session.WithSnapshot(req.Context(), snap))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bank-user/verifications", nil)
		req = req.WithContext(session.WithSnapshot(req.Context(), clientSnapshot(1)))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"forbidden"`)
	})

	t.Run("no session goes to login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bank-user/verifications", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, RedirectLogin, rr.Header().Get("Location"))
	})
}
