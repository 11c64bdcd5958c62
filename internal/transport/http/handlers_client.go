package httptransport

import (
	"context"
	"net/http"

	"backoffice/internal/navigation"
	"backoffice/internal/session"
	"backoffice/pkg/platform/httputil"
)

const defaultClientRoute = "/client-user/dashboard"

// NavigationBuilder renders the client workspace menu.
type NavigationBuilder interface {
	ForSession(ctx context.Context, snap *session.Snapshot, currentRoute string) (*navigation.Menu, error)
}

func routeParam(r *http.Request) string {
	if route := r.URL.Query().Get("route"); route != "" {
		return route
	}
	return defaultClientRoute
}

func (h *Handler) handleNavigation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	menu, err := h.navigation.ForSession(ctx, session.FromContext(ctx), routeParam(r))
	if err != nil {
		h.logFailure(ctx, "navigation failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, menu)
}

// handleAccess answers whether the route would be entered. The decision is the
// body; callers follow the redirect themselves.
func (h *Handler) handleAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := h.guard.EvaluateRoute(ctx, session.FromContext(ctx), routeParam(r))
	httputil.WriteJSON(w, http.StatusOK, d)
}
