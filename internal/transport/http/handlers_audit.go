package httptransport

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/audit"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
)

// AuditReader lists recorded events for one entity.
type AuditReader interface {
	List(ctx context.Context, entityType, entityID string) ([]audit.Event, error)
}

func (h *Handler) handleClientAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.audit.List(ctx, "client", strconv.FormatInt(id, 10))
	if err != nil {
		if errors.Is(err, audit.ErrNotQueryable) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit trail is not queryable with the configured sink"))
			return
		}
		h.logFailure(ctx, "failed to list audit events", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}
