package testutil

import (
	"net/http"

	"backoffice/internal/session"
)

const sessionHeader = "X-Session-ID"

// WithSessionID sets the session id header the gateway reads.
func WithSessionID(req *http.Request, sid string) *http.Request {
	req.Header.Set(sessionHeader, sid)
	return req
}

// WithSnapshot attaches a session snapshot to the request context, the way the
// session middleware does for authenticated requests.
func WithSnapshot(req *http.Request, snap *session.Snapshot) *http.Request {
	return req.WithContext(session.WithSnapshot(req.Context(), snap))
}
