package backend

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	dErrors "backoffice/pkg/domain-errors"
	platformhttp "backoffice/pkg/platform/httputil"
)

// TokenSource returns the bearer token for the session behind a request.
type TokenSource func(r *http.Request) string

// WorkspaceProxy forwards client workspace requests to the backend's /Client
// resources. stripPrefix is removed from the incoming path before forwarding,
// so "/client-user/employees/7" becomes "/Client/employees/7".
func (c *Client) WorkspaceProxy(stripPrefix string, tokens TokenSource, logger *slog.Logger) http.Handler {
	target := c.BaseURL()
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			rest := strings.TrimPrefix(pr.In.URL.Path, stripPrefix)
			if !strings.HasPrefix(rest, "/") {
				rest = "/" + rest
			}
			pr.SetURL(target)
			pr.Out.URL.Path = strings.TrimRight(target.Path, "/") + "/Client" + rest
			pr.Out.URL.RawPath = ""
			pr.Out.Host = target.Host
			pr.Out.Header.Del("Cookie")
			pr.Out.Header.Del("X-Session-ID")
			if token := tokens(pr.In); token != "" {
				pr.Out.Header.Set("Authorization", "Bearer "+token)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.WarnContext(r.Context(), "workspace proxy failed",
				"path", r.URL.Path,
				"error", err,
			)
			platformhttp.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "backend unavailable"))
		},
	}
	return proxy
}
