package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/access"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/platform/middleware"
	"backoffice/internal/session"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Deps is everything the router needs. Audit, Workspace and MetricsHandler
// may be nil; their routes are then not mounted.
type Deps struct {
	Logger         *slog.Logger
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
	Sessions       SessionService
	Guard          *access.Guard
	Navigation     NavigationBuilder
	Verifications  VerificationService
	Payments       PaymentService
	Audit          AuditReader
	Workspace      http.Handler
	Readiness      []ReadinessCheck
	CookieName     string
	CookieSecure   bool
}

// Handler is the thin HTTP layer over the gateway services.
type Handler struct {
	logger        *slog.Logger
	sessions      SessionService
	guard         *access.Guard
	navigation    NavigationBuilder
	verifications VerificationService
	payments      PaymentService
	audit         AuditReader
	readiness     []ReadinessCheck
	cookieName    string
	cookieSecure  bool
}

func NewHandler(d Deps) (*Handler, error) {
	if d.Sessions == nil {
		return nil, errors.New("session service is required")
	}
	if d.Guard == nil {
		return nil, errors.New("access guard is required")
	}
	if d.Navigation == nil {
		return nil, errors.New("navigation builder is required")
	}
	if d.Verifications == nil {
		return nil, errors.New("verification service is required")
	}
	if d.Payments == nil {
		return nil, errors.New("payment service is required")
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookieName := d.CookieName
	if cookieName == "" {
		cookieName = "sid"
	}
	return &Handler{
		logger:        logger,
		sessions:      d.Sessions,
		guard:         d.Guard,
		navigation:    d.Navigation,
		verifications: d.Verifications,
		payments:      d.Payments,
		audit:         d.Audit,
		readiness:     d.Readiness,
		cookieName:    cookieName,
		cookieSecure:  d.CookieSecure,
	}, nil
}

// NewRouter wires every public endpoint behind the shared middleware chain.
func NewRouter(d Deps) (http.Handler, error) {
	h, err := NewHandler(d)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.Logger(h.logger, d.HTTPMetrics))

	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(access.LoadSession(h.sessions, h.cookieName))

		r.With(middleware.ContentTypeJSON).Post("/session/login", h.handleLogin)
		r.Post("/session/logout", h.handleLogout)
		r.With(access.RequireSession).Get("/session/me", h.handleMe)

		r.Route("/client-user", func(r chi.Router) {
			r.Use(access.RequireRole(session.RoleClient, session.RoleClientUser))
			r.Get("/navigation", h.handleNavigation)
			r.Get("/access", h.handleAccess)
			if d.Workspace != nil {
				verified := r.With(access.RequireVerifiedClient(h.guard))
				for _, section := range access.GuardedSections {
					verified.Handle("/"+section, d.Workspace)
					verified.Handle("/"+section+"/*", d.Workspace)
				}
			}
		})

		r.Route("/bank-user", func(r chi.Router) {
			r.Use(access.RequireRole(session.RoleBankAdmin, session.RoleBankUser))
			r.Get("/verifications", h.handleWorklist)
			r.Get("/clients", h.handleClientsByStatus)
			r.With(middleware.ContentTypeJSON).Post("/clients/{id}/verify", h.handleVerify)
			r.Get("/clients/{id}/transitions", h.handleTransitions)
			r.With(access.RequireRole(session.RoleBankAdmin), middleware.ContentTypeJSON).
				Post("/clients/{id}/status", h.handleChangeStatus)
			if h.audit != nil {
				r.With(access.RequireRole(session.RoleBankAdmin)).Get("/clients/{id}/audit", h.handleClientAudit)
			}
			r.Get("/payments/pending", h.handlePendingPayments)
			r.Post("/payments/{id}/approve", h.handleApprovePayment)
			r.Post("/payments/{id}/reject", h.handleRejectPayment)
		})
	})

	return r, nil
}
