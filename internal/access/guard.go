// Package access decides whether a session may enter the client workspace.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"backoffice/internal/audit"
	"backoffice/internal/session"
	"backoffice/internal/verification"
)

var tracer = otel.Tracer("backoffice/access")

// Redirect targets.
const (
	RedirectLogin     = "/login"
	RedirectDocuments = "/client-user/documents"
)

// Denial reasons.
const (
	ReasonNoSession         = "no_session"
	ReasonNoClient          = "no_client"
	ReasonStatusUnavailable = "status_unavailable"
	ReasonNotVerified       = "not_verified"
)

const clientWorkspacePrefix = "/client-user/"

// GuardedSections are the client workspace sections that need a Verified client.
// Documents and the dashboard stay reachable so an unverified client can finish
// onboarding.
var GuardedSections = []string{"employees", "beneficiaries", "payments", "salary", "reports"}

// StatusSource resolves a client's current verification status.
type StatusSource interface {
	Status(ctx context.Context, token string, clientID int64) (verification.Status, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Decision is the guard's answer for one navigation.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type Guard struct {
	source         StatusSource
	logger         *slog.Logger
	metrics        *Metrics
	auditPublisher AuditPublisher
}

type Option func(*Guard)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(g *Guard) {
		g.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(g *Guard) {
		g.auditPublisher = p
	}
}

func NewGuard(source StatusSource, opts ...Option) (*Guard, error) {
	if source == nil {
		return nil, fmt.Errorf("status source is required")
	}
	g := &Guard{source: source, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Evaluate permits entry only for a session whose client is Verified. A
// session without a client, or a failed status lookup, is sent to login; any
// other status is sent to the documents page.
func (g *Guard) Evaluate(ctx context.Context, snap *session.Snapshot) Decision {
	ctx, span := tracer.Start(ctx, "access.Evaluate")
	defer span.End()

	d := g.evaluate(ctx, snap)
	span.SetAttributes(
		attribute.Bool("access.allowed", d.Allowed),
		attribute.String("access.reason", d.Reason),
	)
	g.metrics.recordDecision(d)
	if !d.Allowed {
		g.emitDenial(ctx, snap, d)
	}
	return d
}

func (g *Guard) evaluate(ctx context.Context, snap *session.Snapshot) Decision {
	if snap == nil {
		return Decision{Redirect: RedirectLogin, Reason: ReasonNoSession}
	}
	clientID, ok := snap.ClientID()
	if !ok {
		return Decision{Redirect: RedirectLogin, Reason: ReasonNoClient}
	}

	status, err := g.source.Status(ctx, snap.Token, clientID)
	if err != nil {
		g.logger.WarnContext(ctx, "client status lookup failed",
			"client_id", clientID,
			"error", err,
		)
		return Decision{Redirect: RedirectLogin, Reason: ReasonStatusUnavailable}
	}
	if status != verification.StatusVerified {
		return Decision{Redirect: RedirectDocuments, Reason: ReasonNotVerified}
	}
	return Decision{Allowed: true}
}

// EvaluateRoute applies the guard only to guarded workspace sections. Other
// routes just need a session.
func (g *Guard) EvaluateRoute(ctx context.Context, snap *session.Snapshot, route string) Decision {
	if IsGuardedRoute(route) {
		return g.Evaluate(ctx, snap)
	}
	if snap == nil {
		return Decision{Redirect: RedirectLogin, Reason: ReasonNoSession}
	}
	return Decision{Allowed: true}
}

// IsGuardedRoute reports whether route falls under a guarded workspace section.
func IsGuardedRoute(route string) bool {
	rest, ok := strings.CutPrefix(route, clientWorkspacePrefix)
	if !ok {
		return false
	}
	section, _, _ := strings.Cut(rest, "/")
	for _, s := range GuardedSections {
		if section == s {
			return true
		}
	}
	return false
}

func (g *Guard) emitDenial(ctx context.Context, snap *session.Snapshot, d Decision) {
	if g.auditPublisher == nil || snap == nil {
		return
	}
	event := audit.Event{
		ActorID:    fmt.Sprint(snap.User.UserID),
		Action:     audit.ActionAccessDenied,
		EntityType: "client",
		Decision:   "denied",
		Reason:     d.Reason,
	}
	if id, ok := snap.ClientID(); ok {
		event.EntityID = fmt.Sprint(id)
	}
	if err := g.auditPublisher.Emit(ctx, event); err != nil {
		g.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
