// Package workflow runs the bank-side verification review: loading the
// worklist and submitting status decisions.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"backoffice/internal/audit"
	"backoffice/internal/backend/models"
	"backoffice/internal/session"
	"backoffice/internal/verification"
	dErrors "backoffice/pkg/domain-errors"
)

// Backend is the part of the banking API the workflow calls.
type Backend interface {
	ListBankClients(ctx context.Context, token string) ([]models.Client, error)
	GetBankClient(ctx context.Context, token string, clientID int64) (*models.Client, error)
	ListClientsByStatus(ctx context.Context, token string, status verification.Status) ([]models.Client, error)
	ListClientDocuments(ctx context.Context, token string, clientID int64) ([]models.Document, error)
	VerifyClient(ctx context.Context, token string, clientID int64, req models.VerifyRequest) (*models.Client, error)
}

// StatusInvalidator drops cached client statuses after a change.
type StatusInvalidator interface {
	Invalidate(ctx context.Context, clientID int64) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const defaultDocumentConcurrency = 4

type Service struct {
	backend             Backend
	invalidator         StatusInvalidator
	logger              *slog.Logger
	metrics             *Metrics
	auditPublisher      AuditPublisher
	documentConcurrency int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

// WithDocumentConcurrency bounds parallel document fetches while loading.
func WithDocumentConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.documentConcurrency = n
		}
	}
}

func New(backend Backend, invalidator StatusInvalidator, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	if invalidator == nil {
		return nil, errors.New("status invalidator is required")
	}
	s := &Service{
		backend:             backend,
		invalidator:         invalidator,
		logger:              slog.Default(),
		documentConcurrency: defaultDocumentConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadWorklist fetches the bank's clients and their documents. A client whose
// documents cannot be fetched is kept with an empty document list.
func (s *Service) LoadWorklist(ctx context.Context, token string) (*Worklist, error) {
	clients, err := s.backend.ListBankClients(ctx, token)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(clients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.documentConcurrency)
	for i, c := range clients {
		entries[i] = Entry{Client: c, Documents: []models.Document{}}
		g.Go(func() error {
			docs, err := s.backend.ListClientDocuments(gctx, token, c.ID)
			if err != nil {
				s.logger.WarnContext(ctx, "failed to load client documents",
					"client_id", c.ID,
					"error", err,
				)
				return nil
			}
			if docs != nil {
				entries[i].Documents = docs
			}
			return nil
		})
	}
	_ = g.Wait()

	return NewWorklist(entries), nil
}

// Submit validates a reviewer decision and applies it. Nothing reaches the
// backend unless the form is valid and the transition is legal. wl may be nil,
// in which case the current status is read from the backend.
func (s *Service) Submit(ctx context.Context, token string, wl *Worklist, clientID int64, d verification.Decision) (*models.Client, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		s.metrics.recordSubmission("invalid")
		return nil, err
	}
	return s.apply(ctx, token, wl, clientID, d.Status, d.Notes)
}

// ChangeStatus is the administrative path for any legal transition, such as
// suspending a verified client.
func (s *Service) ChangeStatus(ctx context.Context, token string, clientID int64, target verification.Status, notes string) (*models.Client, error) {
	if !target.IsValid() {
		s.metrics.recordSubmission("invalid")
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown verification status %q", target))
	}
	if err := verification.ValidateNotes(notes); err != nil {
		s.metrics.recordSubmission("invalid")
		return nil, err
	}
	return s.apply(ctx, token, nil, clientID, target, notes)
}

func (s *Service) apply(ctx context.Context, token string, wl *Worklist, clientID int64, target verification.Status, notes string) (*models.Client, error) {
	current, err := s.currentStatus(ctx, token, wl, clientID)
	if err != nil {
		return nil, err
	}
	if err := verification.Transition(current, target); err != nil {
		s.metrics.recordSubmission("illegal_transition")
		return nil, err
	}

	updated, err := s.backend.VerifyClient(ctx, token, clientID, models.VerifyRequest{
		VerificationStatus: target,
		Notes:              notes,
	})
	if err != nil {
		s.metrics.recordSubmission("backend_error")
		s.logger.WarnContext(ctx, "verification submission failed",
			"client_id", clientID,
			"target", target,
			"error", err,
		)
		return nil, err
	}

	if wl != nil {
		wl.Replace(*updated)
	}
	if err := s.invalidator.Invalidate(ctx, clientID); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate client status",
			"client_id", clientID,
			"error", err,
		)
	}
	s.metrics.recordSubmission("applied")
	s.metrics.recordTransition(current, updated.VerificationStatus)
	s.emit(ctx, current, updated, notes)
	s.logger.InfoContext(ctx, "client verification status changed",
		"client_id", clientID,
		"from", current,
		"to", updated.VerificationStatus,
	)
	return updated, nil
}

func (s *Service) currentStatus(ctx context.Context, token string, wl *Worklist, clientID int64) (verification.Status, error) {
	if wl != nil {
		entry, ok := wl.Lookup(clientID)
		if !ok {
			return "", dErrors.New(dErrors.CodeNotFound, "client is not in the worklist")
		}
		return entry.Client.VerificationStatus, nil
	}
	client, err := s.backend.GetBankClient(ctx, token, clientID)
	if err != nil {
		return "", err
	}
	return client.VerificationStatus, nil
}

func (s *Service) emit(ctx context.Context, from verification.Status, updated *models.Client, notes string) {
	if s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Action:     audit.ActionVerificationDecided,
		EntityType: "client",
		EntityID:   fmt.Sprint(updated.ID),
		Decision:   fmt.Sprintf("%s->%s", from, updated.VerificationStatus),
		Reason:     notes,
	}
	if snap := session.FromContext(ctx); snap != nil {
		event.ActorID = fmt.Sprint(snap.User.UserID)
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

// TransitionHint tells a reviewer which targets the client can move to.
type TransitionHint struct {
	ClientID int64                 `json:"clientId"`
	Current  verification.Status   `json:"current"`
	Allowed  []verification.Status `json:"allowed"`
}

// ClientsByStatus lists the bank's clients in one verification status without
// loading their documents.
func (s *Service) ClientsByStatus(ctx context.Context, token string, status verification.Status) ([]models.Client, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown verification status %q", status))
	}
	clients, err := s.backend.ListClientsByStatus(ctx, token, status)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}

// Transitions reads the client's current status from the backend and returns
// the legal targets from it.
func (s *Service) Transitions(ctx context.Context, token string, clientID int64) (*TransitionHint, error) {
	client, err := s.backend.GetBankClient(ctx, token, clientID)
	if err != nil {
		return nil, err
	}
	return &TransitionHint{
		ClientID: clientID,
		Current:  client.VerificationStatus,
		Allowed:  verification.AllowedTransitions(client.VerificationStatus),
	}, nil
}
