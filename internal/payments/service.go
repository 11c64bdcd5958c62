// Package payments lets bank staff approve or reject client payments.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"backoffice/internal/audit"
	"backoffice/internal/backend/models"
	"backoffice/internal/session"
	dErrors "backoffice/pkg/domain-errors"
)

// StatusPending is the only payment status a bank user may decide on.
const StatusPending = "Pending"

// Backend is the payment surface of the banking API.
type Backend interface {
	ListPendingPayments(ctx context.Context, token string) ([]models.Payment, error)
	GetPayment(ctx context.Context, token string, paymentID int64) (*models.Payment, error)
	ApprovePayment(ctx context.Context, token string, paymentID int64, req models.PaymentDecisionRequest) (*models.Payment, error)
	RejectPayment(ctx context.Context, token string, paymentID int64, req models.PaymentDecisionRequest) (*models.Payment, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	backend        Backend
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func New(backend Backend, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	s := &Service{backend: backend, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Pending lists payments awaiting a bank decision.
func (s *Service) Pending(ctx context.Context, token string) ([]models.Payment, error) {
	payments, err := s.backend.ListPendingPayments(ctx, token)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// Approve accepts a pending payment. Notes are optional.
func (s *Service) Approve(ctx context.Context, token string, paymentID int64, notes string) (*models.Payment, error) {
	notes = strings.TrimSpace(notes)
	if err := s.requirePending(ctx, token, paymentID); err != nil {
		return nil, err
	}
	p, err := s.backend.ApprovePayment(ctx, token, paymentID, models.PaymentDecisionRequest{Notes: notes})
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionPaymentApproved, paymentID, "approved", notes)
	return p, nil
}

// Reject declines a pending payment and needs a reason.
func (s *Service) Reject(ctx context.Context, token string, paymentID int64, notes string) (*models.Payment, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "rejection notes are required")
	}
	if err := s.requirePending(ctx, token, paymentID); err != nil {
		return nil, err
	}
	p, err := s.backend.RejectPayment(ctx, token, paymentID, models.PaymentDecisionRequest{Notes: notes})
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.ActionPaymentRejected, paymentID, "rejected", notes)
	return p, nil
}

func (s *Service) requirePending(ctx context.Context, token string, paymentID int64) error {
	p, err := s.backend.GetPayment(ctx, token, paymentID)
	if err != nil {
		return err
	}
	if p.Status != StatusPending {
		return dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("payment is %s and can no longer be decided", p.Status))
	}
	return nil
}

func (s *Service) record(ctx context.Context, action string, paymentID int64, decision, notes string) {
	s.logger.InfoContext(ctx, "payment decided",
		"payment_id", paymentID,
		"decision", decision,
	)
	if s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Action:     action,
		EntityType: "payment",
		EntityID:   fmt.Sprint(paymentID),
		Decision:   decision,
		Reason:     notes,
	}
	if snap := session.FromContext(ctx); snap != nil {
		event.ActorID = fmt.Sprint(snap.User.UserID)
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}
