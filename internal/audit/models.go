package audit

import (
	"context"
	"time"
)

// Actions recorded by the gateway.
const (
	ActionLogin               = "session_login"
	ActionLogout              = "session_logout"
	ActionAccessDenied        = "access_denied"
	ActionVerificationDecided = "client_verification_decided"
	ActionPaymentApproved     = "payment_approved"
	ActionPaymentRejected     = "payment_rejected"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	ActorID    string    `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Decision   string    `json:"decision,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}

// Store appends events to a sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader is implemented by sinks that can be queried back.
type Reader interface {
	ListByEntity(ctx context.Context, entityType, entityID string) ([]Event, error)
}
