package audit

import (
	"context"
	"errors"
	"time"

	"backoffice/pkg/requestcontext"
)

// ErrNotQueryable is returned by List when the configured sink is write-only.
var ErrNotQueryable = errors.New("audit sink does not support queries")

// Publisher captures structured audit events. It is append-only and writes
// either directly to the store or, when an inbox is attached, through a Worker.
type Publisher struct {
	store Store
	inbox chan<- Event
	now   func() time.Time
}

type PublisherOption func(*Publisher)

// WithInbox hands events to a Worker instead of writing inline.
func WithInbox(inbox chan<- Event) PublisherOption {
	return func(p *Publisher) {
		p.inbox = inbox
	}
}

func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = p.now()
	}
	if base.RequestID == "" {
		base.RequestID = requestcontext.RequestID(ctx)
	}
	if p.inbox != nil {
		select {
		case p.inbox <- base:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, entityType, entityID string) ([]Event, error) {
	r, ok := p.store.(Reader)
	if !ok {
		return nil, ErrNotQueryable
	}
	return r.ListByEntity(ctx, entityType, entityID)
}
