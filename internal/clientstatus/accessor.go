// Package clientstatus is the one place the gateway learns whether a client is
// verified. The guard and the navigation builder both read through it so that
// a single request sees one consistent status.
package clientstatus

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"backoffice/internal/backend/models"
	"backoffice/internal/verification"
	dErrors "backoffice/pkg/domain-errors"
)

const DefaultTTL = 5 * time.Second

// Fetcher loads a client record from the backend.
type Fetcher interface {
	GetClient(ctx context.Context, token string, clientID int64) (*models.Client, error)
}

// Cache holds recently fetched statuses. Get reports a miss with ok=false.
type Cache interface {
	Get(ctx context.Context, clientID int64) (status verification.Status, ok bool, err error)
	Set(ctx context.Context, clientID int64, status verification.Status, ttl time.Duration) error
	Delete(ctx context.Context, clientID int64) error
}

type Accessor struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *Metrics
	group   singleflight.Group

	mu          sync.Mutex
	generations map[int64]uint64
}

type Option func(*Accessor)

func WithTTL(ttl time.Duration) Option {
	return func(a *Accessor) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Accessor) {
		a.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(a *Accessor) {
		a.metrics = m
	}
}

func New(fetcher Fetcher, cache Cache, opts ...Option) (*Accessor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	a := &Accessor{
		fetcher:     fetcher,
		cache:       cache,
		ttl:         DefaultTTL,
		logger:      slog.Default(),
		generations: make(map[int64]uint64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Status returns the client's verification status, from cache when fresh.
// Fetch errors are returned as-is and never cached.
func (a *Accessor) Status(ctx context.Context, token string, clientID int64) (verification.Status, error) {
	status, ok, err := a.cache.Get(ctx, clientID)
	if err != nil {
		a.logger.WarnContext(ctx, "client status cache read failed",
			"client_id", clientID,
			"error", err,
		)
	}
	if ok {
		a.metrics.recordLookup("hit")
		return status, nil
	}
	a.metrics.recordLookup("miss")

	// Concurrent lookups for the same client and token share one backend call.
	// The call ignores the leader's cancellation; each caller returns on its own ctx.
	gen := a.generation(clientID)
	key := strconv.FormatInt(clientID, 10) + ":" + strconv.FormatUint(gen, 10) + ":" + token
	fetchCtx := context.WithoutCancel(ctx)
	ch := a.group.DoChan(key, func() (any, error) {
		return a.fetch(fetchCtx, token, clientID, gen)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(verification.Status), nil
	}
}

func (a *Accessor) fetch(ctx context.Context, token string, clientID int64, gen uint64) (verification.Status, error) {
	client, err := a.fetcher.GetClient(ctx, token, clientID)
	if err != nil {
		return "", err
	}
	if !client.VerificationStatus.IsValid() {
		return "", dErrors.New(dErrors.CodeUnavailable,
			fmt.Sprintf("backend returned unknown verification status %q", client.VerificationStatus))
	}
	// An Invalidate that landed while the fetch was in flight wins: the result
	// still answers this flight's callers but is not cached.
	if a.generation(clientID) != gen {
		return client.VerificationStatus, nil
	}
	if err := a.cache.Set(ctx, clientID, client.VerificationStatus, a.ttl); err != nil {
		a.logger.WarnContext(ctx, "client status cache write failed",
			"client_id", clientID,
			"error", err,
		)
	}
	return client.VerificationStatus, nil
}

func (a *Accessor) generation(clientID int64) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generations[clientID]
}

// Invalidate drops the cached status so the next read refetches. Fetches
// already in flight for the client no longer populate the cache.
func (a *Accessor) Invalidate(ctx context.Context, clientID int64) error {
	a.mu.Lock()
	a.generations[clientID]++
	a.mu.Unlock()
	if err := a.cache.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("invalidate client status: %w", err)
	}
	return nil
}
