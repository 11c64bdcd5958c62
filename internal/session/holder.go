package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"backoffice/internal/backend/models"
	"backoffice/pkg/platform/sentinel"
)

// Store persists the session keys.
type Store interface {
	Set(ctx context.Context, sid string, key Key, value string, ttl time.Duration) error
	Get(ctx context.Context, sid string, key Key) (string, error)
	Remove(ctx context.Context, sid string, key Key) error
	Clear(ctx context.Context, sid string) error
}

// Holder owns the current-user state. Login and logout are its only writers and
// replace the state wholesale; everything else reads a Snapshot.
type Holder struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
}

func NewHolder(store Store) *Holder {
	return &Holder{store: store, now: time.Now}
}

// Replace writes the three keys for sid, expiring them with the token.
func (h *Holder) Replace(ctx context.Context, sid, token string, user models.User, expiry time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ttl := expiry.Sub(h.now())
	if ttl <= 0 {
		return fmt.Errorf("token already expired: %w", sentinel.ErrExpired)
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	// A previous login under the same id must not leave stale keys behind.
	if err := h.store.Clear(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	values := []struct {
		key   Key
		value string
	}{
		{KeyUser, string(userJSON)},
		{KeyToken, token},
		{KeyTokenExpiry, expiry.UTC().Format(time.RFC3339)},
	}
	for _, v := range values {
		if err := h.store.Set(ctx, sid, v.key, v.value, ttl); err != nil {
			// A half-written session would load as a user without a token.
			_ = h.store.Clear(ctx, sid)
			return fmt.Errorf("store %s: %w", v.key, err)
		}
	}
	return nil
}

// Clear removes all three keys for sid.
func (h *Holder) Clear(ctx context.Context, sid string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Clear(ctx, sid)
}

// Load reloads the persisted keys for sid. A session without a stored user
// yields sentinel.ErrNotFound.
func (h *Holder) Load(ctx context.Context, sid string) (*Snapshot, error) {
	if sid == "" {
		return nil, sentinel.ErrNotFound
	}
	rawUser, err := h.store.Get(ctx, sid, KeyUser)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	snap := &Snapshot{SessionID: sid, User: cloneUser(user)}

	token, err := h.store.Get(ctx, sid, KeyToken)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}
	snap.Token = token

	rawExpiry, err := h.store.Get(ctx, sid, KeyTokenExpiry)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}
	if rawExpiry != "" {
		if exp, perr := time.Parse(time.RFC3339, rawExpiry); perr == nil {
			snap.TokenExpiry = exp
		}
	}
	return snap, nil
}

type contextKeySnapshot struct{}

// WithSnapshot attaches a snapshot to ctx for downstream readers.
func WithSnapshot(ctx context.Context, snap *Snapshot) context.Context {
	return context.WithValue(ctx, contextKeySnapshot{}, snap)
}

// FromContext returns the request's snapshot or nil.
func FromContext(ctx context.Context) *Snapshot {
	snap, _ := ctx.Value(contextKeySnapshot{}).(*Snapshot)
	return snap
}
