package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"backoffice/internal/audit"
	"backoffice/internal/backend/models"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/sentinel"
)

// Authenticator is the backend's auth surface.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LoginResult is returned to the caller after a successful login.
type LoginResult struct {
	SessionID   string      `json:"session_id"`
	User        models.User `json:"user"`
	TokenExpiry time.Time   `json:"token_expiry"`
	Device      string      `json:"device,omitempty"`
}

// Service runs login and logout against the backend and keeps the holder current.
type Service struct {
	auth           Authenticator
	holder         *Holder
	logger         *slog.Logger
	auditPublisher AuditPublisher
	now            func() time.Time
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.holder.now = now
	}
}

func NewService(auth Authenticator, holder *Holder, opts ...Option) (*Service, error) {
	if auth == nil {
		return nil, errors.New("authenticator is required")
	}
	if holder == nil {
		return nil, errors.New("session holder is required")
	}
	s := &Service{auth: auth, holder: holder, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Holder() *Holder {
	return s.holder
}

// Login authenticates against the backend and stores a fresh session.
func (s *Service) Login(ctx context.Context, req models.LoginRequest, userAgent string) (*LoginResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "username and password are required")
	}
	if req.RecaptchaToken == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "recaptcha token is required")
	}

	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}
	if resp.Token.AccessToken == "" {
		return nil, dErrors.New(dErrors.CodeUnavailable, "backend issued no token")
	}

	expiry := resp.Token.Expiry
	if exp, ok := tokenExpiry(resp.Token.AccessToken); ok && (expiry.IsZero() || exp.Before(expiry)) {
		expiry = exp
	}
	if !expiry.After(s.now()) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	}

	sid := uuid.NewString()
	if err := s.holder.Replace(ctx, sid, resp.Token.AccessToken, resp.User, expiry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}

	device := describeDevice(userAgent)
	s.logger.InfoContext(ctx, "session started",
		"user_id", resp.User.UserID,
		"role", resp.User.Role,
		"device", device,
	)
	s.emit(ctx, audit.Event{
		ActorID:    fmt.Sprint(resp.User.UserID),
		Action:     audit.ActionLogin,
		EntityType: "session",
		EntityID:   sid,
		Reason:     device,
	})

	return &LoginResult{SessionID: sid, User: resp.User, TokenExpiry: expiry, Device: device}, nil
}

// Logout notifies the backend and clears all persisted keys. A backend failure
// does not keep the session alive.
func (s *Service) Logout(ctx context.Context, sid string) error {
	snap, err := s.holder.Load(ctx, sid)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if snap != nil && snap.Token != "" {
		if err := s.auth.Logout(ctx, snap.Token); err != nil {
			s.logger.WarnContext(ctx, "backend logout failed",
				"session_id", sid,
				"error", err,
			)
		}
	}
	if err := s.holder.Clear(ctx, sid); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session")
	}
	if snap != nil {
		s.emit(ctx, audit.Event{
			ActorID:    fmt.Sprint(snap.User.UserID),
			Action:     audit.ActionLogout,
			EntityType: "session",
			EntityID:   sid,
		})
	}
	return nil
}

// Current returns the session snapshot if the token is still fresh.
func (s *Service) Current(ctx context.Context, sid string) (*Snapshot, error) {
	snap, err := s.holder.Load(ctx, sid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "no active session")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if !TokenFresh(snap.Token, s.now()) || snap.Expired(s.now()) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	}
	return snap, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

// TokenFresh reports whether token is present and its exp claim, if any, is not
// in the past. The signature is not checked here; the backend owns the key.
// A token that cannot be decoded counts as expired.
func TokenFresh(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.Before(now.Truncate(time.Second))
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func describeDevice(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	browser, version := ua.Browser()
	os := ua.OS()
	switch {
	case browser != "" && os != "":
		return fmt.Sprintf("%s %s on %s", browser, version, os)
	case browser != "":
		return strings.TrimSpace(browser + " " + version)
	default:
		return os
	}
}
