package session

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Authenticator,AuditPublisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"backoffice/internal/audit"
	"backoffice/internal/backend/models"
	"backoffice/internal/session/mocks"
	dErrors "backoffice/pkg/domain-errors"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func signedToken(exp time.Time) string {
	claims := jwt.RegisteredClaims{Subject: "5", ExpiresAt: jwt.NewNumericDate(exp)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		panic(err)
	}
	return tok
}

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockAuth  *mocks.MockAuthenticator
	mockAudit *mocks.MockAuditPublisher
	store     *InMemoryStore
	now       time.Time
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAuth = mocks.NewMockAuthenticator(s.ctrl)
	s.mockAudit = mocks.NewMockAuditPublisher(s.ctrl)
	s.store = NewInMemoryStore()
	s.now = time.Now().Truncate(time.Second)
	svc, err := NewService(s.mockAuth, NewHolder(s.store),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.mockAudit),
		WithClock(func() time.Time { return s.now }),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) validRequest() models.LoginRequest {
	return models.LoginRequest{Username: "acme.ops", Password: "secret", RecaptchaToken: "captcha"}
}

func (s *ServiceSuite) TestNewService() {
	s.Run("nil authenticator", func() {
		_, err := NewService(nil, NewHolder(s.store))
		s.ErrorContains(err, "authenticator is required")
	})
	s.Run("nil holder", func() {
		_, err := NewService(s.mockAuth, nil)
		s.ErrorContains(err, "session holder is required")
	})
}

func (s *ServiceSuite) TestLogin() {
	s.Run("missing credentials never reach the backend", func() {
		_, err := s.service.Login(s.T().Context(), models.LoginRequest{Username: "  ", Password: "x", RecaptchaToken: "c"}, "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("missing recaptcha never reaches the backend", func() {
		req := s.validRequest()
		req.RecaptchaToken = ""
		_, err := s.service.Login(s.T().Context(), req, "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("backend rejection maps to invalid credentials", func() {
		s.mockAuth.EXPECT().Login(gomock.Any(), s.validRequest()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "bad password"))
		_, err := s.service.Login(s.T().Context(), s.validRequest(), "")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("invalid credentials", dErrors.MessageOf(err))
	})

	s.Run("backend outage is surfaced", func() {
		s.mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "backend unavailable"))
		_, err := s.service.Login(s.T().Context(), s.validRequest(), "")
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("already expired token is refused", func() {
		s.mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(&models.LoginResponse{
			User:  models.User{UserID: 5, Role: RoleClientUser},
			Token: models.Token{AccessToken: signedToken(s.now.Add(-time.Minute)), Expiry: s.now.Add(time.Hour)},
		}, nil)
		_, err := s.service.Login(s.T().Context(), s.validRequest(), "")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("success stores the three keys and audits the device", func() {
		token := signedToken(s.now.Add(time.Hour))
		s.mockAuth.EXPECT().Login(gomock.Any(), s.validRequest()).Return(&models.LoginResponse{
			User:  clientUser(),
			Token: models.Token{AccessToken: token, Expiry: s.now.Add(2 * time.Hour)},
		}, nil)
		var emitted audit.Event
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
			emitted = e
			return nil
		})

		res, err := s.service.Login(s.T().Context(), s.validRequest(), chromeUA)
		s.Require().NoError(err)
		s.NotEmpty(res.SessionID)
		s.True(res.TokenExpiry.Equal(s.now.Add(time.Hour)), "the earlier of body expiry and exp claim wins")
		s.Contains(res.Device, "Chrome")
		s.Contains(res.Device, "Windows")

		for _, k := range Keys() {
			_, err := s.store.Get(s.T().Context(), res.SessionID, k)
			s.NoError(err, "key %s", k)
		}
		s.Equal(audit.ActionLogin, emitted.Action)
		s.Equal(res.SessionID, emitted.EntityID)
		s.Equal("5", emitted.ActorID)
	})
}

func (s *ServiceSuite) loginAs(user models.User) string {
	token := signedToken(s.now.Add(time.Hour))
	s.mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(&models.LoginResponse{
		User:  user,
		Token: models.Token{AccessToken: token, Expiry: s.now.Add(time.Hour)},
	}, nil)
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)
	res, err := s.service.Login(s.T().Context(), s.validRequest(), "")
	s.Require().NoError(err)
	return res.SessionID
}

func (s *ServiceSuite) TestLogout() {
	s.Run("clears every key even when the backend fails", func() {
		sid := s.loginAs(clientUser())
		s.mockAuth.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		s.Require().NoError(s.service.Logout(s.T().Context(), sid))

		for _, k := range Keys() {
			_, err := s.store.Get(s.T().Context(), sid, k)
			s.Error(err, "key %s should be gone", k)
		}
		_, err := s.service.Current(s.T().Context(), sid)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown session is a no-op", func() {
		s.NoError(s.service.Logout(s.T().Context(), "missing"))
	})
}

func (s *ServiceSuite) TestCurrent() {
	s.Run("fresh session returns snapshot", func() {
		sid := s.loginAs(clientUser())
		snap, err := s.service.Current(s.T().Context(), sid)
		s.Require().NoError(err)
		s.Equal(RoleClientUser, snap.User.Role)
	})

	s.Run("expired token is rejected", func() {
		sid := s.loginAs(clientUser())
		s.now = s.now.Add(2 * time.Hour)
		defer func() { s.now = s.now.Add(-2 * time.Hour) }()
		_, err := s.service.Current(s.T().Context(), sid)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestTokenFresh(t *testing.T) {
	now := time.Now()
	unsignedNoExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"malformed", "not-a-jwt", false},
		{"future exp", signedToken(now.Add(time.Minute)), true},
		{"past exp", signedToken(now.Add(-time.Minute)), false},
		{"no exp claim", unsignedNoExp, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenFresh(tt.token, now); got != tt.want {
				t.Errorf("TokenFresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDescribeDevice(t *testing.T) {
	if got := describeDevice(""); got != "" {
		t.Errorf("empty user agent should describe nothing, got %q", got)
	}
	got := describeDevice(chromeUA)
	if got == "" {
		t.Fatal("expected a device description")
	}
}
