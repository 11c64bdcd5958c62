package workflow

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Backend,StatusInvalidator,AuditPublisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"backoffice/internal/access"
	"backoffice/internal/audit"
	"backoffice/internal/backend/models"
	"backoffice/internal/clientstatus"
	"backoffice/internal/session"
	"backoffice/internal/verification"
	"backoffice/internal/verification/workflow/mocks"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/sentinel"
)

const token = "bank-token"

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	backend     *mocks.MockBackend
	invalidator *mocks.MockStatusInvalidator
	mockAudit   *mocks.MockAuditPublisher
	metrics     *Metrics
	service     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.backend = mocks.NewMockBackend(s.ctrl)
	s.invalidator = mocks.NewMockStatusInvalidator(s.ctrl)
	s.mockAudit = mocks.NewMockAuditPublisher(s.ctrl)
	s.metrics = NewMetrics(prometheus.NewRegistry())
	svc, err := New(s.backend, s.invalidator,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithAuditPublisher(s.mockAudit),
		WithDocumentConcurrency(2),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestClientsByStatus() {
	s.Run("asks the backend for one status", func() {
		s.backend.EXPECT().ListClientsByStatus(gomock.Any(), "tok", verification.StatusInReview).
			Return([]models.Client{{ID: 4, VerificationStatus: verification.StatusInReview}}, nil)

		clients, err := s.service.ClientsByStatus(s.T().Context(), "tok", verification.StatusInReview)
		s.Require().NoError(err)
		s.Require().Len(clients, 1)
		s.Equal(int64(4), clients[0].ID)
	})

	s.Run("empty result is an empty list", func() {
		s.backend.EXPECT().ListClientsByStatus(gomock.Any(), "tok", verification.StatusSuspended).Return(nil, nil)

		clients, err := s.service.ClientsByStatus(s.T().Context(), "tok", verification.StatusSuspended)
		s.Require().NoError(err)
		s.NotNil(clients)
		s.Empty(clients)
	})

	s.Run("unknown status never reaches the backend", func() {
		_, err := s.service.ClientsByStatus(s.T().Context(), "tok", "Archived")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestNewRequiresDependencies() {
	_, err := New(nil, s.invalidator)
	s.ErrorContains(err, "backend is required")
	_, err = New(s.backend, nil)
	s.ErrorContains(err, "status invalidator is required")
}

func (s *ServiceSuite) TestLoadWorklistAttachesDocuments() {
	ctx := s.T().Context()
	s.backend.EXPECT().ListBankClients(ctx, token).Return([]models.Client{
		{ID: 1, VerificationStatus: verification.StatusPending},
		{ID: 2, VerificationStatus: verification.StatusVerified},
		{ID: 3, VerificationStatus: verification.StatusPending},
	}, nil)
	s.backend.EXPECT().ListClientDocuments(gomock.Any(), token, int64(1)).
		Return([]models.Document{{DocumentID: 11}}, nil)
	s.backend.EXPECT().ListClientDocuments(gomock.Any(), token, int64(2)).
		Return(nil, nil)
	s.backend.EXPECT().ListClientDocuments(gomock.Any(), token, int64(3)).
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "backend unavailable"))

	wl, err := s.service.LoadWorklist(ctx, token)
	s.Require().NoError(err)

	all := wl.Filter(FilterAll)
	s.Require().Len(all, 3)
	s.Equal(int64(1), all[0].Client.ID)
	s.Len(all[0].Documents, 1)
	s.Empty(all[1].Documents)
	s.NotNil(all[2].Documents)
	s.Empty(all[2].Documents)
	s.Len(wl.Pending(), 2)
}

func (s *ServiceSuite) TestLoadWorklistPropagatesListFailure() {
	ctx := s.T().Context()
	s.backend.EXPECT().ListBankClients(ctx, token).
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "session expired"))

	_, err := s.service.LoadWorklist(ctx, token)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestSubmitShortNotesNeverReachesBackend() {
	wl := NewWorklist([]Entry{entry(7, verification.StatusPending)})

	_, err := s.service.Submit(s.T().Context(), token, wl, 7, verification.Decision{
		Status: verification.StatusVerified,
		Notes:  "  ok  ",
	})

	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Submissions.WithLabelValues("invalid")))
}

func (s *ServiceSuite) TestSubmitIllegalTransitionNeverReachesBackend() {
	wl := NewWorklist([]Entry{entry(7, verification.StatusVerified)})

	_, err := s.service.Submit(s.T().Context(), token, wl, 7, verification.Decision{
		Status: verification.StatusRejected,
		Notes:  "Registration expired",
	})

	s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	s.Equal(verification.StatusVerified, mustLookup(s.T(), wl, 7).Client.VerificationStatus)
}

func (s *ServiceSuite) TestSubmitUnknownClient() {
	wl := NewWorklist(nil)

	_, err := s.service.Submit(s.T().Context(), token, wl, 7, verification.Decision{
		Status: verification.StatusVerified,
		Notes:  "All documents checked",
	})

	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSubmitAppliesDecision() {
	ctx := session.WithSnapshot(s.T().Context(), &session.Snapshot{
		SessionID: "sid",
		User:      models.User{UserID: 3, Role: session.RoleBankUser},
	})
	wl := NewWorklist([]Entry{entry(7, verification.StatusPending)})
	updated := &models.Client{ID: 7, VerificationStatus: verification.StatusVerified}

	gomock.InOrder(
		s.backend.EXPECT().VerifyClient(ctx, token, int64(7), models.VerifyRequest{
			VerificationStatus: verification.StatusVerified,
			Notes:              "All documents checked",
		}).Return(updated, nil),
		s.invalidator.EXPECT().Invalidate(ctx, int64(7)).Return(nil),
		s.mockAudit.EXPECT().Emit(ctx, audit.Event{
			ActorID:    "3",
			Action:     audit.ActionVerificationDecided,
			EntityType: "client",
			EntityID:   "7",
			Decision:   "Pending->Verified",
			Reason:     "All documents checked",
		}).Return(nil),
	)

	got, err := s.service.Submit(ctx, token, wl, 7, verification.Decision{
		Status: verification.StatusVerified,
		Notes:  "  All documents checked ",
	})
	s.Require().NoError(err)
	s.Equal(updated, got)
	s.Empty(wl.Pending())
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Transitions.WithLabelValues("Pending", "Verified")))
}

func (s *ServiceSuite) TestSubmitBackendFailureLeavesWorklist() {
	ctx := s.T().Context()
	wl := NewWorklist([]Entry{entry(7, verification.StatusPending)})
	s.backend.EXPECT().VerifyClient(ctx, token, int64(7), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "backend unavailable"))

	_, err := s.service.Submit(ctx, token, wl, 7, verification.Decision{
		Status: verification.StatusRejected,
		Notes:  "Registration expired",
	})

	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Equal(verification.StatusPending, mustLookup(s.T(), wl, 7).Client.VerificationStatus)
}

func (s *ServiceSuite) TestSubmitWithoutWorklistReadsBackend() {
	ctx := s.T().Context()
	s.backend.EXPECT().GetBankClient(ctx, token, int64(7)).
		Return(&models.Client{ID: 7, VerificationStatus: verification.StatusInReview}, nil)
	s.backend.EXPECT().VerifyClient(ctx, token, int64(7), gomock.Any()).
		Return(&models.Client{ID: 7, VerificationStatus: verification.StatusRejected}, nil)
	s.invalidator.EXPECT().Invalidate(ctx, int64(7)).Return(errors.New("cache down"))
	s.mockAudit.EXPECT().Emit(ctx, gomock.Any()).Return(nil)

	got, err := s.service.Submit(ctx, token, nil, 7, verification.Decision{
		Status: verification.StatusRejected,
		Notes:  "Registration expired",
	})
	s.Require().NoError(err)
	s.Equal(verification.StatusRejected, got.VerificationStatus)
}

func (s *ServiceSuite) TestChangeStatusSuspendsVerifiedClient() {
	ctx := s.T().Context()
	s.backend.EXPECT().GetBankClient(ctx, token, int64(7)).
		Return(&models.Client{ID: 7, VerificationStatus: verification.StatusVerified}, nil)
	s.backend.EXPECT().VerifyClient(ctx, token, int64(7), models.VerifyRequest{
		VerificationStatus: verification.StatusSuspended,
		Notes:              "Compliance hold pending review",
	}).Return(&models.Client{ID: 7, VerificationStatus: verification.StatusSuspended}, nil)
	s.invalidator.EXPECT().Invalidate(ctx, int64(7)).Return(nil)
	s.mockAudit.EXPECT().Emit(ctx, gomock.Any()).Return(nil)

	got, err := s.service.ChangeStatus(ctx, token, 7, verification.StatusSuspended, "Compliance hold pending review")
	s.Require().NoError(err)
	s.Equal(verification.StatusSuspended, got.VerificationStatus)
}

func (s *ServiceSuite) TestChangeStatusRejectsBadInput() {
	ctx := s.T().Context()

	_, err := s.service.ChangeStatus(ctx, token, 7, "Archived", "Compliance hold pending review")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.ChangeStatus(ctx, token, 7, verification.StatusSuspended, "hold")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	s.backend.EXPECT().GetBankClient(ctx, token, int64(7)).
		Return(&models.Client{ID: 7, VerificationStatus: verification.StatusPending}, nil)
	_, err = s.service.ChangeStatus(ctx, token, 7, verification.StatusSuspended, "Compliance hold pending review")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
}

func (s *ServiceSuite) TestTransitionsHint() {
	ctx := s.T().Context()
	s.backend.EXPECT().GetBankClient(ctx, token, int64(7)).
		Return(&models.Client{ID: 7, VerificationStatus: verification.StatusVerified}, nil)

	hint, err := s.service.Transitions(ctx, token, 7)
	s.Require().NoError(err)
	s.Equal(&TransitionHint{
		ClientID: 7,
		Current:  verification.StatusVerified,
		Allowed:  []verification.Status{verification.StatusSuspended, verification.StatusInReview},
	}, hint)
}

func mustLookup(t *testing.T, wl *Worklist, id int64) Entry {
	t.Helper()
	e, ok := wl.Lookup(id)
	require.True(t, ok)
	return e
}

// fakeBank is a tiny in-process backend shared by the reviewer and the client
// workspace.
type fakeBank struct {
	mu      sync.Mutex
	clients map[int64]models.Client
}

func (b *fakeBank) ListBankClients(context.Context, string) ([]models.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Client, 0, len(b.clients))
	for _, c := range b.clients {
		out = append(out, c)
	}
	return out, nil
}

func (b *fakeBank) ListClientsByStatus(_ context.Context, _ string, status verification.Status) ([]models.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.Client
	for _, c := range b.clients {
		if c.VerificationStatus == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (b *fakeBank) GetBankClient(_ context.Context, _ string, id int64) (*models.Client, error) {
	return b.GetClient(context.Background(), "", id)
}

func (b *fakeBank) GetClient(_ context.Context, _ string, id int64) (*models.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.clients[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
	}
	return &c, nil
}

func (b *fakeBank) ListClientDocuments(context.Context, string, int64) ([]models.Document, error) {
	return []models.Document{{DocumentID: 1, FileName: "registration.pdf"}}, nil
}

func (b *fakeBank) VerifyClient(_ context.Context, _ string, id int64, req models.VerifyRequest) (*models.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.clients[id]
	c.VerificationStatus = req.VerificationStatus
	b.clients[id] = c
	return &c, nil
}

func TestReviewerApprovalOpensClientWorkspace(t *testing.T) {
	ctx := t.Context()
	bank := &fakeBank{clients: map[int64]models.Client{
		7: {ID: 7, Name: "Acme Ltd", VerificationStatus: verification.StatusPending},
	}}

	accessor, err := clientstatus.New(bank, clientstatus.NewInMemoryCache(), clientstatus.WithTTL(time.Minute))
	require.NoError(t, err)
	guard, err := access.NewGuard(accessor)
	require.NoError(t, err)
	svc, err := New(bank, accessor)
	require.NoError(t, err)

	holder := session.NewHolder(session.NewInMemoryStore())
	clientID := int64(7)
	require.NoError(t, holder.Replace(ctx, "client-sid", "client-token",
		models.User{UserID: 20, Role: session.RoleClientUser, ClientID: &clientID},
		time.Now().Add(time.Hour)))
	snap, err := holder.Load(ctx, "client-sid")
	require.NoError(t, err)

	// The pending status is now cached for a minute.
	d := guard.EvaluateRoute(ctx, snap, "/client-user/employees")
	require.Equal(t, access.Decision{Redirect: access.RedirectDocuments, Reason: access.ReasonNotVerified}, d)

	wl, err := svc.LoadWorklist(ctx, token)
	require.NoError(t, err)
	require.Len(t, wl.Pending(), 1)

	_, err = svc.Submit(ctx, token, wl, 7, verification.Decision{
		Status: verification.StatusVerified,
		Notes:  "All documents checked",
	})
	require.NoError(t, err)
	require.Empty(t, wl.Pending())

	d = guard.EvaluateRoute(ctx, snap, "/client-user/employees")
	require.Equal(t, access.Decision{Allowed: true}, d)

	require.NoError(t, holder.Clear(ctx, "client-sid"))
	_, err = holder.Load(ctx, "client-sid")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	d = guard.EvaluateRoute(ctx, nil, "/client-user/employees")
	require.Equal(t, access.RedirectLogin, d.Redirect)
}
