package navigation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/backend/models"
	"backoffice/internal/session"
	"backoffice/internal/verification"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/testutil"
)

func walk(items []MenuItem, fn func(parent string, item MenuItem)) {
	for _, item := range items {
		fn("", item)
		for _, child := range item.Children {
			fn(item.Name, child)
		}
	}
}

func TestBuild_Gating(t *testing.T) {
	testutil.Given(t, "a verified client", func(t *testing.T) {
		walk(Build(verification.StatusVerified, ""), func(_ string, item MenuItem) {
			assert.True(t, item.Enabled, "%s should be enabled", item.Name)
		})
	})

	for _, status := range []verification.Status{
		verification.StatusPending,
		verification.StatusInReview,
		verification.StatusRejected,
		verification.StatusSuspended,
		"",
	} {
		testutil.Given(t, "a client in status "+string(status), func(t *testing.T) {
			testutil.Then(t, "only Documents entries are enabled", func(t *testing.T) {
				walk(Build(status, ""), func(parent string, item MenuItem) {
					isDocs := item.Name == "Documents" || parent == "Documents"
					assert.Equal(t, isDocs, item.Enabled, "%s/%s", parent, item.Name)
				})
			})
		})
	}
}

func TestBuild_Shape(t *testing.T) {
	items := Build(verification.StatusVerified, "")
	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{
		"Dashboard", "Employee Mgmt", "Beneficiaries", "Payments",
		"Salary Disbursement", "Documents", "Reports",
	}, names)
	require.Len(t, items[1].Children, 3)
	assert.Equal(t, "Bulk Import", items[1].Children[2].Name)
	require.Len(t, items[4].Children, 3)
	assert.Equal(t, "/client-user/salary/batch", items[4].Children[2].Route)
}

func TestBuild_ReturnsFreshCopies(t *testing.T) {
	first := Build(verification.StatusVerified, "/client-user/employees")
	first[1].Children[0].Name = "changed"
	second := Build(verification.StatusVerified, "")
	assert.Equal(t, "All Employees", second[1].Children[0].Name)
	assert.False(t, second[1].Active)
}

func TestBuild_ActiveRoute(t *testing.T) {
	tests := []struct {
		route  string
		crumbs []string
	}{
		{"/client-user/dashboard", []string{"Dashboard"}},
		{"/client-user/employees", []string{"Employee Mgmt", "All Employees"}},
		{"/client-user/employees/create", []string{"Employee Mgmt", "Add Employee"}},
		{"/client-user/employees/17/edit", []string{"Employee Mgmt", "All Employees"}},
		{"/client-user/salary/batch", []string{"Salary Disbursement", "Batch Salary"}},
		{"/client-user/documents/upload", []string{"Documents", "Upload Document"}},
		{"/client-user/reports", []string{"Reports"}},
		{"/client-user/unknown", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			items := Build(verification.StatusPending, tt.route)
			assert.Equal(t, tt.crumbs, Breadcrumbs(items))

			activeChildren := 0
			walk(items, func(parent string, item MenuItem) {
				if parent != "" && item.Active {
					activeChildren++
				}
			})
			assert.LessOrEqual(t, activeChildren, 1)
		})
	}
}

func TestBuild_ExpandsParentOfActiveChild(t *testing.T) {
	items := Build(verification.StatusVerified, "/client-user/payments/create")
	payments := items[3]
	assert.True(t, payments.Active)
	assert.True(t, payments.Expanded)
	assert.False(t, payments.Children[0].Active)
	assert.True(t, payments.Children[1].Active)
	assert.False(t, items[1].Expanded)
}

type stubSource struct {
	status verification.Status
	err    error
	calls  int
}

func (s *stubSource) Status(context.Context, string, int64) (verification.Status, error) {
	s.calls++
	return s.status, s.err
}

func TestBuilder_ForSession(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clientID := int64(42)
	snap := &session.Snapshot{Token: "tok", User: models.User{Role: session.RoleClientUser, ClientID: &clientID}}

	t.Run("verified client", func(t *testing.T) {
		b, err := NewBuilder(&stubSource{status: verification.StatusVerified}, logger)
		require.NoError(t, err)
		menu, err := b.ForSession(context.Background(), snap, "/client-user/beneficiaries/create")
		require.NoError(t, err)
		assert.Equal(t, verification.StatusVerified, menu.Status)
		assert.Equal(t, []string{"Beneficiaries", "Add Beneficiary"}, menu.Breadcrumbs)
		assert.True(t, menu.Items[2].Enabled)
	})

	t.Run("lookup failure gates the menu", func(t *testing.T) {
		b, _ := NewBuilder(&stubSource{err: errors.New("timeout")}, logger)
		menu, err := b.ForSession(context.Background(), snap, "")
		require.NoError(t, err)
		assert.Empty(t, menu.Status)
		assert.False(t, menu.Items[1].Enabled)
		assert.True(t, menu.Items[5].Enabled)
	})

	t.Run("session without client", func(t *testing.T) {
		src := &stubSource{status: verification.StatusVerified}
		b, _ := NewBuilder(src, logger)
		_, err := b.ForSession(context.Background(), &session.Snapshot{User: models.User{Role: session.RoleBankUser}}, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
		assert.Zero(t, src.calls)
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := NewBuilder(nil, logger)
		assert.Error(t, err)
	})
}
