package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, s.Append(ctx, audit.Event{Action: audit.ActionPaymentApproved, EntityType: "payment", EntityID: "5"}))
	require.NoError(t, s.Append(ctx, audit.Event{Action: audit.ActionPaymentRejected, EntityType: "payment", EntityID: "6"}))
	require.NoError(t, s.Append(ctx, audit.Event{Action: audit.ActionAccessDenied, EntityType: "client", EntityID: "5"}))

	byEntity, err := s.ListByEntity(ctx, "payment", "5")
	require.NoError(t, err)
	require.Len(t, byEntity, 1)
	assert.Equal(t, audit.ActionPaymentApproved, byEntity[0].Action)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	all[0].Action = "mutated"
	again, _ := s.ListAll(ctx)
	assert.Equal(t, audit.ActionPaymentApproved, again[0].Action)

	s.Clear()
	all, _ = s.ListAll(ctx)
	assert.Empty(t, all)
}
