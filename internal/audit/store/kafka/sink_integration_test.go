//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"backoffice/internal/audit"
	"backoffice/pkg/testutil/containers"
)

func TestSink_PublishesToBroker(t *testing.T) {
	broker := containers.NewKafkaContainer(t)

	client, err := NewClient(broker.Brokers)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	sink := New(client, DefaultTopic)
	event := audit.Event{
		Timestamp:  time.Now().UTC().Truncate(time.Second),
		ActorID:    "11",
		Action:     audit.ActionPaymentApproved,
		EntityType: "payment",
		EntityID:   "77",
	}
	require.NoError(t, sink.Append(t.Context(), event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(DefaultTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	ctx, cancel := context.WithTimeout(t.Context(), 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())

	var got []audit.Event
	fetches.EachRecord(func(r *kgo.Record) {
		var e audit.Event
		require.NoError(t, json.Unmarshal(r.Value, &e))
		assert.Equal(t, "77", string(r.Key))
		got = append(got, e)
	})
	require.Len(t, got, 1)
	assert.Equal(t, event, got[0])
}
