package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"backoffice/internal/audit"
)

type recordingProducer struct {
	records []*kgo.Record
	err     error
}

func (p *recordingProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.records = append(p.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func TestSink_AppendPublishesKeyedRecord(t *testing.T) {
	producer := &recordingProducer{}
	sink := New(producer, "")

	event := audit.Event{
		Timestamp:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		ActorID:    "9",
		Action:     audit.ActionVerificationDecided,
		EntityType: "client",
		EntityID:   "42",
		Decision:   "Rejected",
		Reason:     "Registration number mismatch",
	}
	require.NoError(t, sink.Append(context.Background(), event))

	require.Len(t, producer.records, 1)
	rec := producer.records[0]
	assert.Equal(t, DefaultTopic, rec.Topic)
	assert.Equal(t, "42", string(rec.Key))
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, audit.ActionVerificationDecided, string(rec.Headers[0].Value))

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(rec.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestSink_AppendSurfacesProduceError(t *testing.T) {
	sink := New(&recordingProducer{err: errors.New("leader not available")}, "audit.custom")
	err := sink.Append(context.Background(), audit.Event{EntityID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}
