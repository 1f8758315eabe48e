package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash-service/service/dataset"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewDatasetEvent(t *testing.T) {
	prev := &dataset.Snapshot{Version: "v1"}
	next := &dataset.Snapshot{Version: "v2", SourceType: "csv", Source: "hr.csv", Count: 7}

	ev := NewDatasetEvent(dataset.ReloadResult{Trigger: "watch", Previous: prev, Snapshot: next, Duration: 1500 * time.Millisecond})
	assert.Equal(t, EventDatasetReloaded, ev.Type)
	assert.Equal(t, "v2", ev.Version)
	assert.Equal(t, "v1", ev.PreviousVersion)
	assert.Equal(t, 7, ev.RecordCount)
	assert.Equal(t, int64(1500), ev.DurationMs)

	failed := NewDatasetEvent(dataset.ReloadResult{Trigger: "cron", Previous: prev, Err: errors.New("boom")})
	assert.Equal(t, EventDatasetLoadFailed, failed.Type)
	assert.Equal(t, "boom", failed.Error)
	assert.Empty(t, failed.Version)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisherWithWriter(writer)

	ev := DatasetEvent{Type: EventDatasetReloaded, Version: "v2", Trigger: "manual", RecordCount: 3, Timestamp: time.Now()}
	require.NoError(t, publisher.Publish(context.Background(), ev))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, []byte("v2"), msg.Key)
	assert.Equal(t, "event_type", msg.Headers[0].Key)

	var decoded DatasetEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, 3, decoded.RecordCount)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestReloadHook_SwallowsErrors(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	hook := ReloadHook(NewKafkaPublisherWithWriter(writer))

	assert.NotPanics(t, func() {
		hook(context.Background(), dataset.ReloadResult{Trigger: "manual", Snapshot: &dataset.Snapshot{Version: "v1"}})
	})
	assert.Empty(t, writer.messages)

	assert.NoError(t, NopPublisher{}.Publish(context.Background(), DatasetEvent{}))
}
