package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetmon/fleetmon/internal/record"
)

type mockWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *mockWriter) Close() error { return nil }

func TestKafkaAppendKeysByHost(t *testing.T) {
	writer := &mockWriter{}
	s := &Kafka{writer: writer}

	rec := record.New("pi-worker-1", "run-1")
	rec.Status = record.Success()
	require.NoError(t, s.Append(context.Background(), rec))

	require.Len(t, writer.msgs, 1)
	assert.Equal(t, []byte("pi-worker-1"), writer.msgs[0].Key)

	var decoded record.Record
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &decoded))
	assert.Equal(t, "pi-worker-1", decoded.Host)
	assert.Equal(t, record.Success(), decoded.Status)
}

func TestKafkaAppendPropagatesWriterError(t *testing.T) {
	writer := &mockWriter{err: fmt.Errorf("broker unreachable")}
	s := &Kafka{writer: writer}

	err := s.Append(context.Background(), record.New("pi-worker-1", "run-1"))
	assert.ErrorContains(t, err, "broker unreachable")
}
