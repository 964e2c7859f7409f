package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fleetmon/fleetmon/internal/record"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka mirrors execution records to a topic, keyed by host so per-node
// history stays in partition order.
type Kafka struct {
	writer messageWriter
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			Async:                  false,
			AllowAutoTopicCreation: true,
		},
	}
}

func (s *Kafka) Append(ctx context.Context, rec *record.Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record for %s: %w", rec.Host, err)
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.Host),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish record for %s: %w", rec.Host, err)
	}
	return nil
}

func (s *Kafka) Close() error {
	return s.writer.Close()
}
