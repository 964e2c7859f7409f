// Package sink persists execution records. The append-only JSONL file is the
// primary system of record; a Kafka sink can mirror records to a topic.
package sink

import (
	"context"
	"errors"

	"github.com/fleetmon/fleetmon/internal/record"
)

// Sink appends one record at a time. Records are never read back or mutated
// by the agent.
type Sink interface {
	Append(ctx context.Context, rec *record.Record) error
	Close() error
}

// Multi fans an append out to several sinks. The first failure wins; later
// sinks are still attempted so one bad sink does not starve the others.
type Multi []Sink

func (m Multi) Append(ctx context.Context, rec *record.Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
