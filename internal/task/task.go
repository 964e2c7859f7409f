// Package task wraps strategy invocations with scoped timing and progress
// reporting.
package task

import (
	"time"

	"github.com/fleetmon/fleetmon/internal/record"
)

// Reporter observes task lifecycle events. The console implementation prints
// colored progress markers; tests substitute a recording reporter.
type Reporter interface {
	TaskStarted(label string)
	TaskSucceeded(label string, elapsed time.Duration)
	TaskFailed(label string, elapsed time.Duration)
	NodeError(host string, err error)
}

// Timed runs fn under a start/finish pair of reporter events. The finish
// event fires on every exit path and carries the wall-clock elapsed time;
// the error, if any, is returned unchanged.
func Timed(label string, rep Reporter, fn func() (*record.Record, error)) (rec *record.Record, err error) {
	rep.TaskStarted(label)
	start := time.Now()

	defer func() {
		elapsed := time.Since(start)
		if err != nil {
			rep.TaskFailed(label, elapsed)
			return
		}
		rep.TaskSucceeded(label, elapsed)
	}()

	return fn()
}
