package task_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetmon/fleetmon/internal/record"
	"github.com/fleetmon/fleetmon/internal/task"
)

type recordingReporter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingReporter) TaskStarted(label string) { r.add("start:" + label) }
func (r *recordingReporter) TaskSucceeded(label string, _ time.Duration) {
	r.add("ok:" + label)
}
func (r *recordingReporter) TaskFailed(label string, _ time.Duration) {
	r.add("fail:" + label)
}
func (r *recordingReporter) NodeError(host string, err error) {
	r.add(fmt.Sprintf("error:%s:%v", host, err))
}

func (r *recordingReporter) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingReporter) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestTimedSuccess(t *testing.T) {
	rep := &recordingReporter{}
	want := record.New("pi-worker-1", "run-1")

	rec, err := task.Timed("pi-worker-1", rep, func() (*record.Record, error) {
		return want, nil
	})

	require.NoError(t, err)
	assert.Same(t, want, rec)
	assert.Equal(t, []string{"start:pi-worker-1", "ok:pi-worker-1"}, rep.Events())
}

func TestTimedFailure(t *testing.T) {
	rep := &recordingReporter{}
	boom := errors.New("connection refused")

	rec, err := task.Timed("pi-worker-2", rep, func() (*record.Record, error) {
		partial := record.New("pi-worker-2", "run-1")
		partial.Status = record.Failure(boom.Error())
		return partial, boom
	})

	// the wrapper adds observability but never swallows the error
	assert.Same(t, boom, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Status.Failed())
	assert.Equal(t, []string{"start:pi-worker-2", "fail:pi-worker-2"}, rep.Events())
}

func TestConsoleMarkers(t *testing.T) {
	var buf bytes.Buffer
	console := &task.Console{Out: &buf}

	console.TaskStarted("pi-master")
	console.TaskSucceeded("pi-master", 1234*time.Millisecond)
	console.TaskFailed("pi-worker-1", 50*time.Millisecond)
	console.NodeError("pi-worker-1", errors.New("dial tcp: i/o timeout"))

	out := buf.String()
	assert.Contains(t, out, "[pi-master] Running...")
	assert.Contains(t, out, "✅ 1.23s")
	assert.Contains(t, out, "❌ 0.05s")
	assert.Contains(t, out, "Error processing pi-worker-1: dial tcp: i/o timeout")
}
