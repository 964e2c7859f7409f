// Package dispatch classifies nodes, runs the matching execution strategy
// and forwards outcomes to the result sink with per-node failure isolation.
package dispatch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fleetmon/fleetmon/internal/executor"
	"github.com/fleetmon/fleetmon/internal/fleet"
	"github.com/fleetmon/fleetmon/internal/lg"
	"github.com/fleetmon/fleetmon/internal/record"
	"github.com/fleetmon/fleetmon/internal/sink"
	"github.com/fleetmon/fleetmon/internal/task"
)

// localLabel is the timer label for the local-machine strategy.
const localLabel = "Localhost"

// SinkPolicy decides what a sink append failure costs.
type SinkPolicy string

const (
	// SinkAbort stops the whole run on the first sink failure.
	SinkAbort SinkPolicy = "abort"
	// SinkNode drops the current node's record and continues the run.
	SinkNode SinkPolicy = "node"
	// SinkIgnore keeps the record in the output and continues as if the
	// append had succeeded.
	SinkIgnore SinkPolicy = "ignore"
)

func ParseSinkPolicy(s string) (SinkPolicy, error) {
	switch SinkPolicy(s) {
	case SinkAbort, SinkNode, SinkIgnore:
		return SinkPolicy(s), nil
	}
	return "", fmt.Errorf("unknown sink policy %q (want abort, node or ignore)", s)
}

// Dispatcher routes each node to its strategy and owns every record from
// creation through hand-off to the sink.
//
// One node's failure never aborts the run: strategy errors are reported at
// the per-node boundary and the loop continues. Strategy failures still
// produce a durable fail-status record in the sink.
type Dispatcher struct {
	Local    executor.Strategy
	Shell    executor.Strategy
	Managed  executor.Strategy
	Sink     sink.Sink
	Reporter task.Reporter
	Log      lg.Logger

	// Workers bounds parallel dispatch; values below 2 keep the original
	// fully sequential behavior.
	Workers int

	// SinkPolicy defaults to SinkNode, matching the behavior where a sink
	// error is caught at the per-node boundary.
	SinkPolicy SinkPolicy
}

// DispatchAll processes nodes in input order and returns the successful
// records, also in input order. The output may be shorter than the input:
// failed nodes contribute a console notice and a fail record in the sink,
// not an entry in the result sequence.
func (d *Dispatcher) DispatchAll(ctx context.Context, nodes []fleet.NodeSpec) []*record.Record {
	if d.Workers > 1 {
		return d.dispatchParallel(ctx, nodes)
	}

	results := make([]*record.Record, 0, len(nodes))
	for _, node := range nodes {
		rec, err := d.dispatchOne(ctx, node)
		if err != nil {
			d.Reporter.NodeError(node.HostName, err)
			if rec != nil {
				if _, fatal := d.persist(ctx, rec); fatal {
					return results
				}
			}
			continue
		}

		kept, fatal := d.persist(ctx, rec)
		if fatal {
			return results
		}
		if kept {
			results = append(results, rec)
		}
	}
	return results
}

// dispatchParallel runs strategies concurrently under a worker limit, then
// persists outcomes in input order so the log and result sequence keep the
// sequential ordering guarantee.
func (d *Dispatcher) dispatchParallel(ctx context.Context, nodes []fleet.NodeSpec) []*record.Record {
	type outcome struct {
		rec *record.Record
		err error
	}
	outcomes := make([]outcome, len(nodes))

	var g errgroup.Group
	g.SetLimit(d.Workers)
	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			rec, err := d.dispatchOne(ctx, node)
			if err != nil {
				d.Reporter.NodeError(node.HostName, err)
			}
			outcomes[i] = outcome{rec: rec, err: err}
			// per-node isolation: a failed node never cancels its siblings
			return nil
		})
	}
	_ = g.Wait()

	results := make([]*record.Record, 0, len(nodes))
	for _, o := range outcomes {
		if o.rec == nil {
			continue
		}
		kept, fatal := d.persist(ctx, o.rec)
		if fatal {
			return results
		}
		if kept && o.err == nil {
			results = append(results, o.rec)
		}
	}
	return results
}

func (d *Dispatcher) dispatchOne(ctx context.Context, node fleet.NodeSpec) (*record.Record, error) {
	strategy, err := d.route(node.Kind)
	if err != nil {
		return nil, err
	}

	label := node.HostName
	if node.Kind == fleet.KindLocal {
		label = localLabel
	}

	return task.Timed(label, d.Reporter, func() (*record.Record, error) {
		return strategy.Execute(ctx, node)
	})
}

// route is an exhaustive match over the closed device kind enum. The
// registry rejects unknown kinds before dispatch; this error is the backstop
// for nodes that bypassed validation.
func (d *Dispatcher) route(kind fleet.DeviceKind) (executor.Strategy, error) {
	switch kind {
	case fleet.KindLocal:
		return d.Local, nil
	case fleet.KindSSH:
		return d.Shell, nil
	case fleet.KindManaged:
		return d.Managed, nil
	default:
		return nil, fmt.Errorf("unsupported device kind %q", kind)
	}
}

// persist hands a record to the sink and applies the sink failure policy.
// kept reports whether the record counts toward the run's output; fatal
// stops the whole run.
func (d *Dispatcher) persist(ctx context.Context, rec *record.Record) (kept, fatal bool) {
	err := d.Sink.Append(ctx, rec)
	if err == nil {
		return true, false
	}

	d.logger().Error("failed to append record to sink",
		lg.String("host", rec.Host), lg.Err(err))

	switch d.SinkPolicy {
	case SinkIgnore:
		return true, false
	case SinkAbort:
		return false, true
	default:
		return false, false
	}
}

func (d *Dispatcher) logger() lg.Logger {
	if d.Log != nil {
		return d.Log
	}
	return lg.Discard
}
