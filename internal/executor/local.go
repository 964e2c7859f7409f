package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fleetmon/fleetmon/internal/catalog"
	"github.com/fleetmon/fleetmon/internal/fleet"
	"github.com/fleetmon/fleetmon/internal/record"
	"github.com/fleetmon/fleetmon/internal/sysinfo"
)

// Runner executes one shell command and returns its trimmed stdout.
type Runner func(ctx context.Context, command string) (string, error)

func shellRunner(ctx context.Context, command string) (string, error) {
	out, err := exec.CommandContext(ctx, "/bin/sh", "-c", command).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Local collects the metric catalog from the local machine.
//
// A single failing metric command does not fail the node: the failure reason
// is embedded as that metric's value and the overall status stays success.
type Local struct {
	RunID    string
	Run      Runner                               // defaults to /bin/sh -c
	Facts    func(context.Context) *sysinfo.Facts // defaults to sysinfo.Collect
	Hostname func() (string, error)               // defaults to os.Hostname
}

func NewLocal(runID string) *Local {
	return &Local{
		RunID:    runID,
		Run:      shellRunner,
		Facts:    sysinfo.Collect,
		Hostname: os.Hostname,
	}
}

func (l *Local) Execute(ctx context.Context, _ fleet.NodeSpec) (*record.Record, error) {
	host := "localhost"
	if name, err := l.hostname()(); err == nil && name != "" {
		host = name
	}

	rec := record.New(host, l.RunID)
	for _, entry := range catalog.Entries {
		out, err := l.runner()(ctx, entry.Command)
		if err != nil {
			rec.SetMetric(entry.Key, fmt.Sprintf("Error: %v", err))
			continue
		}
		rec.SetMetric(entry.Key, out)
	}

	if collect := l.Facts; collect != nil {
		rec.Facts = collect(ctx)
	}

	rec.Status = record.Success()
	return rec, nil
}

func (l *Local) runner() Runner {
	if l.Run != nil {
		return l.Run
	}
	return shellRunner
}

func (l *Local) hostname() func() (string, error) {
	if l.Hostname != nil {
		return l.Hostname
	}
	return os.Hostname
}
