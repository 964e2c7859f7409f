// Package executor implements the per-kind execution strategies: local metric
// collection, raw remote shell, and managed network device configuration.
package executor

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/fleetmon/fleetmon/internal/fleet"
	"github.com/fleetmon/fleetmon/internal/record"
)

// Strategy executes one node and normalizes the outcome into a record.
//
// On failure a strategy returns BOTH a partial fail-status record and a
// non-nil error. The dispatcher decides in one place what to persist and
// whether to continue; strategies never swallow errors.
type Strategy interface {
	Execute(ctx context.Context, node fleet.NodeSpec) (*record.Record, error)
}

// DialFunc opens an SSH client connection. It matches ssh.Dial so tests can
// substitute a failing or recording dialer.
type DialFunc func(network, addr string, config *ssh.ClientConfig) (*ssh.Client, error)

const (
	defaultSSHPort = "22"
	defaultTimeout = 10 * time.Second
)

// completedRemotely reports whether err only signals a non-zero or missing
// remote exit status. The agent waits for command completion but does not
// inspect exit codes; network device shells often report none at all.
func completedRemotely(err error) bool {
	var exitErr *ssh.ExitError
	var missingErr *ssh.ExitMissingError
	return errors.As(err, &exitErr) || errors.As(err, &missingErr)
}
