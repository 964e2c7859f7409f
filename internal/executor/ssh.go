package executor

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/fleetmon/fleetmon/internal/fleet"
	"github.com/fleetmon/fleetmon/internal/record"
)

// RawShell runs a node's command list over an SSH session.
//
// Commands are waited for but their exit codes are not inspected; only a
// transport or session failure fails the node. No per-command output is
// captured.
type RawShell struct {
	RunID   string
	Dial    DialFunc            // defaults to ssh.Dial
	HostKey ssh.HostKeyCallback // defaults to trust-any; inject a pinned policy in production
	Timeout time.Duration
	Port    string
}

func NewRawShell(runID string, hostKey ssh.HostKeyCallback) *RawShell {
	if hostKey == nil {
		hostKey = ssh.InsecureIgnoreHostKey()
	}
	return &RawShell{
		RunID:   runID,
		Dial:    ssh.Dial,
		HostKey: hostKey,
		Timeout: defaultTimeout,
		Port:    defaultSSHPort,
	}
}

func (s *RawShell) Execute(ctx context.Context, node fleet.NodeSpec) (*record.Record, error) {
	rec := record.New(node.HostName, s.RunID)

	client, err := s.connect(node)
	if err != nil {
		rec.Status = record.Failure(err.Error())
		return rec, fmt.Errorf("connect to %s: %w", node.HostName, err)
	}
	defer client.Close()

	for _, cmd := range node.Commands {
		if err := ctx.Err(); err != nil {
			rec.Status = record.Failure(err.Error())
			return rec, err
		}
		if err := runCommand(client, cmd); err != nil {
			rec.Status = record.Failure(err.Error())
			return rec, fmt.Errorf("run %q on %s: %w", cmd, node.HostName, err)
		}
	}

	rec.Status = record.Success()
	return rec, nil
}

func (s *RawShell) connect(node fleet.NodeSpec) (*ssh.Client, error) {
	config := &ssh.ClientConfig{
		User:            node.UserName,
		Auth:            []ssh.AuthMethod{ssh.Password(node.Password)},
		HostKeyCallback: s.hostKey(),
		Timeout:         s.timeout(),
	}
	return s.dial()("tcp", net.JoinHostPort(node.HostName, s.port()), config)
}

func runCommand(client *ssh.Client, cmd string) error {
	sess, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	defer sess.Close()

	if err := sess.Run(cmd); err != nil && !completedRemotely(err) {
		return err
	}
	return nil
}

func (s *RawShell) dial() DialFunc {
	if s.Dial != nil {
		return s.Dial
	}
	return ssh.Dial
}

func (s *RawShell) hostKey() ssh.HostKeyCallback {
	if s.HostKey != nil {
		return s.HostKey
	}
	return ssh.InsecureIgnoreHostKey()
}

func (s *RawShell) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return defaultTimeout
}

func (s *RawShell) port() string {
	if s.Port != "" {
		return s.Port
	}
	return defaultSSHPort
}
