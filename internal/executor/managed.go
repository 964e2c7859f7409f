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

// ManagedDevice pushes a node's config commands to a network device as one
// configuration transaction, then persists the running configuration.
type ManagedDevice struct {
	RunID   string
	Dial    DialFunc
	HostKey ssh.HostKeyCallback
	Timeout time.Duration
	Port    string
}

func NewManagedDevice(runID string, hostKey ssh.HostKeyCallback) *ManagedDevice {
	if hostKey == nil {
		hostKey = ssh.InsecureIgnoreHostKey()
	}
	return &ManagedDevice{
		RunID:   runID,
		Dial:    ssh.Dial,
		HostKey: hostKey,
		Timeout: defaultTimeout,
		Port:    defaultSSHPort,
	}
}

func (m *ManagedDevice) Execute(ctx context.Context, node fleet.NodeSpec) (*record.Record, error) {
	rec := record.New(node.HostName, m.RunID)

	dialect, err := DialectFor(node.Platform)
	if err != nil {
		rec.Status = record.Failure(err.Error())
		return rec, err
	}

	config := &ssh.ClientConfig{
		User:            node.UserName,
		Auth:            []ssh.AuthMethod{ssh.Password(node.Password)},
		HostKeyCallback: m.hostKey(),
		Timeout:         m.timeout(),
	}

	client, err := m.dial()("tcp", net.JoinHostPort(node.HostName, m.port()), config)
	if err != nil {
		rec.Status = record.Failure(err.Error())
		return rec, fmt.Errorf("connect to %s: %w", node.HostName, err)
	}
	defer client.Close()

	if err := ctx.Err(); err != nil {
		rec.Status = record.Failure(err.Error())
		return rec, err
	}

	if err := pushConfig(client, dialect, node.ConfigCommands); err != nil {
		rec.Status = record.Failure(err.Error())
		return rec, fmt.Errorf("configure %s: %w", node.HostName, err)
	}

	rec.Status = record.Success()
	return rec, nil
}

// pushConfig drives an interactive shell through the device's configuration
// dialect: enter config mode, send the commands, leave config mode, save.
func pushConfig(client *ssh.Client, dialect Dialect, commands []string) error {
	sess, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	defer sess.Close()

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := sess.RequestPty("vt100", 40, 80, modes); err != nil {
		return fmt.Errorf("request pty: %w", err)
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}

	if err := sess.Shell(); err != nil {
		return fmt.Errorf("start shell: %w", err)
	}

	script := make([]string, 0, len(commands)+4)
	script = append(script, dialect.ConfigEnter)
	script = append(script, commands...)
	script = append(script, dialect.ConfigExit, dialect.Save, "exit")

	for _, line := range script {
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(stdin, line); err != nil {
			return fmt.Errorf("send %q: %w", line, err)
		}
	}
	if err := stdin.Close(); err != nil {
		return fmt.Errorf("close stdin: %w", err)
	}

	if err := sess.Wait(); err != nil && !completedRemotely(err) {
		return fmt.Errorf("wait for shell: %w", err)
	}
	return nil
}

func (m *ManagedDevice) dial() DialFunc {
	if m.Dial != nil {
		return m.Dial
	}
	return ssh.Dial
}

func (m *ManagedDevice) hostKey() ssh.HostKeyCallback {
	if m.HostKey != nil {
		return m.HostKey
	}
	return ssh.InsecureIgnoreHostKey()
}

func (m *ManagedDevice) timeout() time.Duration {
	if m.Timeout > 0 {
		return m.Timeout
	}
	return defaultTimeout
}

func (m *ManagedDevice) port() string {
	if m.Port != "" {
		return m.Port
	}
	return defaultSSHPort
}
