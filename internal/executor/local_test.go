package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetmon/fleetmon/internal/catalog"
	"github.com/fleetmon/fleetmon/internal/fleet"
	"github.com/fleetmon/fleetmon/internal/sysinfo"
)

func TestLocalCollectsEveryMetric(t *testing.T) {
	local := &Local{
		RunID: "run-1",
		Run: func(_ context.Context, command string) (string, error) {
			return "out of " + command, nil
		},
		Hostname: func() (string, error) { return "pi-master", nil },
		Facts: func(context.Context) *sysinfo.Facts {
			return &sysinfo.Facts{OS: "linux", CPUCount: 4}
		},
	}

	rec, err := local.Execute(context.Background(), fleet.NodeSpec{Kind: fleet.KindLocal})
	require.NoError(t, err)

	assert.Equal(t, "pi-master", rec.Host)
	assert.False(t, rec.Status.Failed())
	for _, key := range catalog.Keys() {
		cmd, _ := catalog.Lookup(key)
		assert.Equal(t, "out of "+cmd, rec.Metric(key))
	}
	require.NotNil(t, rec.Facts)
	assert.Equal(t, 4, rec.Facts.CPUCount)
}

func TestLocalPartialFailureStaysSuccess(t *testing.T) {
	local := &Local{
		RunID: "run-1",
		Run: func(_ context.Context, command string) (string, error) {
			if command == "uptime -p" {
				return "", errors.New("exit status 127")
			}
			return "ok", nil
		},
		Hostname: func() (string, error) { return "pi-master", nil },
		Facts:    func(context.Context) *sysinfo.Facts { return nil },
	}

	rec, err := local.Execute(context.Background(), fleet.NodeSpec{Kind: fleet.KindLocal})
	require.NoError(t, err)

	// a failing metric command embeds its reason but never fails the node
	assert.False(t, rec.Status.Failed())
	assert.Equal(t, "Error: exit status 127", rec.Uptime)
	assert.Equal(t, "ok", rec.Hostname)
	assert.Equal(t, "ok", rec.IPAddress)
}

func TestLocalFallsBackToLocalhost(t *testing.T) {
	local := &Local{
		RunID:    "run-1",
		Run:      func(context.Context, string) (string, error) { return "ok", nil },
		Hostname: func() (string, error) { return "", fmt.Errorf("hostname unavailable") },
		Facts:    func(context.Context) *sysinfo.Facts { return nil },
	}

	rec, err := local.Execute(context.Background(), fleet.NodeSpec{Kind: fleet.KindLocal})
	require.NoError(t, err)
	assert.Equal(t, "localhost", rec.Host)
}
