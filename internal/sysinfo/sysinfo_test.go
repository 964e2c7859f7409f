package sysinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	restore := swapProbes()
	defer restore()

	hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{OS: "linux", Platform: "raspbian", KernelVersion: "6.6.20", Uptime: 86400}, nil
	}
	cpuCounts = func(context.Context, bool) (int, error) { return 4, nil }
	loadAvg = func(context.Context) (*load.AvgStat, error) { return &load.AvgStat{Load1: 0.42}, nil }
	virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 8 << 30, Used: 2 << 30}, nil
	}

	facts := Collect(context.Background())
	assert.Equal(t, "linux", facts.OS)
	assert.Equal(t, "raspbian", facts.Platform)
	assert.Equal(t, uint64(86400), facts.UptimeSec)
	assert.Equal(t, 4, facts.CPUCount)
	assert.Equal(t, 0.42, facts.Load1)
	assert.Equal(t, uint64(8192), facts.MemTotalMB)
	assert.Equal(t, uint64(2048), facts.MemUsedMB)
}

func TestCollectDegradesPerProbe(t *testing.T) {
	restore := swapProbes()
	defer restore()

	probeErr := errors.New("probe unavailable")
	hostInfo = func(context.Context) (*host.InfoStat, error) { return nil, probeErr }
	cpuCounts = func(context.Context, bool) (int, error) { return 4, nil }
	loadAvg = func(context.Context) (*load.AvgStat, error) { return nil, probeErr }
	virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, probeErr }

	facts := Collect(context.Background())
	assert.Empty(t, facts.OS)
	assert.Zero(t, facts.UptimeSec)
	assert.Equal(t, 4, facts.CPUCount)
	assert.Zero(t, facts.Load1)
	assert.Zero(t, facts.MemTotalMB)
}

func swapProbes() (restore func()) {
	origHost, origCPU, origLoad, origMem := hostInfo, cpuCounts, loadAvg, virtualMemory
	return func() {
		hostInfo, cpuCounts, loadAvg, virtualMemory = origHost, origCPU, origLoad, origMem
	}
}
