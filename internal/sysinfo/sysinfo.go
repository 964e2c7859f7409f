// Package sysinfo gathers structured facts about the local host. Collection
// is best effort: every probe that fails simply leaves its fields unset.
package sysinfo

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Facts is a structured snapshot of the local host, attached to local-metric
// records alongside the raw catalog output.
type Facts struct {
	OS            string  `json:"os,omitempty" bson:"os,omitempty"`
	Platform      string  `json:"platform,omitempty" bson:"platform,omitempty"`
	KernelVersion string  `json:"kernel_version,omitempty" bson:"kernel_version,omitempty"`
	UptimeSec     uint64  `json:"uptime_sec,omitempty" bson:"uptime_sec,omitempty"`
	CPUCount      int     `json:"cpu_count,omitempty" bson:"cpu_count,omitempty"`
	Load1         float64 `json:"load1,omitempty" bson:"load1,omitempty"`
	MemTotalMB    uint64  `json:"mem_total_mb,omitempty" bson:"mem_total_mb,omitempty"`
	MemUsedMB     uint64  `json:"mem_used_mb,omitempty" bson:"mem_used_mb,omitempty"`
}

var (
	hostInfo      = host.InfoWithContext
	cpuCounts     = cpu.CountsWithContext
	loadAvg       = load.AvgWithContext
	virtualMemory = mem.VirtualMemoryWithContext
)

// Collect probes the local host. It never returns an error; unavailable
// probes are omitted from the result.
func Collect(ctx context.Context) *Facts {
	facts := &Facts{}

	if info, err := hostInfo(ctx); err == nil {
		facts.OS = info.OS
		facts.Platform = info.Platform
		facts.KernelVersion = info.KernelVersion
		facts.UptimeSec = info.Uptime
	}

	if count, err := cpuCounts(ctx, true); err == nil {
		facts.CPUCount = count
	}

	if avg, err := loadAvg(ctx); err == nil {
		facts.Load1 = avg.Load1
	}

	if vm, err := virtualMemory(ctx); err == nil {
		facts.MemTotalMB = vm.Total / 1024 / 1024
		facts.MemUsedMB = vm.Used / 1024 / 1024
	}

	return facts
}
