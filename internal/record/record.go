// Package record defines the normalized outcome of dispatching one node.
package record

import (
	"strings"
	"time"

	"github.com/fleetmon/fleetmon/internal/sysinfo"
)

// timestampLayout is RFC 3339 with millisecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Status is the outcome tag of a record: "success" or "fail: <reason>".
type Status string

const failPrefix = "fail: "

func Success() Status { return "success" }

func Failure(reason string) Status { return Status(failPrefix + reason) }

// Failed reports whether the status carries a failure reason.
func (s Status) Failed() bool { return strings.HasPrefix(string(s), failPrefix) }

// Reason returns the failure reason, or "" for a success status.
func (s Status) Reason() string {
	if !s.Failed() {
		return ""
	}
	return strings.TrimPrefix(string(s), failPrefix)
}

// Record is one line of the append-only result log. It is constructed fresh
// per dispatch and never mutated after the strategy returns it.
type Record struct {
	Host      string `json:"host" bson:"host"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
	RunID     string `json:"run_id,omitempty" bson:"run_id,omitempty"`
	Status    Status `json:"status" bson:"status"`

	// Metric fields, populated by the local strategy only.
	Hostname  string `json:"hostname,omitempty" bson:"hostname,omitempty"`
	Uptime    string `json:"uptime,omitempty" bson:"uptime,omitempty"`
	CPUUsage  string `json:"cpu_usage,omitempty" bson:"cpu_usage,omitempty"`
	Memory    string `json:"memory,omitempty" bson:"memory,omitempty"`
	Disk      string `json:"disk,omitempty" bson:"disk,omitempty"`
	IPAddress string `json:"ip_address,omitempty" bson:"ip_address,omitempty"`

	Facts *sysinfo.Facts `json:"facts,omitempty" bson:"facts,omitempty"`
}

// New returns a record stamped with the current UTC time.
func New(host, runID string) *Record {
	return &Record{
		Host:      host,
		Timestamp: time.Now().UTC().Format(timestampLayout),
		RunID:     runID,
	}
}

// SetMetric stores a value under one of the catalog metric keys. Unknown
// keys are ignored; the catalog is the source of truth for the key set.
func (r *Record) SetMetric(key, value string) {
	switch key {
	case "hostname":
		r.Hostname = value
	case "uptime":
		r.Uptime = value
	case "cpu_usage":
		r.CPUUsage = value
	case "memory":
		r.Memory = value
	case "disk":
		r.Disk = value
	case "ip_address":
		r.IPAddress = value
	}
}

// Metric reads back a value by catalog key, mirroring SetMetric.
func (r *Record) Metric(key string) string {
	switch key {
	case "hostname":
		return r.Hostname
	case "uptime":
		return r.Uptime
	case "cpu_usage":
		return r.CPUUsage
	case "memory":
		return r.Memory
	case "disk":
		return r.Disk
	case "ip_address":
		return r.IPAddress
	}
	return ""
}
