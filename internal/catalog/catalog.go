// Package catalog is the static table of local metric commands. It is loaded
// once at process start and read-only thereafter; only the local execution
// strategy consults it.
package catalog

// Entry maps one metric key to the shell command that produces it. Every
// command emits a single line of text once trimmed.
type Entry struct {
	Key     string
	Command string
}

// Entries lists the collected metrics in execution order.
var Entries = []Entry{
	{"hostname", "hostname"},
	{"uptime", "uptime -p"},
	{"cpu_usage", `top -bn1 | grep '%Cpu' | awk '{print $2 + $4}'`},
	{"memory", `free -m | awk '/Mem:/ {print $2, $3}'`},
	{"disk", `df -h / | awk 'NR==2 {print $2, $3, $5}'`},
	{"ip_address", `hostname -I | awk '{print $1}'`},
}

// Lookup returns the command for a metric key.
func Lookup(key string) (string, bool) {
	for _, e := range Entries {
		if e.Key == key {
			return e.Command, true
		}
	}
	return "", false
}

// Keys returns the metric keys in execution order.
func Keys() []string {
	keys := make([]string, len(Entries))
	for i, e := range Entries {
		keys[i] = e.Key
	}
	return keys
}
