package executor

import "fmt"

// Dialect describes the vendor-specific command syntax for pushing
// configuration to a managed network device.
type Dialect struct {
	Platform    string
	ConfigEnter string // enter configuration mode
	ConfigExit  string // leave configuration mode
	Save        string // persist the running configuration
}

var dialects = map[string]Dialect{
	"cisco_ios": {
		Platform:    "cisco_ios",
		ConfigEnter: "configure terminal",
		ConfigExit:  "end",
		Save:        "write memory",
	},
	"cisco_xe": {
		Platform:    "cisco_xe",
		ConfigEnter: "configure terminal",
		ConfigExit:  "end",
		Save:        "write memory",
	},
	"arista_eos": {
		Platform:    "arista_eos",
		ConfigEnter: "configure terminal",
		ConfigExit:  "end",
		Save:        "copy running-config startup-config",
	},
	// junos commits from inside configuration mode; "commit and-quit" saves
	// and leaves in one step, so there is no separate save command.
	"juniper_junos": {
		Platform:    "juniper_junos",
		ConfigEnter: "configure",
		ConfigExit:  "commit and-quit",
		Save:        "",
	},
}

// DialectFor resolves a managed platform name. Unknown platforms are a
// configuration error, reported before any connection is attempted.
func DialectFor(platform string) (Dialect, error) {
	d, ok := dialects[platform]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported managed platform %q", platform)
	}
	return d, nil
}

// Platforms lists the supported managed platform names.
func Platforms() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	return names
}
