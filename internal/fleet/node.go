// Package fleet holds the declarative description of managed endpoints and
// the registry that loads them.
package fleet

import "fmt"

// DeviceKind classifies a node and selects its execution strategy.
type DeviceKind string

const (
	// KindLocal runs the metric catalog against the local machine.
	KindLocal DeviceKind = "local"
	// KindSSH runs the node's command list over a raw SSH session.
	KindSSH DeviceKind = "ssh"
	// KindManaged pushes a configuration transaction to a network device.
	KindManaged DeviceKind = "managed"
)

// Known reports whether k is one of the supported device kinds.
// Unknown kinds are a configuration error, rejected before dispatch.
func (k DeviceKind) Known() bool {
	switch k {
	case KindLocal, KindSSH, KindManaged:
		return true
	}
	return false
}

// NodeSpec describes one managed endpoint. The YAML keys mirror the node
// file format exactly (uppercase, case-sensitive).
type NodeSpec struct {
	HostName       string     `yaml:"HOST_NAME" json:"host_name" validate:"required"`
	UserName       string     `yaml:"USER_NAME" json:"user_name,omitempty" validate:"required_unless=Kind local"`
	Password       string     `yaml:"PASSWORD" json:"-" validate:"required_unless=Kind local"`
	Kind           DeviceKind `yaml:"DEVICE_TYPE" json:"device_type" validate:"required,devicekind"`
	Commands       []string   `yaml:"COMMANDS" json:"commands,omitempty" validate:"required_if=Kind ssh"`
	Platform       string     `yaml:"MANAGED_PLATFORM" json:"managed_platform,omitempty" validate:"required_if=Kind managed"`
	ConfigCommands []string   `yaml:"CONFIG_COMMANDS" json:"config_commands,omitempty" validate:"required_if=Kind managed"`
}

func (n NodeSpec) String() string {
	return fmt.Sprintf("%s (%s)", n.HostName, n.Kind)
}
