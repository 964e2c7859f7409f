package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNode(t *testing.T) {
	tests := []struct {
		name        string
		node        NodeSpec
		expectedErr string
	}{
		{
			name: "local node needs only host and kind",
			node: NodeSpec{HostName: "pi-master", Kind: KindLocal},
		},
		{
			name: "valid ssh node",
			node: NodeSpec{
				HostName: "pi-worker-1",
				UserName: "pi",
				Password: "raspberry",
				Kind:     KindSSH,
				Commands: []string{"uptime"},
			},
		},
		{
			name: "valid managed node",
			node: NodeSpec{
				HostName:       "sw-core-1",
				UserName:       "admin",
				Password:       "admin",
				Kind:           KindManaged,
				Platform:       "cisco_ios",
				ConfigCommands: []string{"hostname sw-core-1"},
			},
		},
		{
			name:        "missing host name",
			node:        NodeSpec{Kind: KindLocal},
			expectedErr: "HostName is required",
		},
		{
			name: "ssh node without password",
			node: NodeSpec{
				HostName: "pi-worker-2",
				UserName: "pi",
				Kind:     KindSSH,
				Commands: []string{"uptime"},
			},
			expectedErr: "Password is required",
		},
		{
			name: "ssh node without commands",
			node: NodeSpec{
				HostName: "pi-worker-3",
				UserName: "pi",
				Password: "raspberry",
				Kind:     KindSSH,
			},
			expectedErr: "Commands is required",
		},
		{
			name: "managed node without platform",
			node: NodeSpec{
				HostName:       "sw-core-2",
				UserName:       "admin",
				Password:       "admin",
				Kind:           KindManaged,
				ConfigCommands: []string{"no ip http server"},
			},
			expectedErr: "Platform is required",
		},
		{
			name:        "unknown device kind",
			node:        NodeSpec{HostName: "mystery", UserName: "u", Password: "p", Kind: "serial"},
			expectedErr: "unknown device kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNode(tt.node)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.expectedErr)
			}
		})
	}
}

func TestDeviceKindKnown(t *testing.T) {
	assert.True(t, KindLocal.Known())
	assert.True(t, KindSSH.Known())
	assert.True(t, KindManaged.Known())
	assert.False(t, DeviceKind("cisco_ios").Known())
	assert.False(t, DeviceKind("").Known())
}
