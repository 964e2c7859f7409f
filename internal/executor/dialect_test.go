package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		platform     string
		expectedSave string
	}{
		{"cisco_ios", "write memory"},
		{"cisco_xe", "write memory"},
		{"arista_eos", "copy running-config startup-config"},
		{"juniper_junos", ""},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			d, err := DialectFor(tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.platform, d.Platform)
			assert.NotEmpty(t, d.ConfigEnter)
			assert.Equal(t, tt.expectedSave, d.Save)
		})
	}
}

func TestDialectForUnknownPlatform(t *testing.T) {
	_, err := DialectFor("vyos")
	assert.ErrorContains(t, err, `unsupported managed platform "vyos"`)
}

func TestPlatformsCoversDialectTable(t *testing.T) {
	assert.Len(t, Platforms(), len(dialects))
	for _, name := range Platforms() {
		_, err := DialectFor(name)
		assert.NoError(t, err)
	}
}
