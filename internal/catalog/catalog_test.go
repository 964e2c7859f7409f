package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntries(t *testing.T) {
	assert.Len(t, Entries, 6)
	assert.Equal(t,
		[]string{"hostname", "uptime", "cpu_usage", "memory", "disk", "ip_address"},
		Keys())
}

func TestLookup(t *testing.T) {
	cmd, ok := Lookup("uptime")
	assert.True(t, ok)
	assert.Equal(t, "uptime -p", cmd)

	_, ok = Lookup("temperature")
	assert.False(t, ok)
}
