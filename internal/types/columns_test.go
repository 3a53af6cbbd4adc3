package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultColumns_Names(t *testing.T) {
	assert.Equal(t, []string{
		"Hostname", "Vulnerability", "Remediation", "Role", "Environment",
		"Synopsis", "Plugin Text", "VPR", "VPR Score", "First Discovered", "CVE",
	}, DefaultColumns().Names())
}

func TestColumns_Override(t *testing.T) {
	c, err := DefaultColumns().Override(map[string]string{
		"remediation": "Remediation (Solution)",
		"VPR":         "Priority",
		"role":        "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Remediation (Solution)", c.Remediation)
	assert.Equal(t, "Priority", c.Severity)
	assert.Equal(t, "Role", c.Role, "blank override keeps default")

	_, err = DefaultColumns().Override(map[string]string{"owner": "Owner"})
	assert.Error(t, err)
}
