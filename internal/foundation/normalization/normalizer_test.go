package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type shell string

const (
	shellBash       shell = "bash"
	shellPowerShell shell = "powershell"
)

func newShells() *Normalizer[shell] {
	return New("shell", map[string]shell{
		"bash":       shellBash,
		"sh":         shellBash,
		"PowerShell": shellPowerShell,
		"pwsh":       shellPowerShell,
	}, shellBash)
}

func TestNormalize(t *testing.T) {
	n := newShells()
	tests := []struct {
		in   string
		want shell
	}{
		{"bash", shellBash},
		{"  SH ", shellBash},
		{"powershell", shellPowerShell},
		{"PWSH", shellPowerShell},
		{"fish", shellBash},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, n.Normalize(tt.in), "input %q", tt.in)
	}
}

func TestParse(t *testing.T) {
	n := newShells()

	v, err := n.Parse(" Pwsh")
	require.NoError(t, err)
	require.Equal(t, shellPowerShell, v)

	v, err = n.Parse("")
	require.NoError(t, err)
	require.Equal(t, shellBash, v)

	_, err = n.Parse("fish")
	require.EqualError(t, err, `invalid shell "fish", valid options: bash, powershell, pwsh, sh`)
}

func TestKeysIsACopy(t *testing.T) {
	n := newShells()
	keys := n.Keys()
	keys[0] = "changed"
	require.Equal(t, "bash", n.Keys()[0])
}
