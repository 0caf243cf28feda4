package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chazu/cadkit/pkg/units"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "cadkit.toml")

	cfg, err := loadConfig(missing, false)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	_, err = loadConfig(missing, true)
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "cadkit.toml", `
[tolerance]
length = 0.01

[units.length]
unit = "mm"

[units.mass]
unit = "g"
tolerance = 0.5

[output]
layer = "transformed"
`)

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	require.Equal(t, 0.01, cfg.Tolerance.Length)
	require.Equal(t, 1e-4, cfg.Tolerance.Normalized, "unset keys keep their defaults")
	require.Equal(t, "transformed", cfg.Output.Layer)
	require.Len(t, cfg.Units, 2)
	require.Nil(t, cfg.Units["length"].Tolerance)

	d, err := cfg.Domain()
	require.NoError(t, err)

	length, err := d.Get(units.Length)
	require.NoError(t, err)
	require.Equal(t, "mm", length.MU.Name)
	require.InDelta(t, 0.1, length.DefaultTolerance, 1e-12)

	mass, err := d.Get(units.Mass)
	require.NoError(t, err)
	require.Equal(t, "g", mass.MU.Name)
	require.Equal(t, 0.5, mass.DefaultTolerance)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[tolerance\nlength = 1"},
		{"negative tolerance", "[tolerance]\nlength = -1"},
		{"missing unit", "[units.length]\ntolerance = 0.1"},
		{"negative unit tolerance", "[units.length]\nunit = \"mm\"\ntolerance = -0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "cadkit.toml", tt.content), true)
			require.Error(t, err)
		})
	}
}

func TestConfigDomainUnknownUnit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Units = map[string]UnitConfig{"length": {Unit: "kg"}}

	_, err := cfg.Domain()
	require.ErrorIs(t, err, units.ErrUnknownUnit)

	cfg.Units = map[string]UnitConfig{"volume": {Unit: "m3"}}
	_, err = cfg.Domain()
	require.ErrorIs(t, err, units.ErrUnknownQuantity)
}
