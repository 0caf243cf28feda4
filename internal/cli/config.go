package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/chazu/cadkit/pkg/geom"
	"github.com/chazu/cadkit/pkg/units"
)

// defaultConfigPath is read when --config is not given. It may be absent.
const defaultConfigPath = "cadkit.toml"

// Config is the contents of a cadkit.toml file.
//
//	[tolerance]
//	length = 1e-4
//	normalized = 1e-4
//
//	[units.length]
//	unit = "mm"
//	tolerance = 0.1
//
//	[output]
//	layer = "transformed"
type Config struct {
	Tolerance ToleranceConfig       `toml:"tolerance"`
	Units     map[string]UnitConfig `toml:"units"`
	Output    OutputConfig          `toml:"output"`
}

// ToleranceConfig holds the geometric comparison tolerances.
type ToleranceConfig struct {
	Length     float64 `toml:"length"`
	Normalized float64 `toml:"normalized"`
}

// UnitConfig selects the unit of one physical quantity. A nil Tolerance
// converts the current default tolerance into the new unit.
type UnitConfig struct {
	Unit      string   `toml:"unit"`
	Tolerance *float64 `toml:"tolerance"`
}

// OutputConfig controls written documents.
type OutputConfig struct {
	Layer string `toml:"layer"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Tolerance: ToleranceConfig{
			Length:     1e-4,
			Normalized: geom.NormalizedLengthTolerance,
		},
	}
}

// loadConfig reads path over the defaults. A missing file is an error only
// when explicit is set.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Tolerance.Length < 0 || c.Tolerance.Normalized < 0 {
		return errors.New("tolerances must not be negative")
	}
	for name, u := range c.Units {
		if u.Unit == "" {
			return fmt.Errorf("units.%s: unit is required", name)
		}
		if u.Tolerance != nil && *u.Tolerance < 0 {
			return fmt.Errorf("units.%s: tolerance must not be negative", name)
		}
	}
	return nil
}

// Domain builds the unit domain with the configured units applied in
// quantity name order.
func (c *Config) Domain() (*units.Domain, error) {
	d := units.NewDomain()
	names := make([]string, 0, len(c.Units))
	for name := range c.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		u := c.Units[name]
		if err := d.SetupItem(name, u.Unit, u.Tolerance); err != nil {
			return nil, fmt.Errorf("units.%s: %w", name, err)
		}
	}
	return d, nil
}
