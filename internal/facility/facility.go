// Package facility holds the per-facility configuration the deck editors
// are calibrated with. The constants that were once buried in the editing
// code (rod travel per percent, temperature conversion, reserved surface
// prefix, water material id) live here so a different facility's deck
// format needs a config file, not a code change.
package facility

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"deckgen/internal/domain/deck"
)

// Config is the full facility configuration. Zero values fall back to
// the reference facility defaults, so a config file only needs to state
// what differs.
type Config struct {
	// Module is the prefix of every derived variant name.
	Module string `yaml:"module"`

	// BaseDeck is the immutable base input deck all variants derive from.
	BaseDeck string `yaml:"base_deck"`

	// InputsDir receives generated variant decks.
	InputsDir string `yaml:"inputs_dir"`

	// OutputsDir receives simulator output files.
	OutputsDir string `yaml:"outputs_dir"`

	// Simulator is the external executable invoked on generated decks.
	Simulator string `yaml:"simulator"`

	// Tasks is the worker-process count passed to the simulator.
	Tasks int `yaml:"tasks"`

	// CmPerPercent is rod travel in cm per percent withdrawn.
	CmPerPercent float64 `yaml:"cm_per_percent"`

	// MevPerKelvin converts Kelvin to the deck's tmp= attribute unit.
	MevPerKelvin float64 `yaml:"mev_per_kelvin"`

	// RodSurfacePrefix is the leading-token prefix reserved for rod
	// geometry surface ids.
	RodSurfacePrefix string `yaml:"rod_surface_prefix"`

	// WaterMaterial is the material id of the core water moderator.
	WaterMaterial int `yaml:"water_material"`
}

// Default returns the reference facility configuration.
func Default() Config {
	cal := deck.DefaultCalibration()
	return Config{
		Module:           "rc",
		BaseDeck:         "rc.i",
		InputsDir:        "inputs",
		OutputsDir:       "outputs",
		Simulator:        "mcnp6",
		Tasks:            1,
		CmPerPercent:     cal.CmPerPercent,
		MevPerKelvin:     cal.MevPerKelvin,
		RodSurfacePrefix: cal.RodSurfacePrefix,
		WaterMaterial:    cal.WaterMaterial,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error — the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects calibration values that would turn the editors into
// silent no-ops (a zero cm_per_percent shifts nothing, a zero
// mev_per_kelvin writes tmp=0 on every targeted cell).
func (c Config) validate() error {
	if c.CmPerPercent <= 0 {
		return fmt.Errorf("cm_per_percent must be positive, got %v", c.CmPerPercent)
	}
	if c.MevPerKelvin <= 0 {
		return fmt.Errorf("mev_per_kelvin must be positive, got %v", c.MevPerKelvin)
	}
	if c.RodSurfacePrefix == "" {
		return fmt.Errorf("rod_surface_prefix must not be empty")
	}
	if c.WaterMaterial <= 0 {
		return fmt.Errorf("water_material must be positive, got %d", c.WaterMaterial)
	}
	return nil
}

// Calibration projects the editor-facing constants out of the config.
func (c Config) Calibration() deck.Calibration {
	return deck.Calibration{
		CmPerPercent:     c.CmPerPercent,
		MevPerKelvin:     c.MevPerKelvin,
		RodSurfacePrefix: c.RodSurfacePrefix,
		WaterMaterial:    c.WaterMaterial,
	}
}
