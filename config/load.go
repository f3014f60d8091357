package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when Load is given
// an empty path.
const EnvConfigPath = "GENERATOR_CONFIG"

// File is the YAML override document. Sections that are absent keep the
// package defaults; a tiers list replaces the whole table.
type File struct {
	Generation GenerationConfig         `yaml:"generation"`
	Profiles   map[string]ProfileConfig `yaml:"profiles"`
	Tiers      []TierConfig             `yaml:"tiers"`
	Items      ItemConfig               `yaml:"items"`
	Sim        SimConfig                `yaml:"sim"`
}

// Defaults returns a File holding the current package-level configuration.
func Defaults() *File {
	profiles := make(map[string]ProfileConfig, len(Profiles))
	for k, v := range Profiles {
		profiles[k] = v
	}
	return &File{
		Generation: Generation,
		Profiles:   profiles,
		Tiers:      CloneTiers(Tiers),
		Items:      Items,
		Sim:        Sim,
	}
}

// Load reads a YAML override file on top of the defaults. An empty path falls
// back to $GENERATOR_CONFIG; if that is empty too the defaults are returned.
func Load(path string) (*File, error) {
	f := Defaults()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return parse(f, data)
}

// Parse applies a YAML document on top of the defaults.
func Parse(data []byte) (*File, error) {
	return parse(Defaults(), data)
}

func parse(f *File, data []byte) (*File, error) {
	defaultTiers := f.Tiers
	f.Tiers = nil

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if f.Tiers == nil {
		f.Tiers = defaultTiers
	}
	if err := ValidateTiers(f.Tiers); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if f.Generation.MinVerticalGap <= 0 {
		return nil, fmt.Errorf("validate config: min_vertical_gap must be positive, got %v", f.Generation.MinVerticalGap)
	}
	if f.Generation.PlatformsPerBatch <= 0 || f.Generation.SafeZonePlatforms <= 0 {
		return nil, fmt.Errorf("validate config: platform counts must be positive")
	}
	if f.Generation.MaxMovingPerSlot < 0 || f.Generation.MaxMovingPerSlot > MovingPerSlotLimit {
		return nil, fmt.Errorf("validate config: max_moving_per_slot must be within [0, %d], got %d", MovingPerSlotLimit, f.Generation.MaxMovingPerSlot)
	}
	return f, nil
}

// Apply installs the loaded configuration as the package-level globals.
func (f *File) Apply() {
	Generation = f.Generation
	Profiles = f.Profiles
	Tiers = f.Tiers
	Items = f.Items
	Sim = f.Sim
}
