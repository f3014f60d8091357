package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/skyclimb/shared/leveldata"
)

// ErrInvalidTiers is returned when a tier table breaks its ordering rules.
var ErrInvalidTiers = errors.New("invalid tier table")

// PlatformTierConfig controls platform layout difficulty
type PlatformTierConfig struct {
	StaticOnly   bool    `yaml:"static_only"`
	MovingChance float64 `yaml:"moving_chance"`
	MovingSpeed  float64 `yaml:"moving_speed"` // Pixels per tick
	Width        float64 `yaml:"width"`
	ZigzagChance float64 `yaml:"zigzag_chance"`
}

// EnemyTierConfig controls enemy density and variety
type EnemyTierConfig struct {
	SpawnChance  float64                         `yaml:"spawn_chance"`
	Types        []leveldata.ActorKind           `yaml:"types"`
	Distribution map[leveldata.ActorKind]float64 `yaml:"distribution"` // Relative weights
	MaxPerSlot   int                             `yaml:"max_per_slot"`
}

// MazeTierConfig controls maze slots
type MazeTierConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Chance            float64 `yaml:"chance"`
	PatternDifficulty int     `yaml:"pattern_difficulty"`
	AllowEnemies      bool    `yaml:"allow_enemies"`
	EnemyCount        int     `yaml:"enemy_count"` // Budget shared by the whole maze
}

// MechanicsTierConfig controls collectibles
type MechanicsTierConfig struct {
	Powerups      bool    `yaml:"powerups"`
	PowerupChance float64 `yaml:"powerup_chance"`
	Coins         bool    `yaml:"coins"`
	CoinChance    float64 `yaml:"coin_chance"`
}

// HazardTierConfig controls the rising hazard
type HazardTierConfig struct {
	Speed float64 `yaml:"speed"` // Pixels per tick
}

// TierConfig is one height-range-scoped difficulty bundle
type TierConfig struct {
	Name      string              `yaml:"name"`
	MinHeight float64             `yaml:"min_height"`
	MaxHeight float64             `yaml:"max_height"`
	Platform  PlatformTierConfig  `yaml:"platform"`
	Enemies   EnemyTierConfig     `yaml:"enemies"`
	Maze      MazeTierConfig      `yaml:"maze"`
	Mechanics MechanicsTierConfig `yaml:"mechanics"`
	Hazard    HazardTierConfig    `yaml:"hazard"`
}

// Allows reports whether the tier lists the enemy kind.
func (t *TierConfig) Allows(kind leveldata.ActorKind) bool {
	for _, k := range t.Enemies.Types {
		if k == kind {
			return true
		}
	}
	return false
}

// Tiers is the ordered tier table, keyed by ascent height.
var Tiers []TierConfig

func init() {
	all := []leveldata.ActorKind{leveldata.EnemyPatrol, leveldata.EnemyShooter, leveldata.EnemyJumper}

	Tiers = []TierConfig{
		{
			Name:      "Foothills",
			MinHeight: 0,
			MaxHeight: 1500,
			Platform:  PlatformTierConfig{StaticOnly: true, MovingSpeed: 1.0, Width: 120},
			Mechanics: MechanicsTierConfig{Coins: true, CoinChance: 0.35},
			Hazard:    HazardTierConfig{Speed: 0.6},
		},
		{
			Name:      "Ledges",
			MinHeight: 1500,
			MaxHeight: 4000,
			Platform:  PlatformTierConfig{MovingChance: 0.15, MovingSpeed: 1.2, Width: 112, ZigzagChance: 0.1},
			Enemies: EnemyTierConfig{
				SpawnChance:  0.15,
				Types:        []leveldata.ActorKind{leveldata.EnemyPatrol},
				Distribution: map[leveldata.ActorKind]float64{leveldata.EnemyPatrol: 1},
				MaxPerSlot:   1,
			},
			Maze:      MazeTierConfig{Enabled: true, Chance: 0.10, PatternDifficulty: 1},
			Mechanics: MechanicsTierConfig{Powerups: true, PowerupChance: 0.10, Coins: true, CoinChance: 0.40},
			Hazard:    HazardTierConfig{Speed: 0.8},
		},
		{
			Name:      "Cliffs",
			MinHeight: 4000,
			MaxHeight: 8000,
			Platform:  PlatformTierConfig{MovingChance: 0.25, MovingSpeed: 1.5, Width: 104, ZigzagChance: 0.2},
			Enemies: EnemyTierConfig{
				SpawnChance: 0.25,
				Types:       []leveldata.ActorKind{leveldata.EnemyPatrol, leveldata.EnemyShooter},
				Distribution: map[leveldata.ActorKind]float64{
					leveldata.EnemyPatrol:  0.7,
					leveldata.EnemyShooter: 0.3,
				},
				MaxPerSlot: 2,
			},
			Maze:      MazeTierConfig{Enabled: true, Chance: 0.15, PatternDifficulty: 2, AllowEnemies: true, EnemyCount: 1},
			Mechanics: MechanicsTierConfig{Powerups: true, PowerupChance: 0.12, Coins: true, CoinChance: 0.45},
			Hazard:    HazardTierConfig{Speed: 1.0},
		},
		{
			Name:      "Spires",
			MinHeight: 8000,
			MaxHeight: 13000,
			Platform:  PlatformTierConfig{MovingChance: 0.35, MovingSpeed: 1.8, Width: 96, ZigzagChance: 0.3},
			Enemies: EnemyTierConfig{
				SpawnChance: 0.35,
				Types:       all,
				Distribution: map[leveldata.ActorKind]float64{
					leveldata.EnemyPatrol:  0.5,
					leveldata.EnemyShooter: 0.3,
					leveldata.EnemyJumper:  0.2,
				},
				MaxPerSlot: 2,
			},
			Maze:      MazeTierConfig{Enabled: true, Chance: 0.20, PatternDifficulty: 3, AllowEnemies: true, EnemyCount: 2},
			Mechanics: MechanicsTierConfig{Powerups: true, PowerupChance: 0.14, Coins: true, CoinChance: 0.50},
			Hazard:    HazardTierConfig{Speed: 1.25},
		},
		{
			Name:      "Stormline",
			MinHeight: 13000,
			MaxHeight: 20000,
			Platform:  PlatformTierConfig{MovingChance: 0.45, MovingSpeed: 2.1, Width: 88, ZigzagChance: 0.4},
			Enemies: EnemyTierConfig{
				SpawnChance: 0.45,
				Types:       all,
				Distribution: map[leveldata.ActorKind]float64{
					leveldata.EnemyPatrol:  0.4,
					leveldata.EnemyShooter: 0.35,
					leveldata.EnemyJumper:  0.25,
				},
				MaxPerSlot: 3,
			},
			Maze:      MazeTierConfig{Enabled: true, Chance: 0.25, PatternDifficulty: 3, AllowEnemies: true, EnemyCount: 3},
			Mechanics: MechanicsTierConfig{Powerups: true, PowerupChance: 0.15, Coins: true, CoinChance: 0.50},
			Hazard:    HazardTierConfig{Speed: 1.5},
		},
		{
			Name:      "Summit",
			MinHeight: 20000,
			MaxHeight: math.Inf(1),
			Platform:  PlatformTierConfig{MovingChance: 0.55, MovingSpeed: 2.4, Width: 80, ZigzagChance: 0.5},
			Enemies: EnemyTierConfig{
				SpawnChance: 0.55,
				Types:       all,
				Distribution: map[leveldata.ActorKind]float64{
					leveldata.EnemyPatrol:  0.35,
					leveldata.EnemyShooter: 0.35,
					leveldata.EnemyJumper:  0.3,
				},
				MaxPerSlot: 3,
			},
			Maze:      MazeTierConfig{Enabled: true, Chance: 0.30, PatternDifficulty: 4, AllowEnemies: true, EnemyCount: 4},
			Mechanics: MechanicsTierConfig{Powerups: true, PowerupChance: 0.16, Coins: true, CoinChance: 0.55},
			Hazard:    HazardTierConfig{Speed: 1.8},
		},
	}
}

// ValidateTiers checks that the table starts at zero, that ranges are
// contiguous and non-overlapping, and that every difficulty dimension is
// non-decreasing in severity from one tier to the next.
func ValidateTiers(tiers []TierConfig) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidTiers)
	}
	if tiers[0].MinHeight != 0 {
		return fmt.Errorf("%w: first tier %q starts at %v, want 0", ErrInvalidTiers, tiers[0].Name, tiers[0].MinHeight)
	}

	for i := range tiers {
		t := &tiers[i]
		if !(t.MaxHeight > t.MinHeight) {
			return fmt.Errorf("%w: tier %q has empty range [%v, %v)", ErrInvalidTiers, t.Name, t.MinHeight, t.MaxHeight)
		}
		if t.Platform.Width <= 0 {
			return fmt.Errorf("%w: tier %q platform width must be positive", ErrInvalidTiers, t.Name)
		}
		for kind, w := range t.Enemies.Distribution {
			if w < 0 {
				return fmt.Errorf("%w: tier %q negative weight for %s", ErrInvalidTiers, t.Name, kind)
			}
		}
		for _, kind := range t.Enemies.Types {
			if !kind.IsEnemy() {
				return fmt.Errorf("%w: tier %q lists unknown enemy %q", ErrInvalidTiers, t.Name, kind)
			}
		}
		if i == 0 {
			continue
		}

		prev := &tiers[i-1]
		if t.MinHeight != prev.MaxHeight {
			return fmt.Errorf("%w: tier %q starts at %v but %q ends at %v", ErrInvalidTiers, t.Name, t.MinHeight, prev.Name, prev.MaxHeight)
		}
		if err := checkMonotonic(prev, t); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTiers, err)
		}
	}
	return nil
}

func checkMonotonic(prev, next *TierConfig) error {
	switch {
	case prev.Platform.StaticOnly == false && next.Platform.StaticOnly:
		return fmt.Errorf("tier %q re-enables static-only platforms", next.Name)
	case next.Platform.Width > prev.Platform.Width:
		return fmt.Errorf("tier %q widens platforms", next.Name)
	case next.Platform.MovingChance < prev.Platform.MovingChance:
		return fmt.Errorf("tier %q lowers moving chance", next.Name)
	case next.Platform.MovingSpeed < prev.Platform.MovingSpeed:
		return fmt.Errorf("tier %q slows moving platforms", next.Name)
	case next.Enemies.SpawnChance < prev.Enemies.SpawnChance:
		return fmt.Errorf("tier %q lowers enemy spawn chance", next.Name)
	case len(next.Enemies.Types) < len(prev.Enemies.Types):
		return fmt.Errorf("tier %q reduces enemy variety", next.Name)
	case next.Enemies.MaxPerSlot < prev.Enemies.MaxPerSlot:
		return fmt.Errorf("tier %q lowers enemy count", next.Name)
	case next.Maze.PatternDifficulty < prev.Maze.PatternDifficulty:
		return fmt.Errorf("tier %q lowers maze difficulty", next.Name)
	case next.Maze.EnemyCount < prev.Maze.EnemyCount:
		return fmt.Errorf("tier %q lowers maze enemy count", next.Name)
	case next.Hazard.Speed < prev.Hazard.Speed:
		return fmt.Errorf("tier %q slows the hazard", next.Name)
	}
	return nil
}

// CloneTiers returns a deep copy of a tier table.
func CloneTiers(tiers []TierConfig) []TierConfig {
	out := make([]TierConfig, len(tiers))
	for i, t := range tiers {
		out[i] = t
		out[i].Enemies.Types = append([]leveldata.ActorKind(nil), t.Enemies.Types...)
		if t.Enemies.Distribution != nil {
			out[i].Enemies.Distribution = make(map[leveldata.ActorKind]float64, len(t.Enemies.Distribution))
			for k, v := range t.Enemies.Distribution {
				out[i].Enemies.Distribution[k] = v
			}
		}
	}
	return out
}
