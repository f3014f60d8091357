package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTiersAreValid(t *testing.T) {
	require.NoError(t, ValidateTiers(Tiers))
	assert.True(t, math.IsInf(Tiers[len(Tiers)-1].MaxHeight, 1))
	assert.True(t, Tiers[0].Platform.StaticOnly)
}

func TestValidateTiersRejectsBrokenTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]TierConfig) []TierConfig
	}{
		{"empty", func([]TierConfig) []TierConfig { return nil }},
		{"not from zero", func(ts []TierConfig) []TierConfig { ts[0].MinHeight = 10; return ts }},
		{"gap", func(ts []TierConfig) []TierConfig { ts[1].MinHeight += 1; return ts }},
		{"overlap", func(ts []TierConfig) []TierConfig { ts[1].MinHeight -= 1; return ts }},
		{"empty range", func(ts []TierConfig) []TierConfig { ts[0].MaxHeight = 0; return ts }},
		{"wider platforms", func(ts []TierConfig) []TierConfig { ts[2].Platform.Width = 200; return ts }},
		{"slower hazard", func(ts []TierConfig) []TierConfig { ts[3].Hazard.Speed = 0.1; return ts }},
		{"fewer enemy types", func(ts []TierConfig) []TierConfig {
			ts[4].Enemies.Types = ts[4].Enemies.Types[:1]
			return ts
		}},
		{"unknown enemy", func(ts []TierConfig) []TierConfig {
			ts[1].Enemies.Types = []leveldata.ActorKind{"dragon"}
			return ts
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.mutate(CloneTiers(Tiers)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTiers))
		})
	}
}

func TestCloneTiersIsDeep(t *testing.T) {
	c := CloneTiers(Tiers)
	c[3].Enemies.Types[0] = leveldata.EnemyJumper
	c[3].Enemies.Distribution[leveldata.EnemyPatrol] = 99

	assert.Equal(t, leveldata.EnemyPatrol, Tiers[3].Enemies.Types[0])
	assert.Equal(t, 0.5, Tiers[3].Enemies.Distribution[leveldata.EnemyPatrol])
}

func TestPerTickCap(t *testing.T) {
	gen := Generation
	assert.Equal(t, 3, PerTickCap(gen, "desktop"))
	assert.Equal(t, 1, PerTickCap(gen, "constrained"))
	assert.Equal(t, 3, PerTickCap(gen, "unknown"))

	gen.PerTickCap = 7
	assert.Equal(t, 7, PerTickCap(gen, "constrained"))
}

func TestParseKeepsDefaultsForMissingSections(t *testing.T) {
	f, err := Parse([]byte("generation:\n  min_slots_ahead: 5\n"))
	require.NoError(t, err)

	assert.Equal(t, 5, f.Generation.MinSlotsAhead)
	assert.Equal(t, Generation.MinVerticalGap, f.Generation.MinVerticalGap)
	assert.Equal(t, len(Tiers), len(f.Tiers))
	assert.Equal(t, Sim.LevelWidth, f.Sim.LevelWidth)
}

func TestParseReplacesTierTable(t *testing.T) {
	doc := `
tiers:
  - name: Only
    min_height: 0
    max_height: .inf
    platform:
      width: 100
      static_only: true
`
	f, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, f.Tiers, 1)
	assert.Equal(t, "Only", f.Tiers[0].Name)
	assert.True(t, math.IsInf(f.Tiers[0].MaxHeight, 1))
}

func TestParseRejectsInvalidTiers(t *testing.T) {
	doc := `
tiers:
  - name: Broken
    min_height: 100
    max_height: 200
    platform:
      width: 100
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTiers)
}

func TestParseBoundsMovingPlatformsPerSlot(t *testing.T) {
	f, err := Parse([]byte("generation:\n  max_moving_per_slot: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.Generation.MaxMovingPerSlot)

	for _, doc := range []string{
		"generation:\n  max_moving_per_slot: 3\n",
		"generation:\n  max_moving_per_slot: -1\n",
	} {
		_, err := Parse([]byte(doc))
		assert.ErrorContains(t, err, "max_moving_per_slot", doc)
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sim:\n  level_width: 640\n"), 0o644))

	t.Setenv(EnvConfigPath, path)
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 640.0, f.Sim.LevelWidth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Generation, f.Generation)
}
