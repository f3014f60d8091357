package levelgen

import (
	"math"
	"testing"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func newTestPlanner(t *testing.T, cfg config.GenerationConfig, tiers []config.TierConfig, patterns *leveldata.PatternTables, rng RNG) *Planner {
	t.Helper()
	r, err := NewTierResolver(tiers)
	require.NoError(t, err)
	p := NewPlanner(cfg, r, patterns, rng, testBounds())
	p.Reset(0)
	return p
}

func planSlots(p *Planner, n int) []leveldata.Slot {
	slots := make([]leveldata.Slot, n)
	for i := range slots {
		slots[i] = p.NextSlot(i)
	}
	return slots
}

func TestPlannerStacksWithoutGaps(t *testing.T) {
	for _, gap := range []float64{0, 20} {
		cfg := config.Generation
		cfg.InterSlotGap = gap
		p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), NewRNG(7))

		slots := planSlots(p, 400)
		for i, s := range slots {
			assert.InDelta(t, s.YStart-s.Height, s.YEnd, tolerance)
			if i > 0 {
				assert.InDelta(t, slots[i-1].YEnd-gap, s.YStart, tolerance, "slot %d", i)
			}
		}
		assert.Equal(t, slots[len(slots)-1].YEnd, p.Cursor())
	}
}

func TestPlannerPlatformsStayInBoundsAndApart(t *testing.T) {
	cfg := config.Generation
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), NewRNG(11))
	b := testBounds()

	// Start deep into the tier table so narrow platforms and mazes show up.
	p.OverrideNextStart(-12000)
	for _, s := range planSlots(p, 300) {
		if s.Type == leveldata.Maze {
			require.NotNil(t, s.Layout.Maze)
			continue
		}
		require.NotEmpty(t, s.Layout.Platforms)
		for i, pl := range s.Layout.Platforms {
			assert.GreaterOrEqual(t, pl.X-pl.Width/2, b.WallClearance-tolerance)
			assert.LessOrEqual(t, pl.X+pl.Width/2, b.PlayableWidth-b.WallClearance+tolerance)
			assert.True(t, s.Contains(pl.Y), "platform outside its slot")
			if i > 0 {
				assert.GreaterOrEqual(t, math.Abs(pl.Y-s.Layout.Platforms[i-1].Y), cfg.MinVerticalGap-tolerance)
			}
		}
	}
}

func TestPlannerTutorialSlotsAreBatches(t *testing.T) {
	cfg := config.Generation
	cfg.TutorialSlotCount = 3
	// A draw of 0.99 picks the last positive weight: SafeZone in the first tier.
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), constRNG(0.99))

	slots := planSlots(p, 5)
	for i := 0; i < 3; i++ {
		assert.Equal(t, leveldata.PlatformBatch, slots[i].Type, "slot %d", i)
	}
	assert.Equal(t, leveldata.SafeZone, slots[3].Type)
	// A SafeZone never follows a SafeZone.
	assert.Equal(t, leveldata.PlatformBatch, slots[4].Type)
}

func TestPlannerNeverRepeatsMazeOrSafeZone(t *testing.T) {
	cfg := config.Generation
	cfg.TutorialSlotCount = 0
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), NewRNG(3))
	p.OverrideNextStart(-25000)

	slots := planSlots(p, 500)
	mazes := 0
	for i := 1; i < len(slots); i++ {
		if slots[i].Type == leveldata.Maze {
			mazes++
			assert.NotEqual(t, leveldata.Maze, slots[i-1].Type, "maze after maze at %d", i)
		}
		if slots[i].Type == leveldata.SafeZone {
			assert.NotEqual(t, leveldata.SafeZone, slots[i-1].Type, "safe zone after safe zone at %d", i)
		}
	}
	assert.Positive(t, mazes)
}

func TestPlannerAlternatesMazePatterns(t *testing.T) {
	cfg := config.Generation
	cfg.TutorialSlotCount = 0
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), constRNG(0.99))
	p.OverrideNextStart(-25000)

	slots := planSlots(p, 6)
	var names []string
	for _, s := range slots {
		if s.Type == leveldata.Maze {
			names = append(names, s.Layout.PatternName)
		}
	}
	require.GreaterOrEqual(t, len(names), 2)
	for i := 1; i < len(names); i++ {
		assert.NotEqual(t, names[i-1], names[i])
	}
}

func TestPlannerAvoidsImmediatePatternRepeat(t *testing.T) {
	cfg := config.Generation
	cfg.TutorialSlotCount = 1000
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), NewRNG(5))

	slots := planSlots(p, 200)
	for i := 1; i < len(slots); i++ {
		assert.NotEqual(t, slots[i-1].Layout.PatternName, slots[i].Layout.PatternName, "slot %d", i)
	}
}

func TestPlannerMazeHeightIsOnTheGrid(t *testing.T) {
	cfg := config.Generation
	cfg.TutorialSlotCount = 0
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), NewRNG(9))
	p.OverrideNextStart(-25000)

	found := false
	for _, s := range planSlots(p, 200) {
		if s.Type != leveldata.Maze {
			continue
		}
		found = true
		raw := mazeRawHeight(cfg, len(s.Layout.Maze.Rows))
		assert.GreaterOrEqual(t, s.Height, raw)
		assert.Less(t, s.Height-raw, cfg.MinVerticalGap)
		ratio := s.Height / cfg.MinVerticalGap
		assert.InDelta(t, math.Round(ratio), ratio, tolerance)
	}
	assert.True(t, found)
}

func TestPlannerMazeRespectsDifficulty(t *testing.T) {
	cfg := config.Generation
	cfg.TutorialSlotCount = 0
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), NewRNG(1))
	// Ledges allows difficulty 1 only.
	p.OverrideNextStart(-2000)

	for i := 0; i < 100; i++ {
		s := p.NextSlot(i)
		p.AlignCursor(-2000 + cfg.InterSlotGap)
		if s.Type == leveldata.Maze {
			assert.LessOrEqual(t, s.Layout.Maze.Difficulty, 1)
		}
	}
}

func TestPlannerResetStartsAtStartY(t *testing.T) {
	cfg := config.Generation
	cfg.InterSlotGap = 10
	cfg.TutorialSlotCount = 1
	p := newTestPlanner(t, cfg, config.Tiers, testPatterns(), NewRNG(2))
	planSlots(p, 4)

	p.Reset(500)
	first := p.NextSlot(0)
	assert.Equal(t, leveldata.PlatformBatch, first.Type)
	assert.Equal(t, 500.0-10, first.YStart)
	assert.Equal(t, 0.0, p.AscentHeight(600))
	assert.Equal(t, 100.0, p.AscentHeight(400))
}

func TestPlannerOverrideNextStart(t *testing.T) {
	p := newTestPlanner(t, config.Generation, config.Tiers, testPatterns(), NewRNG(2))
	p.NextSlot(0)

	p.OverrideNextStart(-1234)
	s := p.NextSlot(1)
	assert.Equal(t, -1234.0, s.YStart)

	next := p.NextSlot(2)
	assert.Equal(t, s.YEnd-config.Generation.InterSlotGap, next.YStart)
}

func TestPlannerZigzagMirrorsAlternateCycles(t *testing.T) {
	tiers := []config.TierConfig{{
		Name:      "Zig",
		MinHeight: 0,
		MaxHeight: math.Inf(1),
		Platform:  config.PlatformTierConfig{StaticOnly: true, Width: 100, ZigzagChance: 1},
	}}
	patterns := &leveldata.PatternTables{Platforms: []leveldata.Pattern{
		{Name: "pair", Width: 480, Weight: 1, Offsets: []leveldata.Offset{{X: 96, Y: 0}, {X: 384, Y: 80}}},
	}}
	cfg := config.Generation
	p := newTestPlanner(t, cfg, tiers, patterns, constRNG(0))

	s := p.NextSlot(0)
	require.Len(t, s.Layout.Platforms, 5)

	var xs, ys []float64
	for _, pl := range s.Layout.Platforms {
		xs = append(xs, pl.X)
		ys = append(ys, pl.Y)
	}
	assert.Equal(t, []float64{96, 384, 384, 96, 96}, xs)
	assert.Equal(t, []float64{-360, -280, -200, -120, -40}, ys)
	assert.Contains(t, s.Layout.Transform, "zigzag")
}

func TestPlannerFallsBackWithoutPatterns(t *testing.T) {
	p := newTestPlanner(t, config.Generation, config.Tiers, &leveldata.PatternTables{}, NewRNG(4))

	s := p.NextSlot(0)
	assert.Equal(t, fallbackPatternName, s.Layout.PatternName)
	for _, pl := range s.Layout.Platforms {
		assert.Equal(t, testBounds().CenterX(), pl.X)
	}
}
