package core

import (
	"testing"

	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSimConfig() config.SimConfig {
	cfg := config.Sim
	cfg.SpaceHeight = 4096
	cfg.RebaseMargin = 1024
	return cfg
}

func spaceOf(t *testing.T, l *Level) *components.SpaceData {
	t.Helper()
	e, ok := components.Space.First(l.World())
	require.True(t, ok)
	return components.Space.Get(e)
}

func TestLevelHandlesAreNotReused(t *testing.T) {
	l := NewLevel(testSimConfig())

	h1, ok := l.SpawnPlatform(100, -100, 80, false, 0, leveldata.MotionPolicy{})
	require.True(t, ok)
	require.NotEqual(t, leveldata.NoHandle, h1)
	l.Despawn(h1)
	assert.Equal(t, 0, l.Live())

	h2, ok := l.SpawnPlatform(300, -200, 80, false, 0, leveldata.MotionPolicy{})
	require.True(t, ok)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, uint32(h1)&indexMask, uint32(h2)&indexMask, "arena slot is recycled")

	// Stale and unknown handles are ignored.
	l.Despawn(h1)
	l.Despawn(leveldata.NoHandle)
	l.Despawn(leveldata.Handle(12345))

	e, ok := l.Lookup(h2)
	require.True(t, ok)
	assert.Equal(t, 300.0, components.Object.Get(e).X)
	assert.Equal(t, h2, components.Pooled.Get(e).Handle)
	assert.Equal(t, 1, l.Live())
}

func TestLevelCapacity(t *testing.T) {
	cfg := testSimConfig()
	cfg.Capacity = 2
	l := NewLevel(cfg)

	a, ok := l.SpawnPlatform(100, -100, 80, false, 0, leveldata.MotionPolicy{})
	require.True(t, ok)
	_, ok = l.SpawnWall(240, -200, 100, 32)
	require.True(t, ok)

	h, ok := l.SpawnActor(leveldata.ItemCoin, 240, -300, leveldata.NoHandle)
	assert.False(t, ok)
	assert.Equal(t, leveldata.NoHandle, h)
	_, ok = l.SpawnPlatform(100, -400, 80, true, 1, leveldata.MotionPolicy{Axis: leveldata.AxisX, Min: 60, Max: 140})
	assert.False(t, ok)

	l.Despawn(a)
	_, ok = l.SpawnActor(leveldata.ItemCoin, 240, -300, leveldata.NoHandle)
	assert.True(t, ok)
	assert.Equal(t, 2, l.Live())
}

func TestLevelDespawnTakesRidersAlong(t *testing.T) {
	l := NewLevel(testSimConfig())
	space := spaceOf(t, l)
	before := len(space.Objects())

	platform, ok := l.SpawnPlatform(240, -100, 120, false, 0, leveldata.MotionPolicy{})
	require.True(t, ok)
	enemy, ok := l.SpawnActor(leveldata.EnemyPatrol, 240, -100-8-14, platform)
	require.True(t, ok)

	e, ok := l.Lookup(enemy)
	require.True(t, ok)
	data := components.Enemy.Get(e)
	assert.Equal(t, platform, data.Platform)
	assert.Equal(t, 192.0, data.PatrolLeft)
	assert.Equal(t, 288.0, data.PatrolRight)
	assert.Len(t, space.Objects(), before+2)

	l.Despawn(platform)
	_, ok = l.Lookup(enemy)
	assert.False(t, ok)
	assert.Equal(t, 0, l.Live())
	assert.Empty(t, l.riders)
	assert.Len(t, space.Objects(), before)
}

func TestLevelDespawnTakesEveryRiderAlong(t *testing.T) {
	l := NewLevel(testSimConfig())
	space := spaceOf(t, l)
	before := len(space.Objects())

	platform, ok := l.SpawnPlatform(240, -100, 200, false, 0, leveldata.MotionPolicy{})
	require.True(t, ok)
	var riders []leveldata.Handle
	for _, x := range []float64{180, 240, 300} {
		h, ok := l.SpawnActor(leveldata.EnemyPatrol, x, -124, platform)
		require.True(t, ok)
		riders = append(riders, h)
	}
	require.Equal(t, 4, l.Live())

	l.Despawn(platform)
	for _, h := range riders {
		_, ok := l.Lookup(h)
		assert.False(t, ok, "rider %d still live", h)
	}
	assert.Equal(t, 0, l.Live())
	assert.Empty(t, l.riders)
	assert.Len(t, space.Objects(), before)
}

func TestLevelDespawnRiderFirst(t *testing.T) {
	l := NewLevel(testSimConfig())

	platform, _ := l.SpawnPlatform(240, -100, 120, false, 0, leveldata.MotionPolicy{})
	enemy, _ := l.SpawnActor(leveldata.EnemyShooter, 240, -124, platform)
	l.Despawn(enemy)
	assert.Empty(t, l.riders)

	l.Despawn(platform)
	assert.Equal(t, 0, l.Live())
}

func TestLevelEnemyWithoutAnchorStandsStill(t *testing.T) {
	l := NewLevel(testSimConfig())

	h, ok := l.SpawnActor(leveldata.EnemyPatrol, 200, -300, leveldata.Handle(77))
	require.True(t, ok)
	e, _ := l.Lookup(h)
	data := components.Enemy.Get(e)
	assert.Equal(t, leveldata.NoHandle, data.Platform)
	assert.Equal(t, 200.0, data.PatrolLeft)
	assert.Equal(t, 200.0, data.PatrolRight)
	assert.Empty(t, l.riders)
}

func TestLevelWorldQuery(t *testing.T) {
	cfg := testSimConfig()
	cfg.StartY = -50
	l := NewLevel(cfg)

	assert.Equal(t, cfg.LevelWidth, l.PlayableWidth())
	assert.Equal(t, cfg.WallThickness+cfg.WallMargin, l.WallClearance())

	y, ok := l.CurrentPlayerY()
	require.True(t, ok)
	assert.Equal(t, -50.0, y)

	hz := l.Hazard()
	assert.False(t, hz.Rising)
	assert.Equal(t, -50+cfg.HazardStartDepth, hz.Y)
}

func TestLevelHazardDelayAndLag(t *testing.T) {
	cfg := testSimConfig()
	cfg.HazardDelayTicks = 3
	l := NewLevel(cfg)
	start := l.Hazard().Y

	for i := 0; i < 3; i++ {
		l.Step(1)
	}
	assert.False(t, l.Hazard().Rising)
	assert.Equal(t, start, l.Hazard().Y)

	l.Step(1)
	assert.True(t, l.Hazard().Rising)
	assert.InDelta(t, start-1, l.Hazard().Y, 1e-9)

	cfg.HazardDelayTicks = 0
	cfg.ClimbSpeed = 10
	cfg.HazardLag = 100
	cfg.HazardStartDepth = 50
	l = NewLevel(cfg)
	for i := 0; i < 20; i++ {
		l.Step(1)
	}
	y, _ := l.CurrentPlayerY()
	assert.InDelta(t, -200.0, y, 1e-9)
	assert.InDelta(t, y+100, l.Hazard().Y, 1e-9, "hazard never trails further than its lag")
}

func TestLevelCollectsItems(t *testing.T) {
	l := NewLevel(testSimConfig())

	coin, ok := l.SpawnActor(leveldata.ItemCoin, 240, -30, leveldata.NoHandle)
	require.True(t, ok)
	powerup, ok := l.SpawnActor(leveldata.ItemPowerup, 240, -40, leveldata.NoHandle)
	require.True(t, ok)
	far, ok := l.SpawnActor(leveldata.ItemCoin, 60, -30, leveldata.NoHandle)
	require.True(t, ok)

	l.Step(0)

	_, ok = l.Lookup(coin)
	assert.False(t, ok)
	_, ok = l.Lookup(powerup)
	assert.False(t, ok)
	_, ok = l.Lookup(far)
	assert.True(t, ok)
	assert.Equal(t, 1, l.Climber().Coins)
	assert.Equal(t, 1, l.Climber().Powerups)

	// The generator later despawns the same handle; that is a no-op.
	l.Despawn(coin)
	assert.Equal(t, 1, l.Live())
}

func TestLevelMovingPlatformStaysOnItsTrack(t *testing.T) {
	l := NewLevel(testSimConfig())
	policy := leveldata.MotionPolicy{Axis: leveldata.AxisX, Min: 150, Max: 250}

	h, ok := l.SpawnPlatform(200, -300, 64, true, 2, policy)
	require.True(t, ok)
	e, _ := l.Lookup(h)
	obj := components.Object.Get(e)

	lo, hi := obj.X, obj.X
	for i := 0; i < 200; i++ {
		l.Step(0)
		require.GreaterOrEqual(t, obj.X, policy.Min-1e-3)
		require.LessOrEqual(t, obj.X, policy.Max+1e-3)
		lo, hi = min(lo, obj.X), max(hi, obj.X)
	}
	assert.InDelta(t, policy.Min, lo, 2)
	assert.InDelta(t, policy.Max, hi, 2)
}

func TestLevelEnemiesPatrolTheirPlatform(t *testing.T) {
	l := NewLevel(testSimConfig())

	platform, _ := l.SpawnPlatform(240, -300, 120, false, 0, leveldata.MotionPolicy{})
	enemy, _ := l.SpawnActor(leveldata.EnemyPatrol, 240, -322, platform)
	e, _ := l.Lookup(enemy)
	obj := components.Object.Get(e)

	lo, hi := obj.X, obj.X
	for i := 0; i < 200; i++ {
		l.Step(0)
		lo, hi = min(lo, obj.X), max(hi, obj.X)
	}
	assert.Equal(t, 192.0, lo)
	assert.Equal(t, 288.0, hi)
}

func TestLevelRebaseKeepsObjectsInTheSpace(t *testing.T) {
	cfg := testSimConfig()
	cfg.ClimbSpeed = 10
	l := NewLevel(cfg)
	space := spaceOf(t, l)
	offset := space.OffsetY

	for i := 0; i < 600; i++ {
		l.Step(0)
		if i%50 == 0 {
			y, _ := l.CurrentPlayerY()
			_, ok := l.SpawnPlatform(240, y-200, 80, false, 0, leveldata.MotionPolicy{})
			require.True(t, ok)
		}
	}
	assert.NotEqual(t, offset, space.OffsetY)

	climber := components.Object.Get(l.climber).Object
	assert.GreaterOrEqual(t, climber.Y, cfg.RebaseMargin-cfg.ClimberHeight)
	assert.LessOrEqual(t, climber.Y, float64(cfg.SpaceHeight)-cfg.RebaseMargin)

	// The most recent platforms are near the climber, so they are indexed.
	y, _ := l.CurrentPlayerY()
	h, _ := l.SpawnPlatform(240, y-200, 80, false, 0, leveldata.MotionPolicy{})
	pe, _ := l.Lookup(h)
	assert.Contains(t, space.Objects(), components.Object.Get(pe).Object)
}
