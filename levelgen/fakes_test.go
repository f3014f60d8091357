package levelgen

import (
	"testing"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// scriptedRNG replays fixed draws, then repeats the last one.
type scriptedRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRNG) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRNG) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return v % n
}

// constRNG always draws the same value.
type constRNG float64

func (r constRNG) Float64() float64 { return float64(r) }
func (r constRNG) Intn(n int) int   { return 0 }

type spawned struct {
	kind   leveldata.PlacementKind
	actor  leveldata.ActorKind
	x, y   float64
	width  float64
	height float64
	moving bool
	speed  float64
	motion leveldata.MotionPolicy
	anchor Handle
}

// fakePool hands out sequential handles, optionally up to a limit.
type fakePool struct {
	next      Handle
	live      map[Handle]spawned
	history   map[Handle]spawned
	limit     int
	despawned []Handle

	// failPlatform rejects platform spawns when it returns true.
	failPlatform func(x float64, moving bool) bool
	onSpawn      func()
}

func newFakePool() *fakePool {
	return &fakePool{live: map[Handle]spawned{}, history: map[Handle]spawned{}}
}

func (p *fakePool) add(s spawned) (Handle, bool) {
	if p.onSpawn != nil {
		p.onSpawn()
	}
	if p.limit > 0 && len(p.live) >= p.limit {
		return leveldata.NoHandle, false
	}
	p.next++
	p.live[p.next] = s
	p.history[p.next] = s
	return p.next, true
}

func (p *fakePool) SpawnPlatform(x, y, width float64, moving bool, speed float64, motion leveldata.MotionPolicy) (Handle, bool) {
	if p.failPlatform != nil && p.failPlatform(x, moving) {
		return leveldata.NoHandle, false
	}
	return p.add(spawned{kind: leveldata.KindPlatform, x: x, y: y, width: width, moving: moving, speed: speed, motion: motion})
}

func (p *fakePool) SpawnWall(x, y, width, height float64) (Handle, bool) {
	return p.add(spawned{kind: leveldata.KindWallSegment, x: x, y: y, width: width, height: height})
}

func (p *fakePool) SpawnActor(kind leveldata.ActorKind, x, y float64, anchor Handle) (Handle, bool) {
	k := leveldata.KindItem
	if kind.IsEnemy() {
		k = leveldata.KindEnemy
	}
	return p.add(spawned{kind: k, actor: kind, x: x, y: y, anchor: anchor})
}

func (p *fakePool) Despawn(h Handle) {
	delete(p.live, h)
	p.despawned = append(p.despawned, h)
}

type fakeWorld struct {
	width     float64
	clearance float64
	playerY   float64
	hasPlayer bool
	hazard    HazardState
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{width: 480, clearance: 24, hasPlayer: true}
}

func (w *fakeWorld) PlayableWidth() float64          { return w.width }
func (w *fakeWorld) WallClearance() float64          { return w.clearance }
func (w *fakeWorld) CurrentPlayerY() (float64, bool) { return w.playerY, w.hasPlayer }
func (w *fakeWorld) Hazard() HazardState             { return w.hazard }

func testBounds() Bounds {
	return Bounds{PlayableWidth: 480, WallClearance: 24}
}

func testPatterns() *leveldata.PatternTables {
	return &leveldata.PatternTables{
		Platforms: []leveldata.Pattern{
			{Name: "stairs", Width: 480, Weight: 3, Offsets: []leveldata.Offset{{X: 96, Y: 8}, {X: 192, Y: 88}, {X: 288, Y: 168}, {X: 384, Y: 248}}},
			{Name: "zigzag", Width: 480, Weight: 3, Offsets: []leveldata.Offset{{X: 112, Y: 8}, {X: 368, Y: 88}, {X: 112, Y: 168}}},
			{Name: "edges", Width: 480, Weight: 1, Offsets: []leveldata.Offset{{X: 0, Y: 8}, {X: 480, Y: 88}}},
			{Name: "rest", Width: 480, Weight: 1, Safe: true, Offsets: []leveldata.Offset{{X: 144, Y: 8}, {X: 336, Y: 88}}},
		},
		Mazes: []leveldata.MazePattern{
			{Name: "switchback", Width: 480, Difficulty: 1, Weight: 1, Rows: []leveldata.MazeRow{
				{Topology: leveldata.TopologyLeft, Width: 240},
				{Topology: leveldata.TopologyRight, Width: 240},
				{Topology: leveldata.TopologyLeft, Width: 240},
			}},
			{Name: "gates", Width: 480, Difficulty: 2, Weight: 1, Rows: []leveldata.MazeRow{
				{Topology: leveldata.TopologySplit, Width: 160, Width2: 128},
				{Topology: leveldata.TopologyCenter, Width: 192},
				{Topology: leveldata.TopologySplit, Width: 300, Width2: 300},
				{Topology: leveldata.TopologyRight, Width: 470},
			}},
		},
	}
}

func testTier(t *testing.T, name string) config.TierConfig {
	t.Helper()
	for _, tier := range config.Tiers {
		if tier.Name == name {
			return tier
		}
	}
	t.Fatalf("no tier %q", name)
	return config.TierConfig{}
}

// silenceLogs discards generator warnings for the duration of a test and
// returns a counter of how many were emitted.
func silenceLogs(t *testing.T) *int {
	t.Helper()
	count := 0
	prev := Logf
	Logf = func(string, ...any) { count++ }
	t.Cleanup(func() { Logf = prev })
	return &count
}
