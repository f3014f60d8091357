package levelgen

import (
	"errors"
	"fmt"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// Deps are the collaborators and tables a Coordinator is built from.
type Deps struct {
	Config   config.GenerationConfig
	Items    config.ItemConfig
	Tiers    []config.TierConfig
	Patterns *leveldata.PatternTables
	Pool     Pool
	World    WorldQuery
	RNG      RNG      // nil: seeded from Seed
	Recorder Recorder // nil: NopRecorder
	Profile  string   // hardware profile name for the per-tick cap
	Seed     int64
}

// Stats are cumulative generation counters.
type Stats struct {
	Generated         int
	LastTickGenerated int
	MaxTickGenerated  int
	CapHits           int
	DriftCorrections  int
	Cleaned           int
	FallbackSlots     int
	PoolExhausted     int
	Rejections        int
}

// Coordinator keeps enough slots ahead of the player, a bounded number per
// tick, and removes slots once they fall behind the retreat horizon.
type Coordinator struct {
	cfg        config.GenerationConfig
	perTickCap int

	tiers      *TierResolver
	planner    *Planner
	validator  *Validator
	items      *ItemSpawner
	strategies map[leveldata.SlotType]Strategy

	pool     Pool
	world    WorldQuery
	recorder *countingRecorder

	slots      []leveldata.Slot
	nextIndex  int
	generating bool

	stats       Stats
	lastCapWarn int
	warnedCap   bool
}

// NewCoordinator validates its dependencies and wires the planner,
// validator, item spawner and strategies together. The generator starts
// reset at y = 0.
func NewCoordinator(d Deps) (*Coordinator, error) {
	if d.Pool == nil {
		return nil, errors.New("coordinator: nil pool")
	}
	if d.World == nil {
		return nil, errors.New("coordinator: nil world query")
	}
	if d.Patterns == nil || len(d.Patterns.Platforms) == 0 {
		return nil, fmt.Errorf("coordinator: platform patterns: %w", leveldata.ErrNoPatterns)
	}
	if d.Config.MinVerticalGap <= 0 {
		return nil, fmt.Errorf("coordinator: min vertical gap must be positive, got %v", d.Config.MinVerticalGap)
	}

	tiers, err := NewTierResolver(d.Tiers)
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}

	rng := d.RNG
	if rng == nil {
		rng = NewRNG(d.Seed)
	}
	var inner Recorder = NopRecorder{}
	if d.Recorder != nil {
		inner = d.Recorder
	}

	c := &Coordinator{
		cfg:        d.Config,
		perTickCap: config.PerTickCap(d.Config, d.Profile),
		tiers:      tiers,
		pool:       d.Pool,
		world:      d.World,
	}
	c.recorder = &countingRecorder{Recorder: inner, stats: &c.stats}

	bounds := BoundsOf(d.World)
	c.planner = NewPlanner(d.Config, tiers, d.Patterns, rng, bounds)
	c.validator = NewValidator(d.Config, bounds)
	c.items = NewItemSpawner(d.Config, d.Items, d.Pool, rng, c.recorder)

	speed := NewSpeedVariation(d.Seed, d.Config.MovingSpeedJitter)
	platforms := NewPlatformStrategy(d.Config, d.Pool, rng, c.validator, c.items, c.recorder, speed)
	c.strategies = map[leveldata.SlotType]Strategy{
		leveldata.PlatformBatch: platforms,
		leveldata.SafeZone:      platforms,
		leveldata.Maze:          NewMazeStrategy(d.Config, d.Pool, rng, c.items, c.recorder),
	}

	c.Reset(0)
	return c, nil
}

// Reset despawns everything and starts a fresh stack at startY.
func (c *Coordinator) Reset(startY float64) {
	for i := range c.slots {
		c.despawnSlot(&c.slots[i])
	}
	c.slots = nil
	c.nextIndex = 0
	c.planner.Reset(startY)
	c.validator.Reset()
	c.items.Reset(startY)
	c.warnedCap = false
	c.recorder.ActiveSlots(0)
}

// Update runs one generation and cleanup pass. It does nothing while
// another pass is running or when there is no player to follow.
func (c *Coordinator) Update(tick int) {
	if c.generating {
		return
	}
	playerY, ok := c.world.CurrentPlayerY()
	if !ok || !gamemath.Finite(playerY) {
		return
	}
	c.generating = true
	defer func() { c.generating = false }()

	bounds := BoundsOf(c.world)
	c.planner.SetBounds(bounds)
	c.validator.SetBounds(bounds)

	generated := 0
	for c.needsMore(playerY) {
		if generated >= c.perTickCap {
			c.capHit(tick)
			break
		}
		c.generateOne(tick, bounds)
		generated++
	}
	c.stats.LastTickGenerated = generated
	c.stats.MaxTickGenerated = max(c.stats.MaxTickGenerated, generated)

	c.cleanup(playerY)
	c.recorder.ActiveSlots(len(c.slots))
}

// needsMore reports whether fewer than MinSlotsAhead slots lie above the
// player or the stack does not yet reach LookaheadDistance above them.
func (c *Coordinator) needsMore(playerY float64) bool {
	if len(c.slots) == 0 {
		return true
	}
	ahead := 0
	for i := len(c.slots) - 1; i >= 0; i-- {
		if c.slots[i].YEnd >= playerY {
			break
		}
		ahead++
	}
	if ahead < c.cfg.MinSlotsAhead {
		return true
	}
	return c.slots[len(c.slots)-1].YEnd > playerY-c.cfg.LookaheadDistance
}

func (c *Coordinator) generateOne(tick int, bounds Bounds) {
	slot := c.planner.NextSlot(c.nextIndex)

	if n := len(c.slots); n > 0 {
		expected := c.slots[n-1].YEnd - c.cfg.InterSlotGap
		if !gamemath.NearlyEqual(slot.YStart, expected, c.cfg.StackTolerance) {
			Logf("Warning: slot %d starts at %.3f, expected %.3f; realigning", slot.Index, slot.YStart, expected)
			shiftSlot(&slot, expected-slot.YStart)
			c.planner.AlignCursor(slot.YEnd)
			c.recorder.DriftCorrected()
		}
	}

	ctx := GenerateContext{
		Slot:   slot,
		Tier:   c.tiers.At(slot.Tier),
		Bounds: bounds,
		Tick:   tick,
	}
	slot.Content = c.strategies[slot.Type].Generate(ctx)

	c.slots = append(c.slots, slot)
	c.nextIndex++
	c.stats.Generated++
	c.recorder.SlotGenerated(slot.Type)
}

// shiftSlot moves a planned slot and its internal layout vertically.
func shiftSlot(s *leveldata.Slot, dy float64) {
	s.YStart += dy
	s.YEnd += dy
	platforms := make([]leveldata.PlannedPlatform, len(s.Layout.Platforms))
	for i, p := range s.Layout.Platforms {
		p.Y += dy
		platforms[i] = p
	}
	s.Layout.Platforms = platforms
}

func (c *Coordinator) capHit(tick int) {
	c.recorder.CapHit()
	if c.warnedCap && tick-c.lastCapWarn < c.cfg.CapWarnInterval {
		return
	}
	c.warnedCap = true
	c.lastCapWarn = tick
	Logf("Warning: generation cap of %d slots reached at tick %d", c.perTickCap, tick)
}

// RetreatHorizon is the y below which content can be removed: TrailingDistance
// under the player, or HazardMargin above a rising hazard when that is
// further down.
func (c *Coordinator) RetreatHorizon(playerY float64) float64 {
	horizon := playerY + c.cfg.TrailingDistance
	if hz := c.world.Hazard(); hz.Rising && gamemath.Finite(hz.Y) {
		horizon = max(horizon, hz.Y-c.cfg.HazardMargin)
	}
	return horizon
}

func (c *Coordinator) cleanup(playerY float64) {
	horizon := c.RetreatHorizon(playerY)

	removed := 0
	for removed < len(c.slots) && c.slots[removed].YEnd > horizon {
		c.despawnSlot(&c.slots[removed])
		removed++
	}
	if removed > 0 {
		clear(c.slots[:removed])
		c.slots = c.slots[removed:]
		c.recorder.SlotsCleaned(removed)
	}

	c.validator.Prune(horizon)
	c.items.Prune(horizon)
}

// despawnSlot releases a slot's placements, riders before what they stand on.
func (c *Coordinator) despawnSlot(s *leveldata.Slot) {
	for i := len(s.Content) - 1; i >= 0; i-- {
		if h := s.Content[i].Handle; h != leveldata.NoHandle {
			c.pool.Despawn(h)
		}
	}
	s.Content = nil
}

// Slots returns a copy of the active slot list, bottom first.
func (c *Coordinator) Slots() []leveldata.Slot {
	out := make([]leveldata.Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Stats returns the generation counters.
func (c *Coordinator) Stats() Stats { return c.stats }

// PerTickCap returns the resolved per-tick generation cap.
func (c *Coordinator) PerTickCap() int { return c.perTickCap }

// Tier returns the tier at the player's current height.
func (c *Coordinator) Tier() config.TierConfig {
	y, ok := c.world.CurrentPlayerY()
	if !ok {
		return c.tiers.At(0)
	}
	return c.tiers.Resolve(c.planner.AscentHeight(y))
}

// AscentHeight converts a world y into height climbed since Reset.
func (c *Coordinator) AscentHeight(y float64) float64 {
	return c.planner.AscentHeight(y)
}

// HighestY returns the top edge of the stack.
func (c *Coordinator) HighestY() float64 {
	if len(c.slots) == 0 {
		return c.planner.Cursor()
	}
	return c.slots[len(c.slots)-1].YEnd
}

// Planner exposes the layout planner, mainly so tools can steer the cursor.
func (c *Coordinator) Planner() *Planner { return c.planner }

// countingRecorder mirrors recorder events into Stats.
type countingRecorder struct {
	Recorder
	stats *Stats
}

func (r *countingRecorder) SlotsCleaned(n int) {
	r.stats.Cleaned += n
	r.Recorder.SlotsCleaned(n)
}

func (r *countingRecorder) CapHit() {
	r.stats.CapHits++
	r.Recorder.CapHit()
}

func (r *countingRecorder) DriftCorrected() {
	r.stats.DriftCorrections++
	r.Recorder.DriftCorrected()
}

func (r *countingRecorder) PoolExhausted(kind leveldata.PlacementKind) {
	r.stats.PoolExhausted++
	r.Recorder.PoolExhausted(kind)
}

func (r *countingRecorder) PlacementRejected() {
	r.stats.Rejections++
	r.Recorder.PlacementRejected()
}

func (r *countingRecorder) FallbackUsed() {
	r.stats.FallbackSlots++
	r.Recorder.FallbackUsed()
}
