package levelgen

import (
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// PlatformStrategy fills PlatformBatch and SafeZone slots.
type PlatformStrategy struct {
	cfg       config.GenerationConfig
	pool      Pool
	rng       RNG
	validator *Validator
	items     *ItemSpawner
	recorder  Recorder
	speed     *SpeedVariation
}

// NewPlatformStrategy wires a platform strategy to its collaborators.
func NewPlatformStrategy(cfg config.GenerationConfig, pool Pool, rng RNG, validator *Validator, items *ItemSpawner, recorder Recorder, speed *SpeedVariation) *PlatformStrategy {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &PlatformStrategy{
		cfg:       cfg,
		pool:      pool,
		rng:       rng,
		validator: validator,
		items:     items,
		recorder:  recorder,
		speed:     speed,
	}
}

// candidate is a platform position that passed validation.
type candidate struct {
	x      float64
	moving bool
	motion leveldata.MotionPolicy
	box    gamemath.Rect
}

func (s *PlatformStrategy) Generate(ctx GenerateContext) []leveldata.Placement {
	slot := ctx.Slot
	b := ctx.Bounds
	if !s.finiteLayout(slot, b) {
		Logf("Warning: slot %d has non-finite geometry, leaving it empty", slot.Index)
		return nil
	}

	tier := ctx.Tier
	safe := slot.Type == leveldata.SafeZone
	tutorial := slot.Index < s.cfg.TutorialSlotCount
	movingAllowed := !safe && !tier.Platform.StaticOnly

	var out []leveldata.Placement
	platforms, moving, enemies := 0, 0, 0

	for row, planned := range slot.Layout.Platforms {
		wantMoving := movingAllowed && moving < s.cfg.MaxMovingPerSlot &&
			s.rng.Float64() < tier.Platform.MovingChance

		c, ok := s.place(planned, wantMoving, b)
		if !ok && wantMoving {
			c, ok = s.place(planned, false, b)
		}
		if !ok {
			s.recorder.PlacementRejected()
			continue
		}

		speed := 0.0
		if c.moving {
			speed = tier.Platform.MovingSpeed * s.speed.Factor(slot.Index, row)
		}

		h, spawned := s.pool.SpawnPlatform(c.x, planned.Y, planned.Width, c.moving, speed, c.motion)
		if !spawned {
			Logf("Warning: pool exhausted spawning platform in slot %d row %d, using center column", slot.Index, row)
			s.recorder.PoolExhausted(leveldata.KindPlatform)

			c = candidate{
				x:   b.CenterX(),
				box: gamemath.Rect{X: b.CenterX(), Y: planned.Y, Width: planned.Width, Height: s.cfg.PlatformHeight},
			}
			speed = 0
			h, spawned = s.pool.SpawnPlatform(c.x, planned.Y, planned.Width, false, 0, leveldata.MotionPolicy{})
			if !spawned {
				continue
			}
		}

		s.validator.Add(c.box)
		out = append(out, leveldata.Placement{
			Record: leveldata.PlacementRecord{
				Kind:   leveldata.KindPlatform,
				X:      c.x,
				Y:      planned.Y,
				Width:  planned.Width,
				Height: s.cfg.PlatformHeight,
				Moving: c.moving,
				Speed:  speed,
				Motion: c.motion,
			},
			Handle: h,
		})
		platforms++
		if c.moving {
			moving++
		}

		// Riders only on static platforms.
		if !c.moving && !safe && !tutorial && enemies < tier.Enemies.MaxPerSlot {
			if kind := pickEnemy(s.rng, tier); kind != leveldata.ActorNone {
				if p, ok := spawnRider(s.pool, s.recorder, kind, c.x, planned.Y, s.cfg.PlatformHeight, h); ok {
					out = append(out, p)
					enemies++
				}
			}
		}

		itemY := planned.Y - s.cfg.PlatformHeight/2 - s.cfg.ItemLift
		if p, ok := s.items.TrySpawn(c.x, itemY, tier, ctx.Tick); ok {
			out = append(out, p)
		}
	}

	if platforms == 0 {
		out = append(out, s.forceLayout(slot, tier, b)...)
	}
	return out
}

// place finds a valid position for a planned platform, nudging it toward the
// center column on each retry.
func (s *PlatformStrategy) place(planned leveldata.PlannedPlatform, moving bool, b Bounds) (candidate, bool) {
	center := b.CenterX()
	for attempt := 0; attempt <= s.cfg.MaxPlacementRetries; attempt++ {
		x := nudgeToward(planned.X, center, float64(attempt)*s.cfg.RetryNudge)

		c := candidate{
			x:   x,
			box: gamemath.Rect{X: x, Y: planned.Y, Width: planned.Width, Height: s.cfg.PlatformHeight},
		}
		if moving {
			c.moving = true
			c.motion = s.motionFor(x, planned.Width, b)
			c.box.X = (c.motion.Min + c.motion.Max) / 2
			c.box.Width = c.motion.Max - c.motion.Min + planned.Width
		}

		if s.validator.IsValid(c.box.X, c.box.Y, c.box.Width) {
			return c, true
		}
		if x == center {
			break
		}
	}
	return candidate{}, false
}

// motionFor is the horizontal travel of a moving platform centered at x,
// limited by the walls.
func (s *PlatformStrategy) motionFor(x, width float64, b Bounds) leveldata.MotionPolicy {
	lo := b.MinX() + width/2
	hi := b.MaxX() - width/2
	return leveldata.MotionPolicy{
		Axis: leveldata.AxisX,
		Min:  gamemath.Clamp(x-s.cfg.MovingTravel, lo, x),
		Max:  gamemath.Clamp(x+s.cfg.MovingTravel, x, hi),
	}
}

// forceLayout is the structural floor: one static platform on the center
// column for every planned row, bypassing the validator.
func (s *PlatformStrategy) forceLayout(slot leveldata.Slot, tier config.TierConfig, b Bounds) []leveldata.Placement {
	Logf("Warning: slot %d produced no platforms, forcing center column layout", slot.Index)
	s.recorder.FallbackUsed()

	rows := slot.Layout.Platforms
	if len(rows) == 0 {
		rows = []leveldata.PlannedPlatform{{
			X:     b.CenterX(),
			Y:     slot.YStart - slot.Height/2,
			Width: tier.Platform.Width,
		}}
	}

	var out []leveldata.Placement
	for _, planned := range rows {
		width := min(planned.Width, b.InnerWidth())
		if width <= 0 {
			width = planned.Width
		}
		x := b.CenterX()
		h, ok := s.pool.SpawnPlatform(x, planned.Y, width, false, 0, leveldata.MotionPolicy{})
		if !ok {
			Logf("Warning: pool exhausted forcing platform in slot %d", slot.Index)
			s.recorder.PoolExhausted(leveldata.KindPlatform)
			continue
		}
		s.validator.Add(gamemath.Rect{X: x, Y: planned.Y, Width: width, Height: s.cfg.PlatformHeight})
		out = append(out, leveldata.Placement{
			Record: leveldata.PlacementRecord{
				Kind:   leveldata.KindPlatform,
				X:      x,
				Y:      planned.Y,
				Width:  width,
				Height: s.cfg.PlatformHeight,
			},
			Handle: h,
		})
	}
	return out
}

func (s *PlatformStrategy) finiteLayout(slot leveldata.Slot, b Bounds) bool {
	if !gamemath.Finite(slot.YStart, slot.YEnd, b.PlayableWidth, b.WallClearance) {
		return false
	}
	for _, p := range slot.Layout.Platforms {
		if !gamemath.Finite(p.X, p.Y, p.Width) {
			return false
		}
	}
	return true
}

// nudgeToward moves x toward target by at most step.
func nudgeToward(x, target, step float64) float64 {
	if x < target {
		return min(x+step, target)
	}
	return max(x-step, target)
}
