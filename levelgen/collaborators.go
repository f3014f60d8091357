// Package levelgen plans and materializes the endless stack of slots a
// climber ascends through. It knows nothing about rendering or physics: every
// object it creates goes through the Pool it is given, and everything it
// needs to know about the world comes from a WorldQuery.
package levelgen

import "github.com/automoto/skyclimb/shared/leveldata"

// Handle identifies an object materialized by a Pool.
type Handle = leveldata.Handle

// Pool materializes placements. A false ok means the pool is exhausted; the
// generator treats that as an expected outcome.
type Pool interface {
	SpawnPlatform(x, y, width float64, moving bool, speed float64, motion leveldata.MotionPolicy) (Handle, bool)
	SpawnWall(x, y, width, height float64) (Handle, bool)
	SpawnActor(kind leveldata.ActorKind, x, y float64, anchor Handle) (Handle, bool)
	Despawn(h Handle)
}

// HazardState is the rising hazard as seen by the generator.
type HazardState struct {
	Y      float64
	Rising bool
}

// WorldQuery answers the few questions the generator asks about the world.
type WorldQuery interface {
	PlayableWidth() float64
	WallClearance() float64
	// CurrentPlayerY returns false when there is no player to follow.
	CurrentPlayerY() (float64, bool)
	Hazard() HazardState
}

// Bounds is the horizontal space available to placements.
type Bounds struct {
	PlayableWidth float64
	WallClearance float64
}

// BoundsOf snapshots the bounds reported by a world.
func BoundsOf(w WorldQuery) Bounds {
	return Bounds{PlayableWidth: w.PlayableWidth(), WallClearance: w.WallClearance()}
}

// MinX is the leftmost x a placement edge may reach.
func (b Bounds) MinX() float64 { return b.WallClearance }

// MaxX is the rightmost x a placement edge may reach.
func (b Bounds) MaxX() float64 { return b.PlayableWidth - b.WallClearance }

// CenterX is the center column.
func (b Bounds) CenterX() float64 { return b.PlayableWidth / 2 }

// InnerWidth is the width between the clearances, never negative.
func (b Bounds) InnerWidth() float64 {
	if w := b.MaxX() - b.MinX(); w > 0 {
		return w
	}
	return 0
}
