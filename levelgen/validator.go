package levelgen

import (
	"math"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/gamemath"
)

// gapSlack absorbs float error when comparing exact grid distances.
const gapSlack = 1e-6

// Validator keeps the boxes of recently placed platforms and rejects
// candidates that would crowd them or leave the bounds.
type Validator struct {
	cfg    config.GenerationConfig
	bounds Bounds
	active []gamemath.Rect
}

// NewValidator creates an empty validator.
func NewValidator(cfg config.GenerationConfig, bounds Bounds) *Validator {
	return &Validator{cfg: cfg, bounds: bounds}
}

// SetBounds updates the horizontal bounds.
func (v *Validator) SetBounds(b Bounds) { v.bounds = b }

// IsValid checks a platform candidate centered at (x, y) against the active
// boxes.
func (v *Validator) IsValid(x, y, width float64) bool {
	return v.IsValidAgainst(x, y, width, v.active)
}

// IsValidAgainst checks a platform candidate against an explicit box list.
func (v *Validator) IsValidAgainst(x, y, width float64, active []gamemath.Rect) bool {
	if !gamemath.Finite(x, y, width) || width <= 0 {
		return false
	}
	if x-width/2 < v.bounds.MinX()-gapSlack || x+width/2 > v.bounds.MaxX()+gapSlack {
		return false
	}

	candidate := gamemath.Rect{X: x, Y: y, Width: width, Height: v.cfg.PlatformHeight}
	for _, r := range active {
		dy := math.Abs(r.Y - y)
		if dy <= v.cfg.SearchRadius {
			if dy < v.cfg.SameLineEpsilon {
				return false
			}
			if dy < v.cfg.MinVerticalGap-gapSlack {
				return false
			}
		}
		if candidate.Overlaps(r) {
			return false
		}
	}
	return true
}

// Add records a placed platform box.
func (v *Validator) Add(r gamemath.Rect) {
	v.active = append(v.active, r)
}

// Prune forgets boxes whose top edge lies below the horizon.
func (v *Validator) Prune(horizon float64) {
	kept := v.active[:0]
	for _, r := range v.active {
		if r.Top() <= horizon {
			kept = append(kept, r)
		}
	}
	clear(v.active[len(kept):])
	v.active = kept
}

// Reset forgets every box.
func (v *Validator) Reset() {
	v.active = v.active[:0]
}

// Len returns the number of active boxes.
func (v *Validator) Len() int { return len(v.active) }
