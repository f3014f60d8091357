package gamemath

import "math"

// Rect is an axis-aligned box given by its center and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the x of the left edge.
func (r Rect) Left() float64 { return r.X - r.Width/2 }

// Right returns the x of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width/2 }

// Top returns the y of the top edge (Y grows downward).
func (r Rect) Top() float64 { return r.Y - r.Height/2 }

// Bottom returns the y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height/2 }

// Overlaps reports whether two boxes intersect with positive area.
// Touching edges do not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Clamp clamps v to [lo, hi]. If the interval is empty the midpoint is returned.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CeilToMultiple rounds v up to the next multiple of step. A non-positive
// step returns v unchanged.
func CeilToMultiple(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step-1e-9) * step
}

// SnapToGrid rounds v to the nearest multiple of tile, never below one tile
// for positive input.
func SnapToGrid(v, tile float64) float64 {
	if tile <= 0 {
		return v
	}
	snapped := math.Round(v/tile) * tile
	if v > 0 && snapped < tile {
		return tile
	}
	return snapped
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NearlyEqual compares two floats within tolerance.
func NearlyEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
