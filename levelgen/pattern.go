package levelgen

import (
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// TransformMode selects how a pattern is mirrored before use.
type TransformMode int

const (
	TransformNone TransformMode = iota
	MirrorX
	MirrorY
	MirrorXY
)

func (m TransformMode) String() string {
	switch m {
	case TransformNone:
		return "none"
	case MirrorX:
		return "mirror_x"
	case MirrorY:
		return "mirror_y"
	case MirrorXY:
		return "mirror_xy"
	default:
		return "unknown"
	}
}

// Transform returns a mirrored copy of p. MirrorX reflects x around the
// pattern's reference width. MirrorY reflects y around the pattern's own
// vertical midpoint and reverses the offsets so they stay ordered top to
// bottom. Both are involutions, exactly for integer offsets and up to
// rounding otherwise.
func Transform(p leveldata.Pattern, mode TransformMode) leveldata.Pattern {
	out := p.Clone()
	if mode == MirrorX || mode == MirrorXY {
		for i := range out.Offsets {
			out.Offsets[i].X = p.Width - out.Offsets[i].X
		}
	}
	if (mode == MirrorY || mode == MirrorXY) && len(out.Offsets) > 0 {
		minY, maxY := out.Offsets[0].Y, out.Offsets[0].Y
		for _, o := range out.Offsets {
			minY = min(minY, o.Y)
			maxY = max(maxY, o.Y)
		}
		n := len(out.Offsets)
		flipped := make([]leveldata.Offset, n)
		for i, o := range out.Offsets {
			flipped[n-1-i] = leveldata.Offset{X: o.X, Y: minY + maxY - o.Y}
		}
		out.Offsets = flipped
	}
	return out
}

// Weighted is one option of a weighted draw.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedIndex draws an index with probability proportional to its weight.
// Non-positive weights are never drawn; if no weight is positive the first
// index is returned. An empty list returns -1.
func WeightedIndex(rng RNG, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}

	r := rng.Float64() * total
	last := 0
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if r < cumulative {
			return i
		}
	}
	return last
}

// WeightedPick draws one option's value. See WeightedIndex for the edge cases.
func WeightedPick[T any](rng RNG, options []Weighted[T]) T {
	weights := make([]float64, len(options))
	for i, o := range options {
		weights[i] = o.Weight
	}
	i := WeightedIndex(rng, weights)
	if i < 0 {
		var zero T
		return zero
	}
	return options[i].Value
}

// PickTransform draws a transform mode from the configured weights.
func PickTransform(rng RNG, w config.TransformWeights) TransformMode {
	return WeightedPick(rng, []Weighted[TransformMode]{
		{Value: TransformNone, Weight: w.None},
		{Value: MirrorX, Weight: w.MirrorX},
		{Value: MirrorY, Weight: w.MirrorY},
		{Value: MirrorXY, Weight: w.MirrorXY},
	})
}

// ClampToBounds keeps every offset's x far enough from the walls that a
// placement of the given half-width fits. Y is untouched. When the bounds are
// too narrow every x collapses to the center column.
func ClampToBounds(p leveldata.Pattern, b Bounds, halfWidth float64) leveldata.Pattern {
	out := p.Clone()
	lo := b.MinX() + halfWidth
	hi := b.MaxX() - halfWidth
	for i := range out.Offsets {
		if lo > hi {
			out.Offsets[i].X = b.CenterX()
			continue
		}
		out.Offsets[i].X = gamemath.Clamp(out.Offsets[i].X, lo, hi)
	}
	return out
}

// ScaleToWidth maps a pattern authored for its reference width onto the
// playable width, keeping it centered.
func ScaleToWidth(p leveldata.Pattern, width float64) leveldata.Pattern {
	out := p.Clone()
	out.Width = width
	if p.Width <= 0 {
		for i := range out.Offsets {
			out.Offsets[i].X = width / 2
		}
		return out
	}
	scale := width / p.Width
	for i := range out.Offsets {
		out.Offsets[i].X = width/2 + (p.Offsets[i].X-p.Width/2)*scale
	}
	return out
}
