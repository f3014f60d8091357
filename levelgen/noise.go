package levelgen

import (
	"github.com/aquilax/go-perlin"
	"github.com/automoto/skyclimb/shared/gamemath"
)

const (
	noiseAlpha  = 2
	noiseBeta   = 2
	noiseOctave = 3

	// Lattice steps; integer lattice points are always zero in Perlin noise.
	noiseSlotStep = 0.37
	noiseRowStep  = 0.61
)

// SpeedVariation spreads moving platform speeds smoothly across slots so
// neighbouring platforms feel related but not identical.
type SpeedVariation struct {
	noise     *perlin.Perlin
	amplitude float64
}

// NewSpeedVariation creates a seeded variation source. Factor stays within
// [1-amplitude, 1+amplitude].
func NewSpeedVariation(seed int64, amplitude float64) *SpeedVariation {
	return &SpeedVariation{
		noise:     perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed),
		amplitude: max(0, amplitude),
	}
}

// Factor returns the speed multiplier for a platform row of a slot.
func (s *SpeedVariation) Factor(slotIndex, row int) float64 {
	if s == nil || s.amplitude == 0 {
		return 1
	}
	n := s.noise.Noise2D(float64(slotIndex)*noiseSlotStep+0.5, float64(row)*noiseRowStep+0.5)
	return 1 + s.amplitude*gamemath.Clamp(n, -1, 1)
}
