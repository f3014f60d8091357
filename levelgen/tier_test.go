package levelgen

import (
	"errors"
	"math"
	"testing"

	"github.com/automoto/skyclimb/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFindsCoveringTier(t *testing.T) {
	r, err := NewTierResolver(config.Tiers)
	require.NoError(t, err)

	tests := []struct {
		height float64
		want   string
	}{
		{0, "Foothills"},
		{1499.9, "Foothills"},
		{1500, "Ledges"},
		{7999, "Cliffs"},
		{8000, "Spires"},
		{19999, "Stormline"},
		{20000, "Summit"},
		{1e12, "Summit"},
		{math.Inf(1), "Summit"},
		{-50, "Foothills"},
		{math.NaN(), "Foothills"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Resolve(tt.height).Name, "height %v", tt.height)
	}
}

func TestResolveIsMonotonic(t *testing.T) {
	r, err := NewTierResolver(config.Tiers)
	require.NoError(t, err)

	prevMax := -1.0
	prevIndex := 0
	for h := 0.0; h < 40000; h += 37 {
		i, tier := r.ResolveIndex(h)
		assert.GreaterOrEqual(t, tier.MaxHeight, prevMax)
		assert.GreaterOrEqual(t, i, prevIndex)
		prevMax, prevIndex = tier.MaxHeight, i
	}
	assert.Equal(t, r.Len()-1, prevIndex)
}

func TestResolveIsPure(t *testing.T) {
	r, err := NewTierResolver(config.Tiers)
	require.NoError(t, err)

	first := r.Resolve(5000)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Resolve(5000))
	}
}

func TestResolverCopiesTable(t *testing.T) {
	table := config.CloneTiers(config.Tiers)
	r, err := NewTierResolver(table)
	require.NoError(t, err)

	table[0].Name = "changed"
	assert.Equal(t, "Foothills", r.Resolve(0).Name)
}

func TestNewTierResolverRejectsInvalidTable(t *testing.T) {
	table := config.CloneTiers(config.Tiers)
	table[2].MinHeight += 100

	_, err := NewTierResolver(table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidTiers))
}

func TestAtClamps(t *testing.T) {
	r, err := NewTierResolver(config.Tiers)
	require.NoError(t, err)

	assert.Equal(t, "Foothills", r.At(-3).Name)
	assert.Equal(t, "Summit", r.At(99).Name)
}
