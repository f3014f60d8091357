package levelgen

import (
	"fmt"
	"math"
	"sort"

	"github.com/automoto/skyclimb/config"
)

// TierResolver maps an ascent height onto the tier table.
type TierResolver struct {
	tiers []config.TierConfig
}

// NewTierResolver validates and copies the table.
func NewTierResolver(table []config.TierConfig) (*TierResolver, error) {
	if err := config.ValidateTiers(table); err != nil {
		return nil, fmt.Errorf("tier resolver: %w", err)
	}
	return &TierResolver{tiers: config.CloneTiers(table)}, nil
}

// Resolve returns the tier covering height. Heights past the table saturate
// at the last tier; negative or NaN heights get the first.
func (r *TierResolver) Resolve(height float64) config.TierConfig {
	_, t := r.ResolveIndex(height)
	return t
}

// ResolveIndex is Resolve plus the tier's index.
func (r *TierResolver) ResolveIndex(height float64) (int, config.TierConfig) {
	if math.IsNaN(height) || height < 0 {
		return 0, r.tiers[0]
	}
	i := sort.Search(len(r.tiers), func(i int) bool {
		return r.tiers[i].MaxHeight > height
	})
	if i >= len(r.tiers) {
		i = len(r.tiers) - 1
	}
	return i, r.tiers[i]
}

// At returns the tier at index i, clamped to the table.
func (r *TierResolver) At(i int) config.TierConfig {
	if i < 0 {
		i = 0
	}
	if i >= len(r.tiers) {
		i = len(r.tiers) - 1
	}
	return r.tiers[i]
}

// Len returns the number of tiers.
func (r *TierResolver) Len() int { return len(r.tiers) }
