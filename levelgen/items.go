package levelgen

import (
	"math"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// ItemSpawner places coins and powerups, spacing them out by height, time
// and distance. Both content strategies share one spawner.
type ItemSpawner struct {
	cfg      config.GenerationConfig
	sizes    config.ItemConfig
	pool     Pool
	rng      RNG
	recorder Recorder

	originY float64

	hasItem        bool
	lastItemAscent float64

	hasPowerup        bool
	lastPowerupAscent float64
	lastPowerupTick   int

	recent []leveldata.Offset
}

// NewItemSpawner creates a spawner with its height origin at y = 0.
func NewItemSpawner(cfg config.GenerationConfig, sizes config.ItemConfig, pool Pool, rng RNG, recorder Recorder) *ItemSpawner {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &ItemSpawner{cfg: cfg, sizes: sizes, pool: pool, rng: rng, recorder: recorder}
}

// Reset forgets every cooldown and moves the height origin.
func (s *ItemSpawner) Reset(originY float64) {
	s.originY = originY
	s.hasItem = false
	s.hasPowerup = false
	s.lastItemAscent = 0
	s.lastPowerupAscent = 0
	s.lastPowerupTick = 0
	s.recent = s.recent[:0]
}

// TrySpawn attempts to place an item centered at (x, y). Powerups are tried
// before coins.
func (s *ItemSpawner) TrySpawn(x, y float64, tier config.TierConfig, tick int) (leveldata.Placement, bool) {
	if !gamemath.Finite(x, y) {
		return leveldata.Placement{}, false
	}

	ascent := max(0, s.originY-y)
	if s.hasItem && math.Abs(ascent-s.lastItemAscent) < s.cfg.ItemHeightCooldown {
		return leveldata.Placement{}, false
	}
	for _, o := range s.recent {
		if math.Hypot(o.X-x, o.Y-y) < s.cfg.MinItemDistance {
			return leveldata.Placement{}, false
		}
	}

	kind := s.pickKind(ascent, tier, tick)
	if kind == leveldata.ActorNone {
		return leveldata.Placement{}, false
	}

	h, ok := s.pool.SpawnActor(kind, x, y, leveldata.NoHandle)
	if !ok {
		Logf("Warning: pool exhausted spawning %s at (%.1f, %.1f)", kind, x, y)
		s.recorder.PoolExhausted(leveldata.KindItem)
		return leveldata.Placement{}, false
	}

	size := s.sizes.CoinSize
	if kind == leveldata.ItemPowerup {
		size = s.sizes.PowerupSize
		s.hasPowerup = true
		s.lastPowerupAscent = ascent
		s.lastPowerupTick = tick
	}
	s.hasItem = true
	s.lastItemAscent = ascent
	s.recent = append(s.recent, leveldata.Offset{X: x, Y: y})

	return leveldata.Placement{
		Record: leveldata.PlacementRecord{
			Kind:   leveldata.KindItem,
			Actor:  kind,
			X:      x,
			Y:      y,
			Width:  size,
			Height: size,
		},
		Handle: h,
	}, true
}

func (s *ItemSpawner) pickKind(ascent float64, tier config.TierConfig, tick int) leveldata.ActorKind {
	m := tier.Mechanics
	if m.Powerups && s.powerupReady(ascent, tick) && s.rng.Float64() < m.PowerupChance {
		return leveldata.ItemPowerup
	}
	if m.Coins && s.rng.Float64() < m.CoinChance {
		return leveldata.ItemCoin
	}
	return leveldata.ActorNone
}

func (s *ItemSpawner) powerupReady(ascent float64, tick int) bool {
	if !s.hasPowerup {
		return true
	}
	return ascent-s.lastPowerupAscent >= s.cfg.PowerupHeightCooldown &&
		tick-s.lastPowerupTick >= s.cfg.PowerupTickCooldown
}

// Prune forgets items below the horizon so they no longer block new ones.
func (s *ItemSpawner) Prune(horizon float64) {
	kept := s.recent[:0]
	for _, o := range s.recent {
		if o.Y <= horizon {
			kept = append(kept, o)
		}
	}
	s.recent = kept
}

// Recent returns the number of items still tracked for spacing.
func (s *ItemSpawner) Recent() int { return len(s.recent) }
