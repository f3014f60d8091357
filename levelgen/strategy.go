package levelgen

import (
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// GenerateContext is the read-only input of a content strategy.
type GenerateContext struct {
	Slot   leveldata.Slot
	Tier   config.TierConfig
	Bounds Bounds
	Tick   int
}

// Strategy turns a planned slot into materialized placements.
type Strategy interface {
	Generate(ctx GenerateContext) []leveldata.Placement
}

// pickEnemy splits a single draw into bands of SpawnChance*w/sum(w) for each
// allowed type, in the fixed patrol, shooter, jumper order. A draw past the
// last band means no enemy.
func pickEnemy(rng RNG, tier config.TierConfig) leveldata.ActorKind {
	e := tier.Enemies
	if e.SpawnChance <= 0 || len(e.Types) == 0 {
		return leveldata.ActorNone
	}

	total := 0.0
	for _, kind := range leveldata.EnemyKinds {
		if tier.Allows(kind) {
			total += max(0, e.Distribution[kind])
		}
	}
	if total <= 0 {
		return leveldata.ActorNone
	}

	r := rng.Float64()
	threshold := 0.0
	for _, kind := range leveldata.EnemyKinds {
		if !tier.Allows(kind) {
			continue
		}
		threshold += e.SpawnChance * max(0, e.Distribution[kind]) / total
		if r < threshold {
			return kind
		}
	}
	return leveldata.ActorNone
}

// spawnRider places an enemy standing on top of a surface whose center is
// at (x, surfaceY) with the given thickness.
func spawnRider(pool Pool, recorder Recorder, kind leveldata.ActorKind, x, surfaceY, thickness float64, anchor Handle) (leveldata.Placement, bool) {
	enemy := config.EnemyTypes[kind]
	y := surfaceY - thickness/2 - enemy.Height/2

	h, ok := pool.SpawnActor(kind, x, y, anchor)
	if !ok {
		Logf("Warning: pool exhausted spawning %s enemy at (%.1f, %.1f)", kind, x, y)
		recorder.PoolExhausted(leveldata.KindEnemy)
		return leveldata.Placement{}, false
	}
	return leveldata.Placement{
		Record: leveldata.PlacementRecord{
			Kind:   leveldata.KindEnemy,
			Actor:  kind,
			X:      x,
			Y:      y,
			Width:  enemy.Width,
			Height: enemy.Height,
		},
		Handle: h,
	}, true
}
