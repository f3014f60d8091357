package factory

import (
	"github.com/automoto/skyclimb/archetypes"
	"github.com/automoto/skyclimb/components"
	cfg "github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

// CreateEnemy spawns an enemy centered on (x, y), riding the surface
// identified by platform. left and right bound its patrol; pass equal values for an
// enemy that stays put.
func CreateEnemy(w donburi.World, kind leveldata.ActorKind, x, y float64, platform leveldata.Handle, left, right float64) *donburi.Entry {
	enemyType, exists := cfg.EnemyTypes[kind]
	if !exists {
		kind = leveldata.EnemyPatrol
		enemyType = cfg.EnemyTypes[kind] // Fallback to default
	}

	enemy := archetypes.Enemy.Spawn(w)
	attachObject(w, enemy, x, y, enemyType.Width, enemyType.Height, tags.ResolvEnemy)
	components.Pooled.SetValue(enemy, components.PooledData{Kind: leveldata.KindEnemy})

	enemyData := components.EnemyData{
		Kind:        kind,
		TypeConfig:  &enemyType,
		Platform:    platform,
		Direction:   -1, // Start facing left
		PatrolLeft:  min(left, x),
		PatrolRight: max(right, x),
		GroundY:     y,
	}
	if enemyType.PatrolSpeed <= 0 {
		enemyData.PatrolLeft, enemyData.PatrolRight = x, x
	}
	components.Enemy.SetValue(enemy, enemyData)

	return enemy
}
