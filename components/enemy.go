package components

import (
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	Kind       leveldata.ActorKind
	TypeConfig *config.EnemyTypeConfig // Cached reference to type configuration

	// Platform is the handle of the surface the enemy stands on. The level
	// despawns riders together with their surface.
	Platform leveldata.Handle

	Direction   float64 // -1 left, 1 right
	PatrolLeft  float64 // Left boundary for patrol
	PatrolRight float64 // Right boundary for patrol
	GroundY     float64 // Center y while standing

	Timer int // Ticks since the last shot or hop
	Shots int
}

var Enemy = donburi.NewComponentType[EnemyData]()
