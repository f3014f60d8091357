package components

import (
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/yohamta/donburi"
)

// PooledData marks an entity owned by the level's object pool.
type PooledData struct {
	Handle leveldata.Handle
	Kind   leveldata.PlacementKind
}

var Pooled = donburi.NewComponentType[PooledData]()
