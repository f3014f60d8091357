package factory

import (
	"github.com/automoto/skyclimb/archetypes"
	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

// CreateWall spawns a maze wall segment centered on (x, y).
func CreateWall(w donburi.World, x, y, width, height float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(w)
	attachObject(w, wall, x, y, width, height, tags.ResolvSolid, tags.ResolvWall)
	components.Pooled.SetValue(wall, components.PooledData{Kind: leveldata.KindWallSegment})
	return wall
}
