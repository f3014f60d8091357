package factory

import (
	"github.com/automoto/skyclimb/archetypes"
	"github.com/automoto/skyclimb/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateSpace creates the collision space. offsetY maps world y to space y.
// The size is rounded up to whole cells so nothing near the far edges falls
// outside the grid.
func CreateSpace(w donburi.World, width, height, cellWidth, cellHeight int, offsetY float64) *donburi.Entry {
	width = roundUp(width, cellWidth)
	height = roundUp(height, cellHeight)

	space := archetypes.Space.Spawn(w)
	components.Space.SetValue(space, components.SpaceData{
		Space:       resolv.NewSpace(width, height, cellWidth, cellHeight),
		PixelHeight: float64(height),
		OffsetY:     offsetY,
	})
	return space
}

func roundUp(v, step int) int {
	if step <= 0 {
		return v
	}
	return (v + step - 1) / step * step
}

// attachObject gives an entity a world box centered on (x, y) and a matching
// collision object in the space.
func attachObject(w donburi.World, e *donburi.Entry, x, y, width, height float64, resolvTags ...string) *components.ObjectData {
	obj := resolv.NewObject(x-width/2, y-height/2, width, height, resolvTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	obj.Data = e // Link for O(1) lookup

	if spaceEntry, ok := components.Space.First(w); ok {
		space := components.Space.Get(spaceEntry)
		obj.Y = space.ToSpace(obj.Y)
		space.Add(obj)
	}

	components.Object.SetValue(e, components.ObjectData{X: x, Y: y, W: width, H: height, Object: obj})
	return components.Object.Get(e)
}

// RemoveObject takes an entity's collision object out of the space.
func RemoveObject(w donburi.World, e *donburi.Entry) {
	if !e.HasComponent(components.Object) {
		return
	}
	obj := components.Object.Get(e).Object
	if obj == nil {
		return
	}
	if spaceEntry, ok := components.Space.First(w); ok {
		components.Space.Get(spaceEntry).Remove(obj)
	}
}
