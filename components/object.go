package components

import (
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData is an entity's box in world coordinates, centered on (X, Y).
// Object holds the same box in collision space coordinates.
type ObjectData struct {
	X, Y   float64
	W, H   float64
	Object *resolv.Object
}

// Rect returns the world-space box.
func (o *ObjectData) Rect() gamemath.Rect {
	return gamemath.Rect{X: o.X, Y: o.Y, Width: o.W, Height: o.H}
}

var Object = donburi.NewComponentType[ObjectData]()
