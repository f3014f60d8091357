package systems

import (
	"github.com/automoto/skyclimb/components"
	"github.com/yohamta/donburi"
)

// SyncObjects copies every world box into its collision object.
func SyncObjects(w donburi.World) {
	spaceEntry, ok := components.Space.First(w)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	for e := range components.Object.Iter(w) {
		o := components.Object.Get(e)
		if o.Object == nil {
			continue
		}
		o.Object.X = o.X - o.W/2
		o.Object.Y = space.ToSpace(o.Y - o.H/2)
		o.Object.Update()
	}
}

// RebaseSpace recenters the collision space on focusY once focusY comes
// within margin of the space's top or bottom edge. It reports whether the
// offset changed; callers should SyncObjects afterwards.
func RebaseSpace(w donburi.World, focusY, margin float64) bool {
	spaceEntry, ok := components.Space.First(w)
	if !ok {
		return false
	}
	space := components.Space.Get(spaceEntry)

	y := space.ToSpace(focusY)
	if y >= margin && y <= space.PixelHeight-margin {
		return false
	}
	space.OffsetY += space.PixelHeight/2 - y
	return true
}
