package systems

import (
	"github.com/automoto/skyclimb/components"
	"github.com/yohamta/donburi"
)

// UpdateMovingPlatforms advances each moving platform's tween by one tick
// and restarts it at the end of a round trip.
func UpdateMovingPlatforms(w donburi.World) {
	for e := range components.Motion.Iter(w) {
		m := components.Motion.Get(e)
		if m.Tween == nil {
			continue
		}
		x, _, seqDone := m.Tween.Update(1)
		components.Object.Get(e).X = float64(x)
		if seqDone {
			m.Tween.Reset()
		}
	}
}
