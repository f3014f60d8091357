package systems

import (
	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

// UpdateClimber moves the climber up by its speed.
func UpdateClimber(w donburi.World) {
	for e := range tags.Climber.Iter(w) {
		c := components.Climber.Get(e)
		components.Object.Get(e).Y -= c.Speed
	}
}

// ClimberY returns the y of the climber's feet.
func ClimberY(w donburi.World) (float64, bool) {
	e, ok := tags.Climber.First(w)
	if !ok {
		return 0, false
	}
	o := components.Object.Get(e)
	return o.Y + o.H/2, true
}
