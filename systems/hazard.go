package systems

import (
	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

// UpdateHazard counts down the hazard's delay, then raises it by speed per
// tick. It never trails the climber by more than its lag.
func UpdateHazard(w donburi.World, speed float64) {
	e, ok := tags.Hazard.First(w)
	if !ok {
		return
	}
	h := components.Hazard.Get(e)
	o := components.Object.Get(e)

	if !h.Rising {
		if h.DelayTicks > 0 {
			h.DelayTicks--
			return
		}
		h.Rising = true
	}

	o.Y -= speed
	if climberY, ok := ClimberY(w); ok && h.Lag > 0 {
		if surface := o.Y - o.H/2; surface > climberY+h.Lag {
			o.Y = climberY + h.Lag + o.H/2
		}
	}
}

// HazardSurface returns the y of the hazard's top edge and whether it has
// started rising.
func HazardSurface(w donburi.World) (float64, bool, bool) {
	e, ok := tags.Hazard.First(w)
	if !ok {
		return 0, false, false
	}
	o := components.Object.Get(e)
	return o.Y - o.H/2, components.Hazard.Get(e).Rising, true
}
