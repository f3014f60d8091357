package components

import "github.com/yohamta/donburi"

// HazardData is the rising floor chasing the climber.
type HazardData struct {
	Rising     bool
	DelayTicks int     // Ticks left before it starts rising
	Lag        float64 // Max distance below the climber
}

var Hazard = donburi.NewComponentType[HazardData]()
