package factory

import (
	"github.com/automoto/skyclimb/archetypes"
	"github.com/automoto/skyclimb/components"
	cfg "github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

// CreateClimber spawns the climber with its feet at y.
func CreateClimber(w donburi.World, x, y float64) *donburi.Entry {
	climber := archetypes.Climber.Spawn(w)
	attachObject(w, climber, x, y-cfg.Sim.ClimberHeight/2, cfg.Sim.ClimberWidth, cfg.Sim.ClimberHeight, tags.ResolvClimber)
	components.Climber.SetValue(climber, components.ClimberData{Speed: cfg.Sim.ClimbSpeed})
	return climber
}

// CreateHazard spawns the rising hazard spanning the level width with its
// surface at y.
func CreateHazard(w donburi.World, width, y float64) *donburi.Entry {
	const depth = 32
	hazard := archetypes.Hazard.Spawn(w)
	attachObject(w, hazard, width/2, y+depth/2, width, depth, tags.ResolvHazard)
	components.Hazard.SetValue(hazard, components.HazardData{
		DelayTicks: cfg.Sim.HazardDelayTicks,
		Lag:        cfg.Sim.HazardLag,
	})
	return hazard
}
