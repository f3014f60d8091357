package components

import "github.com/yohamta/donburi"

// ClimberData is the automated climber the generator follows.
type ClimberData struct {
	Speed    float64 // Pixels climbed per tick
	Coins    int
	Powerups int
}

var Climber = donburi.NewComponentType[ClimberData]()
