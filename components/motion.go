package components

import (
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// MotionData drives a moving platform along its policy axis. Tween yields
// the platform's center x, one unit of time per tick.
type MotionData struct {
	Policy leveldata.MotionPolicy
	Speed  float64
	Tween  *gween.Sequence
}

var Motion = donburi.NewComponentType[MotionData]()
