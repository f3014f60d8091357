package systems

import (
	"github.com/automoto/skyclimb/components"
	"github.com/yohamta/donburi"
)

// hopTicks is how long a jumper stays in the air.
const hopTicks = 30

// UpdateEnemies runs the per-kind enemy behaviour: patrols walk between
// their bounds, shooters count shots, jumpers hop in place.
func UpdateEnemies(w donburi.World) {
	for e := range components.Enemy.Iter(w) {
		enemy := components.Enemy.Get(e)
		obj := components.Object.Get(e)
		t := enemy.TypeConfig
		if t == nil {
			continue
		}

		if t.PatrolSpeed > 0 && enemy.PatrolRight > enemy.PatrolLeft {
			obj.X += enemy.Direction * t.PatrolSpeed
			if obj.X <= enemy.PatrolLeft {
				obj.X = enemy.PatrolLeft
				enemy.Direction = 1
			} else if obj.X >= enemy.PatrolRight {
				obj.X = enemy.PatrolRight
				enemy.Direction = -1
			}
		}

		switch {
		case t.FireRate > 0:
			enemy.Timer++
			if enemy.Timer >= t.FireRate {
				enemy.Timer = 0
				enemy.Shots++
			}
		case t.JumpRate > 0:
			enemy.Timer++
			if enemy.Timer >= t.JumpRate {
				enemy.Timer = 0
			}
			obj.Y = enemy.GroundY - hopHeight(enemy.Timer, min(hopTicks, t.JumpRate), t.JumpHeight)
		}
	}
}

// hopHeight is a parabola peaking at height halfway through the hop.
func hopHeight(timer, duration int, height float64) float64 {
	if duration <= 0 || timer >= duration {
		return 0
	}
	p := float64(timer) / float64(duration)
	return height * 4 * p * (1 - p)
}
