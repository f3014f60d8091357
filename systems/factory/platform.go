package factory

import (
	"github.com/automoto/skyclimb/archetypes"
	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

func CreatePlatform(w donburi.World, x, y, width, height float64) *donburi.Entry {
	platform := archetypes.Platform.Spawn(w)
	attachObject(w, platform, x, y, width, height, tags.ResolvSolid, tags.ResolvPlatform)
	components.Pooled.SetValue(platform, components.PooledData{Kind: leveldata.KindPlatform})
	return platform
}

// CreateMovingPlatform spawns a platform that oscillates between the policy's
// Min and Max at speed pixels per tick, starting from x.
func CreateMovingPlatform(w donburi.World, x, y, width, height, speed float64, policy leveldata.MotionPolicy) *donburi.Entry {
	platform := archetypes.MovingPlatform.Spawn(w)
	attachObject(w, platform, x, y, width, height, tags.ResolvSolid, tags.ResolvPlatform, tags.ResolvMoving)
	components.Pooled.SetValue(platform, components.PooledData{Kind: leveldata.KindPlatform})
	components.Motion.SetValue(platform, components.MotionData{
		Policy: policy,
		Speed:  speed,
		Tween:  newMotionTween(x, policy, speed),
	})
	return platform
}

// newMotionTween builds a Min -> Max -> Min sequence of linear tweens and
// advances it to x. It returns nil when there is nothing to travel.
func newMotionTween(x float64, policy leveldata.MotionPolicy, speed float64) *gween.Sequence {
	span := policy.Max - policy.Min
	if policy.Axis != leveldata.AxisX || span <= 0 || speed <= 0 {
		return nil
	}

	duration := float32(span / speed)
	tw := gween.NewSequence()
	tw.Add(
		gween.New(float32(policy.Min), float32(policy.Max), duration, ease.Linear),
		gween.New(float32(policy.Max), float32(policy.Min), duration, ease.Linear),
	)
	if x > policy.Min {
		tw.Update(float32((min(x, policy.Max) - policy.Min) / speed))
	}
	return tw
}
