package archetypes

import (
	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

var (
	Platform = newArchetype(
		tags.Platform,
		components.Object,
		components.Pooled,
	)
	MovingPlatform = newArchetype(
		tags.Platform,
		tags.MovingPlatform,
		components.Object,
		components.Pooled,
		components.Motion,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
		components.Pooled,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Object,
		components.Pooled,
	)
	Item = newArchetype(
		tags.Item,
		components.Item,
		components.Object,
		components.Pooled,
	)
	Climber = newArchetype(
		tags.Climber,
		components.Climber,
		components.Object,
	)
	Hazard = newArchetype(
		tags.Hazard,
		components.Hazard,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus any extra ones.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
