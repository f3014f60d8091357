package systems

import (
	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

// CollectItems marks items the climber touches as collected and returns
// their entries. Collected items stay in the world until their owner
// despawns them.
func CollectItems(w donburi.World) []*donburi.Entry {
	climberEntry, ok := tags.Climber.First(w)
	if !ok {
		return nil
	}
	climber := components.Object.Get(climberEntry)
	if climber.Object == nil {
		return nil
	}

	check := climber.Object.Check(0, 0, tags.ResolvItem)
	if check == nil {
		return nil
	}

	box := climber.Rect()
	stats := components.Climber.Get(climberEntry)
	var collected []*donburi.Entry
	for _, obj := range check.ObjectsByTags(tags.ResolvItem) {
		e, ok := obj.Data.(*donburi.Entry)
		if !ok || !e.Valid() || !e.HasComponent(components.Item) {
			continue
		}
		item := components.Item.Get(e)
		if item.Collected || !box.Overlaps(components.Object.Get(e).Rect()) {
			continue
		}
		item.Collected = true
		if item.Kind == leveldata.ItemPowerup {
			stats.Powerups++
		} else {
			stats.Coins++
		}
		collected = append(collected, e)
	}
	return collected
}
