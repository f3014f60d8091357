package factory

import (
	"github.com/automoto/skyclimb/archetypes"
	"github.com/automoto/skyclimb/components"
	cfg "github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/tags"
	"github.com/yohamta/donburi"
)

func CreateItem(w donburi.World, kind leveldata.ActorKind, x, y float64) *donburi.Entry {
	size := cfg.Items.CoinSize
	if kind == leveldata.ItemPowerup {
		size = cfg.Items.PowerupSize
	}

	item := archetypes.Item.Spawn(w)
	attachObject(w, item, x, y, size, size, tags.ResolvItem)
	components.Pooled.SetValue(item, components.PooledData{Kind: leveldata.KindItem})
	components.Item.SetValue(item, components.ItemData{Kind: kind})
	return item
}
