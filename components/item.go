package components

import (
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/yohamta/donburi"
)

type ItemData struct {
	Kind      leveldata.ActorKind
	Collected bool
}

var Item = donburi.NewComponentType[ItemData]()
