package tags

import "github.com/yohamta/donburi"

var (
	Climber        = donburi.NewTag().SetName("Climber")
	Platform       = donburi.NewTag().SetName("Platform")
	MovingPlatform = donburi.NewTag().SetName("MovingPlatform")
	Wall           = donburi.NewTag().SetName("Wall")
	Enemy          = donburi.NewTag().SetName("Enemy")
	Item           = donburi.NewTag().SetName("Item")
	Hazard         = donburi.NewTag().SetName("Hazard")
)

// Resolv tags for collision queries
const (
	ResolvSolid    = "solid"
	ResolvPlatform = "platform"
	ResolvMoving   = "moving"
	ResolvWall     = "wall"
	ResolvClimber  = "Climber"
	ResolvEnemy    = "Enemy"
	ResolvItem     = "item"
	ResolvHazard   = "hazard"
)
