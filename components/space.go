package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// SpaceData is the collision space plus the vertical offset that maps
// world y into it. World y is unbounded while the space is not, so the
// offset moves as the climb goes on.
type SpaceData struct {
	*resolv.Space
	PixelHeight float64
	OffsetY     float64
}

// ToSpace converts a world y into space coordinates.
func (s *SpaceData) ToSpace(y float64) float64 { return y + s.OffsetY }

// ToWorld converts a space y back into world coordinates.
func (s *SpaceData) ToWorld(y float64) float64 { return y - s.OffsetY }

var Space = donburi.NewComponentType[SpaceData]()
