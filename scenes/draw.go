package scenes

import (
	"fmt"
	"image/color"

	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	colorPlatform = color.RGBA{90, 170, 90, 255}
	colorMoving   = color.RGBA{80, 200, 220, 255}
	colorWall     = color.RGBA{110, 110, 110, 255}
	colorEnemy    = color.RGBA{220, 60, 60, 255}
	colorCoin     = color.RGBA{240, 210, 60, 255}
	colorPowerup  = color.RGBA{230, 90, 230, 255}
	colorClimber  = color.RGBA{240, 240, 240, 255}
	colorHazard   = color.RGBA{200, 70, 20, 200}
	colorDebug    = color.RGBA{0, 255, 255, 255}
)

// camera maps world coordinates to the screen. The level is scaled to the
// screen width and the climber sits two thirds of the way down.
type camera struct {
	scale float64
	top   float64
}

func (cs *ClimbScene) camera(screen *ebiten.Image) (camera, bool) {
	y, ok := cs.sim.Level.CurrentPlayerY()
	if !ok {
		return camera{}, false
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := float64(w) / cs.sim.Level.PlayableWidth()
	return camera{
		scale: scale,
		top:   y - float64(h)/scale*2/3,
	}, true
}

func (c camera) fillRect(screen *ebiten.Image, r gamemath.Rect, clr color.Color) {
	x := (r.Left()) * c.scale
	y := (r.Top() - c.top) * c.scale
	vector.FillRect(screen, float32(x), float32(y), float32(r.Width*c.scale), float32(r.Height*c.scale), clr, false)
}

func (c camera) strokeRect(screen *ebiten.Image, r gamemath.Rect, clr color.Color) {
	x := float32(r.Left() * c.scale)
	y := float32((r.Top() - c.top) * c.scale)
	w, h := float32(r.Width*c.scale), float32(r.Height*c.scale)
	vector.FillRect(screen, x, y, w, 1, clr, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, clr, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, clr, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, clr, false) // Right
}

func (cs *ClimbScene) drawWorld(e *ecs.ECS, screen *ebiten.Image) {
	if cs.debug {
		return
	}
	cam, ok := cs.camera(screen)
	if !ok {
		return
	}

	for entry := range components.Object.Iter(e.World) {
		if entry.HasComponent(tags.Climber) || entry.HasComponent(tags.Hazard) {
			continue
		}
		cam.fillRect(screen, components.Object.Get(entry).Rect(), entryColor(entry))
	}

	if entry, ok := tags.Climber.First(e.World); ok {
		cam.fillRect(screen, components.Object.Get(entry).Rect(), colorClimber)
	}

	if hz := cs.sim.Level.Hazard(); hz.Rising {
		h := float64(screen.Bounds().Dy())
		y := (hz.Y - cam.top) * cam.scale
		if y < h {
			vector.FillRect(screen, 0, float32(y), float32(screen.Bounds().Dx()), float32(h-y), colorHazard, false)
		}
	}
}

func entryColor(e *donburi.Entry) color.Color {
	switch {
	case e.HasComponent(tags.MovingPlatform):
		return colorMoving
	case e.HasComponent(tags.Platform):
		return colorPlatform
	case e.HasComponent(tags.Wall):
		return colorWall
	case e.HasComponent(tags.Enemy):
		return colorEnemy
	case e.HasComponent(tags.Item):
		if components.Item.Get(e).Kind == leveldata.ItemPowerup {
			return colorPowerup
		}
		return colorCoin
	}
	return colorDebug
}

// drawDebug outlines every object in the collision space, converted back to
// world coordinates.
func (cs *ClimbScene) drawDebug(e *ecs.ECS, screen *ebiten.Image) {
	if !cs.debug {
		return
	}
	cam, ok := cs.camera(screen)
	if !ok {
		return
	}
	spaceEntry, ok := components.Space.First(e.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	viewH := float64(screen.Bounds().Dy()) / cam.scale
	for _, obj := range space.Objects() {
		top := space.ToWorld(obj.Y)
		// Cull objects outside viewport
		if top+obj.H < cam.top || top > cam.top+viewH {
			continue
		}

		// Determine color based on tags
		c := colorDebug
		switch {
		case obj.HasTags(tags.ResolvClimber):
			c = colorClimber
		case obj.HasTags(tags.ResolvEnemy):
			c = colorEnemy
		case obj.HasTags(tags.ResolvItem):
			c = colorCoin
		case obj.HasTags(tags.ResolvHazard):
			c = colorHazard
		case obj.HasTags(tags.ResolvSolid):
			c = colorWall
		}
		r := gamemath.Rect{X: obj.X + obj.W/2, Y: top + obj.H/2, Width: obj.W, Height: obj.H}
		cam.strokeRect(screen, r, c)
	}
}

func (cs *ClimbScene) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	climber := cs.sim.Level.Climber()
	stats := cs.sim.Generator.Stats()
	msg := fmt.Sprintf("%s  height %.0f  seed %d\ncoins %d  powerups %d\nslots %d  live %d  cap hits %d  x%d",
		cs.sim.Generator.Tier().Name, cs.sim.Height(), cs.seed,
		climber.Coins, climber.Powerups,
		len(cs.sim.Generator.Slots()), cs.sim.Level.Live(), stats.CapHits, cs.speed)
	if cs.progress != nil {
		msg += fmt.Sprintf("\nbest %.0f (%s, seed %d)", cs.progress.BestHeight, cs.progress.BestTier, cs.progress.BestSeed)
	}
	if cs.paused {
		msg += "\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}
