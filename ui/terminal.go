package ui

import (
	"fmt"
	"math"

	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/core"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/tags"
	"github.com/gdamore/tcell/v2"
	"github.com/yohamta/donburi"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	stylePlatform = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMoving   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCoin     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePowerup  = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleClimber  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHazard   = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
)

var enemyRunes = map[leveldata.ActorKind]rune{
	leveldata.EnemyPatrol:  'P',
	leveldata.EnemyShooter: 'S',
	leveldata.EnemyJumper:  'J',
}

// TerminalView draws a Simulation into a tcell screen: one HUD line on top,
// the level column below it with the climber two thirds of the way down.
type TerminalView struct {
	screen     tcell.Screen
	levelWidth float64
}

func NewTerminalView(screen tcell.Screen, levelWidth float64) *TerminalView {
	return &TerminalView{screen: screen, levelWidth: levelWidth}
}

// viewport maps world coordinates onto screen cells.
type viewport struct {
	cols, rows int
	top        float64 // world y of the first level row
	sx, sy     float64 // world pixels per cell
}

func (v viewport) col(x float64) int { return int(math.Floor(x / v.sx)) }
func (v viewport) row(y float64) int { return 1 + int(math.Floor((y-v.top)/v.sy)) }

func (t *TerminalView) viewport(focusY float64) viewport {
	cols, rows := t.screen.Size()
	rows-- // HUD
	sx := t.levelWidth / float64(max(cols, 1))
	sy := sx * cellAspect
	return viewport{
		cols: cols,
		rows: rows,
		top:  focusY - float64(rows)*sy*2/3,
		sx:   sx,
		sy:   sy,
	}
}

// Draw renders one frame and shows it.
func (t *TerminalView) Draw(sim *core.Simulation) {
	t.screen.Clear()

	y, ok := sim.Level.CurrentPlayerY()
	if !ok {
		t.screen.Show()
		return
	}
	v := t.viewport(y)
	w := sim.Level.World()

	if hz := sim.Level.Hazard(); hz.Rising {
		for r := max(v.row(hz.Y), 1); r <= v.rows; r++ {
			for c := 0; c < v.cols; c++ {
				t.screen.SetContent(c, r, '^', nil, styleHazard)
			}
		}
	}

	for e := range components.Object.Iter(w) {
		if e.HasComponent(tags.Hazard) || e.HasComponent(tags.Climber) {
			continue
		}
		ch, style := glyph(e)
		t.fill(v, components.Object.Get(e), ch, style)
	}
	if e, ok := tags.Climber.First(w); ok {
		t.fill(v, components.Object.Get(e), '@', styleClimber)
	}

	t.drawHUD(sim)
	t.screen.Show()
}

func glyph(e *donburi.Entry) (rune, tcell.Style) {
	switch {
	case e.HasComponent(tags.MovingPlatform):
		return '~', styleMoving
	case e.HasComponent(tags.Platform):
		return '=', stylePlatform
	case e.HasComponent(tags.Wall):
		return '#', styleWall
	case e.HasComponent(tags.Enemy):
		if ch, ok := enemyRunes[components.Enemy.Get(e).Kind]; ok {
			return ch, styleEnemy
		}
		return 'E', styleEnemy
	case e.HasComponent(tags.Item):
		if components.Item.Get(e).Kind == leveldata.ItemPowerup {
			return '*', stylePowerup
		}
		return 'o', styleCoin
	}
	return '?', tcell.StyleDefault
}

// fill paints every cell the box touches. Boxes smaller than a cell still
// get one.
func (t *TerminalView) fill(v viewport, o *components.ObjectData, ch rune, style tcell.Style) {
	r := o.Rect()
	c0, c1 := v.col(r.Left()), v.col(math.Nextafter(r.Right(), math.Inf(-1)))
	r0, r1 := v.row(r.Top()), v.row(math.Nextafter(r.Bottom(), math.Inf(-1)))
	if r1 < 1 || r0 > v.rows || c1 < 0 || c0 >= v.cols {
		return
	}
	for row := max(r0, 1); row <= min(r1, v.rows); row++ {
		for col := max(c0, 0); col <= min(c1, v.cols-1); col++ {
			t.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

func (t *TerminalView) drawHUD(sim *core.Simulation) {
	cols, _ := t.screen.Size()
	climber := sim.Level.Climber()
	stats := sim.Generator.Stats()
	line := fmt.Sprintf(" %s  height %.0f  coins %d  powerups %d  slots %d  live %d  cap hits %d",
		sim.Generator.Tier().Name, sim.Height(), climber.Coins, climber.Powerups,
		len(sim.Generator.Slots()), sim.Level.Live(), stats.CapHits)

	runes := []rune(line)
	for c := 0; c < cols; c++ {
		ch := ' '
		if c < len(runes) {
			ch = runes[c]
		}
		t.screen.SetContent(c, 0, ch, nil, styleHUD)
	}
}
