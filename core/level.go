// Package core runs the climb headless: a donburi world and resolv space
// that materialize what the level generator places, and the ticker loop
// that drives them.
package core

import (
	"log"

	"github.com/automoto/skyclimb/components"
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/levelgen"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/automoto/skyclimb/systems"
	"github.com/automoto/skyclimb/systems/factory"
	"github.com/yohamta/donburi"
)

// Handles pack an arena index (plus one) in the low bits and the slot's
// reuse generation in the high bits, so a handle to a freed slot never
// matches the object that reuses it.
const (
	indexBits = 20
	indexMask = 1<<indexBits - 1
	genMask   = 1<<(32-indexBits) - 1
)

type arenaSlot struct {
	entry *donburi.Entry
	gen   uint32
	live  bool
}

// Level is the materialized world. It implements levelgen.Pool and
// levelgen.WorldQuery.
type Level struct {
	cfg            config.SimConfig
	platformHeight float64
	world          donburi.World

	arena  []arenaSlot
	free   []uint32
	live   int
	riders map[leveldata.Handle][]leveldata.Handle

	climber *donburi.Entry
	hazard  *donburi.Entry
}

var (
	_ levelgen.Pool       = (*Level)(nil)
	_ levelgen.WorldQuery = (*Level)(nil)
)

// NewLevel creates the world, its collision space, the climber at
// cfg.StartY and the hazard below it.
func NewLevel(cfg config.SimConfig) *Level {
	w := donburi.NewWorld()
	offset := float64(cfg.SpaceHeight)/2 - cfg.StartY
	factory.CreateSpace(w, int(cfg.LevelWidth), cfg.SpaceHeight, cfg.SpaceCell, cfg.SpaceCell, offset)

	l := &Level{
		cfg:            cfg,
		platformHeight: config.Generation.PlatformHeight,
		world:          w,
		riders:         map[leveldata.Handle][]leveldata.Handle{},
	}
	l.climber = factory.CreateClimber(w, cfg.LevelWidth/2, cfg.StartY)
	components.Climber.Get(l.climber).Speed = cfg.ClimbSpeed
	l.hazard = factory.CreateHazard(w, cfg.LevelWidth, cfg.StartY+cfg.HazardStartDepth)
	hz := components.Hazard.Get(l.hazard)
	hz.DelayTicks = cfg.HazardDelayTicks
	hz.Lag = cfg.HazardLag
	return l
}

// World returns the underlying donburi world.
func (l *Level) World() donburi.World { return l.world }

// Live returns the number of pooled objects currently spawned.
func (l *Level) Live() int { return l.live }

// Capacity returns the max number of live pooled objects.
func (l *Level) Capacity() int { return l.cfg.Capacity }

// Step advances the world by one tick. hazardSpeed is the rising speed
// for the current tier.
func (l *Level) Step(hazardSpeed float64) {
	w := l.world
	systems.UpdateClimber(w)
	systems.UpdateHazard(w, hazardSpeed)
	systems.UpdateMovingPlatforms(w)
	systems.UpdateEnemies(w)

	if y, ok := systems.ClimberY(w); ok && systems.RebaseSpace(w, y, l.cfg.RebaseMargin) {
		log.Printf("Rebased collision space around y=%.0f", y)
	}
	systems.SyncObjects(w)

	for _, e := range systems.CollectItems(w) {
		l.Despawn(components.Pooled.Get(e).Handle)
	}
}

func (l *Level) SpawnPlatform(x, y, width float64, moving bool, speed float64, motion leveldata.MotionPolicy) (leveldata.Handle, bool) {
	if !l.hasRoom() {
		return leveldata.NoHandle, false
	}
	var e *donburi.Entry
	if moving {
		e = factory.CreateMovingPlatform(l.world, x, y, width, l.platformHeight, speed, motion)
	} else {
		e = factory.CreatePlatform(l.world, x, y, width, l.platformHeight)
	}
	return l.register(e), true
}

func (l *Level) SpawnWall(x, y, width, height float64) (leveldata.Handle, bool) {
	if !l.hasRoom() {
		return leveldata.NoHandle, false
	}
	return l.register(factory.CreateWall(l.world, x, y, width, height)), true
}

// SpawnActor spawns an enemy riding anchor, or an item. Enemies patrol the
// width of their anchor's surface.
func (l *Level) SpawnActor(kind leveldata.ActorKind, x, y float64, anchor leveldata.Handle) (leveldata.Handle, bool) {
	if !l.hasRoom() {
		return leveldata.NoHandle, false
	}
	if !kind.IsEnemy() {
		return l.register(factory.CreateItem(l.world, kind, x, y)), true
	}

	left, right := x, x
	if surface, ok := l.entry(anchor); ok {
		o := components.Object.Get(surface)
		half := config.EnemyTypes[kind].Width / 2
		left, right = o.X-o.W/2+half, o.X+o.W/2-half
	} else {
		anchor = leveldata.NoHandle
	}

	h := l.register(factory.CreateEnemy(l.world, kind, x, y, anchor, left, right))
	if anchor != leveldata.NoHandle {
		l.riders[anchor] = append(l.riders[anchor], h)
	}
	return h, true
}

// Despawn removes the object behind h along with anything riding it.
// Unknown and stale handles are ignored.
func (l *Level) Despawn(h leveldata.Handle) {
	e, ok := l.entry(h)
	if !ok {
		return
	}
	riders := l.riders[h]
	delete(l.riders, h)
	for _, rider := range riders {
		l.Despawn(rider)
	}

	if e.HasComponent(components.Enemy) {
		enemy := components.Enemy.Get(e)
		l.dropRider(enemy.Platform, h)
	}

	factory.RemoveObject(l.world, e)
	l.world.Remove(e.Entity())

	i := uint32(h)&indexMask - 1
	l.arena[i] = arenaSlot{gen: l.arena[i].gen}
	l.free = append(l.free, i)
	l.live--
}

// Lookup returns the entry behind a live handle.
func (l *Level) Lookup(h leveldata.Handle) (*donburi.Entry, bool) {
	return l.entry(h)
}

func (l *Level) PlayableWidth() float64 { return l.cfg.LevelWidth }

func (l *Level) WallClearance() float64 { return l.cfg.WallThickness + l.cfg.WallMargin }

func (l *Level) CurrentPlayerY() (float64, bool) {
	if l.climber == nil || !l.climber.Valid() {
		return 0, false
	}
	return systems.ClimberY(l.world)
}

func (l *Level) Hazard() levelgen.HazardState {
	y, rising, ok := systems.HazardSurface(l.world)
	if !ok {
		return levelgen.HazardState{}
	}
	return levelgen.HazardState{Y: y, Rising: rising}
}

// Climber returns the climber's collection counters.
func (l *Level) Climber() components.ClimberData {
	return *components.Climber.Get(l.climber)
}

func (l *Level) hasRoom() bool {
	return l.cfg.Capacity <= 0 || l.live < l.cfg.Capacity
}

func (l *Level) register(e *donburi.Entry) leveldata.Handle {
	var i uint32
	if n := len(l.free); n > 0 {
		i = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		i = uint32(len(l.arena))
		l.arena = append(l.arena, arenaSlot{})
	}

	slot := &l.arena[i]
	slot.gen = (slot.gen + 1) & genMask
	slot.entry = e
	slot.live = true
	l.live++

	h := leveldata.Handle(slot.gen<<indexBits | (i + 1))
	components.Pooled.Get(e).Handle = h
	return h
}

func (l *Level) entry(h leveldata.Handle) (*donburi.Entry, bool) {
	idx := uint32(h) & indexMask
	if idx == 0 || int(idx) > len(l.arena) {
		return nil, false
	}
	slot := l.arena[idx-1]
	if !slot.live || slot.gen != uint32(h)>>indexBits {
		return nil, false
	}
	return slot.entry, true
}

func (l *Level) dropRider(platform, rider leveldata.Handle) {
	list := l.riders[platform]
	for i, r := range list {
		if r == rider {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(l.riders, platform)
		return
	}
	l.riders[platform] = list
}
