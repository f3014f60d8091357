package levelgen

import (
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// fallbackPatternName names the single-offset pattern used when no table
// pattern is available.
const fallbackPatternName = "center_fallback"

// Planner decides each slot's vertical span, type and internal geometry.
// It keeps a cursor at the top edge of the last planned slot and never talks
// to the pool or the world.
type Planner struct {
	cfg      config.GenerationConfig
	tiers    *TierResolver
	patterns *leveldata.PatternTables
	rng      RNG
	bounds   Bounds

	cursorY     float64
	originY     float64
	override    float64
	hasOverride bool

	lastPattern string
	lastMaze    string
	lastType    leveldata.SlotType
	hasLast     bool
}

// NewPlanner creates a planner with its cursor at y = 0.
func NewPlanner(cfg config.GenerationConfig, tiers *TierResolver, patterns *leveldata.PatternTables, rng RNG, bounds Bounds) *Planner {
	if patterns == nil {
		patterns = &leveldata.PatternTables{}
	}
	return &Planner{
		cfg:      cfg,
		tiers:    tiers,
		patterns: patterns,
		rng:      rng,
		bounds:   bounds,
	}
}

// Reset moves the cursor to startY, which also becomes the height origin,
// and forgets pattern history.
func (p *Planner) Reset(startY float64) {
	p.cursorY = startY
	p.originY = startY
	p.hasOverride = false
	p.lastPattern = ""
	p.lastMaze = ""
	p.hasLast = false
}

// OverrideNextStart forces the next slot's bottom edge to y.
func (p *Planner) OverrideNextStart(y float64) {
	p.override = y
	p.hasOverride = true
}

// AlignCursor moves the cursor without touching the pattern history.
func (p *Planner) AlignCursor(y float64) {
	p.cursorY = y
	p.hasOverride = false
}

// SetBounds updates the horizontal bounds used by subsequent layouts.
func (p *Planner) SetBounds(b Bounds) { p.bounds = b }

// Cursor returns the top edge of the last planned slot.
func (p *Planner) Cursor() float64 { return p.cursorY }

// Origin returns the y that counts as zero ascent.
func (p *Planner) Origin() float64 { return p.originY }

// AscentHeight converts a world y into the height climbed above the origin.
func (p *Planner) AscentHeight(y float64) float64 {
	return max(0, p.originY-y)
}

// NextSlot plans the slot with the given index directly above the cursor.
func (p *Planner) NextSlot(index int) leveldata.Slot {
	yStart := p.cursorY - p.cfg.InterSlotGap
	if p.hasOverride {
		yStart = p.override
		p.hasOverride = false
	}

	tierIndex, tier := p.tiers.ResolveIndex(p.AscentHeight(yStart))
	slotType := p.decideType(index, tier)

	var maze *leveldata.MazePattern
	if slotType == leveldata.Maze {
		maze = p.pickMaze(tier)
		if maze == nil {
			slotType = leveldata.PlatformBatch
		}
	}

	height := p.computeHeight(slotType, maze)
	slot := leveldata.Slot{
		Index:  index,
		Type:   slotType,
		Tier:   tierIndex,
		YStart: yStart,
		YEnd:   yStart - height,
		Height: height,
	}

	if slotType == leveldata.Maze {
		slot.Layout = leveldata.SlotLayout{
			PatternName: maze.Name,
			Maze:        maze,
			Mirrored:    p.rng.Float64() < 0.5,
		}
		if slot.Layout.Mirrored {
			slot.Layout.Transform = MirrorX.String()
		} else {
			slot.Layout.Transform = TransformNone.String()
		}
		p.lastMaze = maze.Name
	} else {
		slot.Layout = p.platformLayout(slot, tier)
		p.lastPattern = slot.Layout.PatternName
	}

	p.lastType = slotType
	p.hasLast = true
	p.cursorY = slot.YEnd
	return slot
}

func (p *Planner) decideType(index int, tier config.TierConfig) leveldata.SlotType {
	if index < p.cfg.TutorialSlotCount {
		return leveldata.PlatformBatch
	}

	safeWeight := p.cfg.SafeZoneWeight
	if p.hasLast && p.lastType == leveldata.SafeZone {
		safeWeight = 0
	}
	mazeWeight := 0.0
	if tier.Maze.Enabled && len(p.patterns.Mazes) > 0 && !(p.hasLast && p.lastType == leveldata.Maze) {
		mazeWeight = tier.Maze.Chance * p.cfg.MazeWeightScale
	}

	return WeightedPick(p.rng, []Weighted[leveldata.SlotType]{
		{Value: leveldata.PlatformBatch, Weight: p.cfg.PlatformBatchWeight},
		{Value: leveldata.SafeZone, Weight: safeWeight},
		{Value: leveldata.Maze, Weight: mazeWeight},
	})
}

func (p *Planner) computeHeight(slotType leveldata.SlotType, maze *leveldata.MazePattern) float64 {
	gap := p.cfg.MinVerticalGap
	switch slotType {
	case leveldata.SafeZone:
		return float64(p.cfg.SafeZonePlatforms) * gap
	case leveldata.Maze:
		return gamemath.CeilToMultiple(mazeRawHeight(p.cfg, len(maze.Rows)), gap)
	default:
		return float64(p.cfg.PlatformsPerBatch) * gap
	}
}

// mazeRawHeight is the height of a maze's rows before rounding to the
// stacking grid.
func mazeRawHeight(cfg config.GenerationConfig, rows int) float64 {
	if rows <= 0 {
		return 0
	}
	return float64(rows)*cfg.MazeRowHeight + float64(rows-1)*cfg.MazeRowGap
}

func (p *Planner) pickMaze(tier config.TierConfig) *leveldata.MazePattern {
	var options []Weighted[int]
	for i, m := range p.patterns.Mazes {
		if m.Difficulty <= tier.Maze.PatternDifficulty && len(m.Rows) > 0 {
			options = append(options, Weighted[int]{Value: i, Weight: m.Weight})
		}
	}
	options = withoutRepeat(options, func(i int) bool { return p.patterns.Mazes[i].Name == p.lastMaze })
	if len(options) == 0 {
		return nil
	}

	m := p.patterns.Mazes[WeightedPick(p.rng, options)]
	m.Rows = append([]leveldata.MazeRow(nil), m.Rows...)
	return &m
}

func (p *Planner) pickPattern(safe bool) leveldata.Pattern {
	var options []Weighted[int]
	for i, pat := range p.patterns.Platforms {
		if pat.Safe == safe && len(pat.Offsets) > 0 {
			options = append(options, Weighted[int]{Value: i, Weight: pat.Weight})
		}
	}
	if len(options) == 0 && safe {
		return p.pickPattern(false)
	}
	options = withoutRepeat(options, func(i int) bool { return p.patterns.Platforms[i].Name == p.lastPattern })
	if len(options) == 0 {
		return leveldata.Pattern{
			Name:    fallbackPatternName,
			Width:   p.bounds.PlayableWidth,
			Offsets: []leveldata.Offset{{X: p.bounds.CenterX()}},
			Weight:  1,
		}
	}
	return p.patterns.Platforms[WeightedPick(p.rng, options)]
}

// withoutRepeat drops the last-used option when an alternative exists.
func withoutRepeat(options []Weighted[int], isLast func(int) bool) []Weighted[int] {
	if len(options) < 2 {
		return options
	}
	out := options[:0:0]
	for _, o := range options {
		if !isLast(o.Value) {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return options
	}
	return out
}

func (p *Planner) platformLayout(slot leveldata.Slot, tier config.TierConfig) leveldata.SlotLayout {
	count := p.cfg.PlatformsPerBatch
	width := tier.Platform.Width
	if slot.Type == leveldata.SafeZone {
		count = p.cfg.SafeZonePlatforms
		width *= p.cfg.SafeZoneWidthScale
	}
	if inner := p.bounds.InnerWidth(); width > inner {
		width = inner
	}

	pattern := p.pickPattern(slot.Type == leveldata.SafeZone)
	mode := PickTransform(p.rng, p.cfg.TransformWeights)

	shaped := ScaleToWidth(pattern, p.bounds.PlayableWidth)
	shaped = Transform(shaped, mode)
	shaped = ClampToBounds(shaped, p.bounds, width/2)
	mirrored := Transform(shaped, MirrorX)

	zigzag := slot.Type == leveldata.PlatformBatch && p.rng.Float64() < tier.Platform.ZigzagChance

	layout := leveldata.SlotLayout{
		PatternName: pattern.Name,
		Transform:   mode.String(),
		Platforms:   make([]leveldata.PlannedPlatform, 0, count),
	}
	if zigzag {
		layout.Transform += "+zigzag"
	}

	n := len(shaped.Offsets)
	for k := 0; k < count; k++ {
		source := shaped
		if zigzag && (k/n)%2 == 1 {
			source = mirrored
		}
		layout.Platforms = append(layout.Platforms, leveldata.PlannedPlatform{
			X:     source.Offsets[k%n].X,
			Y:     slot.YEnd + p.cfg.MinVerticalGap*(float64(k)+0.5),
			Width: width,
		})
	}
	return layout
}
