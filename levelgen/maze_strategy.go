package levelgen

import (
	"math"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/shared/gamemath"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// MazeStrategy fills Maze slots with rows of wall segments.
type MazeStrategy struct {
	cfg      config.GenerationConfig
	pool     Pool
	rng      RNG
	items    *ItemSpawner
	recorder Recorder
}

// NewMazeStrategy wires a maze strategy to its collaborators.
func NewMazeStrategy(cfg config.GenerationConfig, pool Pool, rng RNG, items *ItemSpawner, recorder Recorder) *MazeStrategy {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &MazeStrategy{cfg: cfg, pool: pool, rng: rng, items: items, recorder: recorder}
}

// Span is a horizontal interval [Lo, Hi].
type Span struct {
	Lo, Hi float64
}

func (s Span) Width() float64  { return s.Hi - s.Lo }
func (s Span) Center() float64 { return (s.Lo + s.Hi) / 2 }

// MazeRowLayout is the resolved geometry of one maze row.
type MazeRowLayout struct {
	Segments  []Span
	Gap       Span
	GapCenter float64
}

// LayoutRow resolves a pattern row into wall segments inside the bounds,
// keeping the traversable gap at least MinMazeGap wide.
func (s *MazeStrategy) LayoutRow(row leveldata.MazeRow, refWidth float64, mirrored bool, b Bounds) MazeRowLayout {
	lo, hi := b.MinX(), b.MaxX()
	inner := b.InnerWidth()
	tile := s.cfg.MazeTile

	scale := 1.0
	if refWidth > 0 {
		scale = b.PlayableWidth / refWidth
	}
	w1 := gamemath.SnapToGrid(row.Width*scale, tile)
	w2 := gamemath.SnapToGrid(row.Width2*scale, tile)

	topology := row.Topology
	if mirrored {
		switch topology {
		case leveldata.TopologyLeft:
			topology = leveldata.TopologyRight
		case leveldata.TopologyRight:
			topology = leveldata.TopologyLeft
		case leveldata.TopologySplit:
			w1, w2 = w2, w1
		}
	}

	var out MazeRowLayout
	switch topology {
	case leveldata.TopologyLeft:
		w1 = min(w1, floorTo(inner-s.cfg.MinMazeGap, tile))
		if w1 > 0 {
			out.Segments = []Span{{lo, lo + w1}}
		}
		out.Gap = Span{lo + max(w1, 0), hi}

	case leveldata.TopologyRight:
		w1 = min(w1, floorTo(inner-s.cfg.MinMazeGap, tile))
		if w1 > 0 {
			out.Segments = []Span{{hi - w1, hi}}
		}
		out.Gap = Span{lo, hi - max(w1, 0)}

	case leveldata.TopologySplit:
		room := inner - s.cfg.MinMazeGap
		if total := w1 + w2; total > room && total > 0 {
			k := max(room, 0) / total
			w1 = floorTo(w1*k, tile)
			w2 = floorTo(w2*k, tile)
		}
		if w1 > 0 {
			out.Segments = append(out.Segments, Span{lo, lo + w1})
		}
		if w2 > 0 {
			out.Segments = append(out.Segments, Span{hi - w2, hi})
		}
		out.Gap = Span{lo + max(w1, 0), hi - max(w2, 0)}

	default: // center
		w1 = min(w1, floorTo(inner-2*s.cfg.MinMazeGap, tile))
		if w1 <= 0 {
			out.Gap = Span{lo, hi}
			break
		}
		x0 := lo + floorTo((inner-w1)/2, tile)
		out.Segments = []Span{{x0, x0 + w1}}
		left := Span{lo, x0}
		right := Span{x0 + w1, hi}
		if right.Width() > left.Width() {
			out.Gap = right
		} else {
			out.Gap = left
		}
	}

	out.GapCenter = gamemath.Clamp(out.Gap.Center(), out.Gap.Lo+s.cfg.GapMargin, out.Gap.Hi-s.cfg.GapMargin)
	return out
}

// RowY returns the center y of maze row r; row 0 is the bottom entrance.
// Rows are centered vertically in the slot.
func (s *MazeStrategy) RowY(slot leveldata.Slot, rows, r int) float64 {
	pad := (slot.Height - mazeRawHeight(s.cfg, rows)) / 2
	return slot.YStart - pad - s.cfg.MazeRowHeight/2 - float64(r)*(s.cfg.MazeRowHeight+s.cfg.MazeRowGap)
}

func (s *MazeStrategy) Generate(ctx GenerateContext) []leveldata.Placement {
	slot := ctx.Slot
	maze := slot.Layout.Maze
	b := ctx.Bounds
	if maze == nil || len(maze.Rows) == 0 {
		Logf("Warning: maze slot %d has no pattern, leaving it empty", slot.Index)
		return nil
	}
	if !gamemath.Finite(slot.YStart, slot.Height, b.PlayableWidth, b.WallClearance, maze.Width) {
		Logf("Warning: maze slot %d has non-finite geometry, leaving it empty", slot.Index)
		return nil
	}

	tier := ctx.Tier
	budget := 0
	if tier.Maze.AllowEnemies {
		budget = tier.Maze.EnemyCount
	}

	var out []leveldata.Placement
	for r, row := range maze.Rows {
		layout := s.LayoutRow(row, maze.Width, slot.Layout.Mirrored, b)
		y := s.RowY(slot, len(maze.Rows), r)

		var walls []leveldata.Placement
		for _, seg := range layout.Segments {
			h, ok := s.pool.SpawnWall(seg.Center(), y, seg.Width(), s.cfg.MazeRowHeight)
			if !ok {
				Logf("Warning: pool exhausted spawning maze wall in slot %d row %d", slot.Index, r)
				s.recorder.PoolExhausted(leveldata.KindWallSegment)
				continue
			}
			walls = append(walls, leveldata.Placement{
				Record: leveldata.PlacementRecord{
					Kind:   leveldata.KindWallSegment,
					X:      seg.Center(),
					Y:      y,
					Width:  seg.Width(),
					Height: s.cfg.MazeRowHeight,
				},
				Handle: h,
			})
		}
		out = append(out, walls...)

		if p, ok := s.items.TrySpawn(layout.GapCenter, y, tier, ctx.Tick); ok {
			out = append(out, p)
		}

		if r == 0 || budget <= 0 || len(walls) == 0 {
			continue
		}
		kind := pickEnemy(s.rng, tier)
		if kind == leveldata.ActorNone {
			continue
		}
		wall := walls[s.rng.Intn(len(walls))]
		if p, ok := spawnRider(s.pool, s.recorder, kind, wall.Record.X, y, s.cfg.MazeRowHeight, wall.Handle); ok {
			out = append(out, p)
			budget--
		}
	}
	return out
}

// floorTo rounds v down to a multiple of step.
func floorTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Floor(v/step+1e-9) * step
}
