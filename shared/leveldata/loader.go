package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// ErrNoPatterns is returned when a pattern source yields no usable patterns.
var ErrNoPatterns = errors.New("no patterns found")

// Object group property values recognised by the loader.
const (
	groupKindPlatform = "platform"
	groupKindMaze     = "maze"
)

// LoadPatternTables parses a TMX file whose object groups describe platform
// and maze patterns. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS.
//
// Each object group is one pattern, named after the group. Group properties:
// kind (platform|maze), weight (default 1), safe (platform only) and
// difficulty (maze only). Platform objects are offsets inside the map's pixel
// width; maze objects are rows carrying row, topology, width and width2.
func LoadPatternTables(fsys fs.FS, tmxPath string) (*PatternTables, error) {
	patternMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	refWidth := float64(patternMap.Width * patternMap.TileWidth)
	tables := &PatternTables{}

	for _, og := range patternMap.ObjectGroups {
		weight := og.Properties.GetFloat("weight")
		if weight <= 0 {
			weight = 1
		}

		switch og.Properties.GetString("kind") {
		case groupKindPlatform:
			p := Pattern{
				Name:   og.Name,
				Width:  refWidth,
				Weight: weight,
				Safe:   og.Properties.GetString("safe") == "true",
			}
			for _, o := range og.Objects {
				p.Offsets = append(p.Offsets, Offset{
					X: o.X + o.Width/2,
					Y: o.Y + o.Height/2,
				})
			}
			if len(p.Offsets) == 0 {
				return nil, fmt.Errorf("platform pattern %q in %s has no offsets", og.Name, tmxPath)
			}
			sort.SliceStable(p.Offsets, func(i, j int) bool {
				return p.Offsets[i].Y < p.Offsets[j].Y
			})
			tables.Platforms = append(tables.Platforms, p)

		case groupKindMaze:
			mp := MazePattern{
				Name:       og.Name,
				Width:      refWidth,
				Difficulty: og.Properties.GetInt("difficulty"),
				Weight:     weight,
			}
			type indexedRow struct {
				index int
				row   MazeRow
			}
			rows := make([]indexedRow, 0, len(og.Objects))
			for _, o := range og.Objects {
				row, err := parseMazeRow(o.Properties)
				if err != nil {
					return nil, fmt.Errorf("maze pattern %q in %s: %w", og.Name, tmxPath, err)
				}
				rows = append(rows, indexedRow{index: o.Properties.GetInt("row"), row: row})
			}
			if len(rows) == 0 {
				return nil, fmt.Errorf("maze pattern %q in %s has no rows", og.Name, tmxPath)
			}
			sort.SliceStable(rows, func(i, j int) bool { return rows[i].index < rows[j].index })
			for _, r := range rows {
				mp.Rows = append(mp.Rows, r.row)
			}
			tables.Mazes = append(tables.Mazes, mp)
		}
	}

	if len(tables.Platforms) == 0 && len(tables.Mazes) == 0 {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrNoPatterns)
	}
	return tables, nil
}

func parseMazeRow(props tiled.Properties) (MazeRow, error) {
	row := MazeRow{
		Topology: Topology(props.GetString("topology")),
		Width:    props.GetFloat("width"),
		Width2:   props.GetFloat("width2"),
	}
	switch row.Topology {
	case TopologyLeft, TopologyRight, TopologyCenter:
	case TopologySplit:
		if row.Width2 <= 0 {
			row.Width2 = row.Width
		}
	default:
		return row, fmt.Errorf("unknown topology %q", row.Topology)
	}
	if row.Width <= 0 {
		return row, fmt.Errorf("row width must be positive, got %v", row.Width)
	}
	return row, nil
}

// LoadAllPatternTables discovers all .tmx files in dir within fsys and merges
// their pattern tables in file-name order.
func LoadAllPatternTables(fsys fs.FS, dir string) (*PatternTables, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmx files in %s: %w", dir, ErrNoPatterns)
	}
	sort.Strings(matches)

	merged := &PatternTables{}
	for _, path := range matches {
		t, err := LoadPatternTables(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", strings.TrimPrefix(path, dir+"/"), err)
		}
		merged.Platforms = append(merged.Platforms, t.Platforms...)
		merged.Mazes = append(merged.Mazes, t.Mazes...)
	}
	return merged, nil
}
