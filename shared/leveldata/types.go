// Package leveldata holds the data shapes shared by the slot generator, the
// headless level world and the viewers, plus the TMX pattern-table loader.
// It has no dependencies on ebitengine, donburi, or resolv. Pure data only.
package leveldata

// SlotType identifies the kind of content a slot carries.
type SlotType int

const (
	PlatformBatch SlotType = iota
	SafeZone
	Maze
)

func (t SlotType) String() string {
	switch t {
	case PlatformBatch:
		return "platform_batch"
	case SafeZone:
		return "safe_zone"
	case Maze:
		return "maze"
	default:
		return "unknown"
	}
}

// PlacementKind is the broad category of a placement record.
type PlacementKind int

const (
	KindPlatform PlacementKind = iota
	KindEnemy
	KindItem
	KindWallSegment
)

func (k PlacementKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindEnemy:
		return "enemy"
	case KindItem:
		return "item"
	case KindWallSegment:
		return "wall"
	default:
		return "unknown"
	}
}

// ActorKind names a concrete enemy or item type. String-typed so tier tables
// can key distributions by it in YAML.
type ActorKind string

const (
	ActorNone    ActorKind = ""
	EnemyPatrol  ActorKind = "patrol"
	EnemyShooter ActorKind = "shooter"
	EnemyJumper  ActorKind = "jumper"
	ItemCoin     ActorKind = "coin"
	ItemPowerup  ActorKind = "powerup"
)

// EnemyKinds is the fixed band order used when splitting a single random draw
// across enemy types.
var EnemyKinds = []ActorKind{EnemyPatrol, EnemyShooter, EnemyJumper}

// IsEnemy reports whether the actor is one of the enemy kinds.
func (a ActorKind) IsEnemy() bool {
	return a == EnemyPatrol || a == EnemyShooter || a == EnemyJumper
}

// Handle refers to an object materialized by the pool collaborator. Its
// meaning belongs to the pool; the zero value always means "nothing".
type Handle uint32

const NoHandle Handle = 0

// Axis is the single axis a moving placement travels along.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
)

// MotionPolicy describes how a moving placement oscillates: along Axis,
// between center positions Min and Max. Static placements use AxisNone.
type MotionPolicy struct {
	Axis Axis
	Min  float64
	Max  float64
}

// PlacementRecord is a transient description of one thing to spawn. X and Y
// are the center of the placement.
type PlacementRecord struct {
	Kind   PlacementKind
	Actor  ActorKind
	X, Y   float64
	Width  float64
	Height float64
	Moving bool
	Speed  float64
	Motion MotionPolicy
}

// Placement is what a slot keeps after materialization: the coordinates used
// to spawn the object and the handle used to despawn it.
type Placement struct {
	Record PlacementRecord
	Handle Handle
}

// PlannedPlatform is one platform position computed by the layout planner.
type PlannedPlatform struct {
	X, Y  float64
	Width float64
}

// SlotLayout is the planner's internal geometry for a slot.
type SlotLayout struct {
	PatternName string
	Transform   string
	Platforms   []PlannedPlatform

	Maze     *MazePattern
	Mirrored bool
}

// Slot is one fixed-height vertical block of generated content.
// YStart is its bottom edge and YEnd its top edge; Y grows downward.
type Slot struct {
	Index   int
	Type    SlotType
	Tier    int
	YStart  float64
	YEnd    float64
	Height  float64
	Layout  SlotLayout
	Content []Placement
}

// Contains reports whether y lies inside the slot's vertical span.
func (s *Slot) Contains(y float64) bool {
	return y <= s.YStart && y >= s.YEnd
}

// Offset is a relative position inside a pattern's reference width.
type Offset struct {
	X, Y float64
}

// Pattern is a named platform layout template. Offsets are ordered
// top-to-bottom (ascending Y).
type Pattern struct {
	Name    string
	Width   float64
	Offsets []Offset
	Weight  float64
	Safe    bool
}

// Clone returns a deep copy of the pattern.
func (p Pattern) Clone() Pattern {
	c := p
	c.Offsets = make([]Offset, len(p.Offsets))
	copy(c.Offsets, p.Offsets)
	return c
}

// Topology describes how a maze row's wall segments are arranged.
type Topology string

const (
	TopologyLeft   Topology = "left"
	TopologyRight  Topology = "right"
	TopologySplit  Topology = "split"
	TopologyCenter Topology = "center"
)

// MazeRow is one row of a maze pattern, widths in reference-width units.
// Width2 is only used by split rows (the right-hand segment).
type MazeRow struct {
	Topology Topology
	Width    float64
	Width2   float64
}

// MazePattern is an ordered list of rows; Rows[0] is the entrance row.
type MazePattern struct {
	Name       string
	Width      float64
	Difficulty int
	Weight     float64
	Rows       []MazeRow
}

// PatternTables bundles the static platform and maze pattern tables.
type PatternTables struct {
	Platforms []Pattern
	Mazes     []MazePattern
}
