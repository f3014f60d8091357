package config

import "github.com/automoto/skyclimb/shared/leveldata"

// TransformWeights are the relative weights of the pattern transforms.
type TransformWeights struct {
	None     float64 `yaml:"none"`
	MirrorX  float64 `yaml:"mirror_x"`
	MirrorY  float64 `yaml:"mirror_y"`
	MirrorXY float64 `yaml:"mirror_xy"`
}

// GenerationConfig contains the slot generator's tuning constants
type GenerationConfig struct {
	// Stacking
	InterSlotGap      float64 `yaml:"inter_slot_gap"`
	MinVerticalGap    float64 `yaml:"min_vertical_gap"` // Minimum vertical distance between platforms
	StackTolerance    float64 `yaml:"stack_tolerance"`  // Drift below this is not corrected
	TutorialSlotCount int     `yaml:"tutorial_slot_count"`

	// Slot types
	PlatformsPerBatch   int              `yaml:"platforms_per_batch"`
	SafeZonePlatforms   int              `yaml:"safe_zone_platforms"`
	SafeZoneWidthScale  float64          `yaml:"safe_zone_width_scale"`
	PlatformBatchWeight float64          `yaml:"platform_batch_weight"`
	SafeZoneWeight      float64          `yaml:"safe_zone_weight"`
	MazeWeightScale     float64          `yaml:"maze_weight_scale"` // Multiplies tier maze chance
	TransformWeights    TransformWeights `yaml:"transform_weights"`

	// Platforms
	PlatformHeight      float64 `yaml:"platform_height"`
	MaxMovingPerSlot    int     `yaml:"max_moving_per_slot"` // 0..MovingPerSlotLimit
	MovingTravel        float64 `yaml:"moving_travel"`       // Max distance from the center of travel
	MovingSpeedJitter   float64 `yaml:"moving_speed_jitter"` // +/- fraction applied by noise
	MaxPlacementRetries int     `yaml:"max_placement_retries"`
	RetryNudge          float64 `yaml:"retry_nudge"` // Pixels moved toward center per retry

	// Validator
	SameLineEpsilon float64 `yaml:"same_line_epsilon"`
	SearchRadius    float64 `yaml:"search_radius"`

	// Maze
	MazeRowHeight float64 `yaml:"maze_row_height"`
	MazeRowGap    float64 `yaml:"maze_row_gap"`
	MazeTile      float64 `yaml:"maze_tile"`
	MinMazeGap    float64 `yaml:"min_maze_gap"` // Narrowest traversable opening
	GapMargin     float64 `yaml:"gap_margin"`

	// Items
	ItemLift              float64 `yaml:"item_lift"` // Height of an item above its surface
	ItemHeightCooldown    float64 `yaml:"item_height_cooldown"`
	PowerupHeightCooldown float64 `yaml:"powerup_height_cooldown"`
	PowerupTickCooldown   int     `yaml:"powerup_tick_cooldown"`
	MinItemDistance       float64 `yaml:"min_item_distance"`

	// Coordinator
	MinSlotsAhead     int     `yaml:"min_slots_ahead"`
	LookaheadDistance float64 `yaml:"lookahead_distance"`
	TrailingDistance  float64 `yaml:"trailing_distance"`
	HazardMargin      float64 `yaml:"hazard_margin"`
	PerTickCap        int     `yaml:"per_tick_cap"` // 0 = use the hardware profile
	CapWarnInterval   int     `yaml:"cap_warn_interval"`
}

// ProfileConfig describes a hardware profile
type ProfileConfig struct {
	Name       string `yaml:"name"`
	PerTickCap int    `yaml:"per_tick_cap"`
}

// EnemyTypeConfig contains configuration for specific enemy types
type EnemyTypeConfig struct {
	Name        string  `yaml:"name"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	PatrolSpeed float64 `yaml:"patrol_speed"`
	FireRate    int     `yaml:"fire_rate"`   // Ticks between shots (shooter only)
	JumpRate    int     `yaml:"jump_rate"`   // Ticks between hops (jumper only)
	JumpHeight  float64 `yaml:"jump_height"` // Hop height in pixels (jumper only)
}

// ItemConfig contains collectible dimensions
type ItemConfig struct {
	CoinSize    float64 `yaml:"coin_size"`
	PowerupSize float64 `yaml:"powerup_size"`
}

// SimConfig contains the headless level world configuration
type SimConfig struct {
	TickRate         int     `yaml:"tick_rate"`
	LevelWidth       float64 `yaml:"level_width"`
	WallThickness    float64 `yaml:"wall_thickness"`
	WallMargin       float64 `yaml:"wall_margin"`
	SpaceHeight      int     `yaml:"space_height"` // Collision space height before rebasing
	SpaceCell        int     `yaml:"space_cell"`
	RebaseMargin     float64 `yaml:"rebase_margin"`
	Capacity         int     `yaml:"capacity"` // Max live pooled objects
	StartY           float64 `yaml:"start_y"`
	ClimbSpeed       float64 `yaml:"climb_speed"`
	ClimberWidth     float64 `yaml:"climber_width"`
	ClimberHeight    float64 `yaml:"climber_height"`
	HazardDelayTicks int     `yaml:"hazard_delay_ticks"`
	HazardLag        float64 `yaml:"hazard_lag"` // Max distance the hazard trails the climber
	HazardStartDepth float64 `yaml:"hazard_start_depth"`
}

// ViewerConfig contains the debug viewer window configuration
type ViewerConfig struct {
	Width  int
	Height int
	Scale  float64
}

// Global configuration instances
var Generation GenerationConfig
var Profiles map[string]ProfileConfig
var EnemyTypes map[leveldata.ActorKind]EnemyTypeConfig
var Items ItemConfig
var Sim SimConfig
var Viewer ViewerConfig

// MovingPerSlotLimit caps MaxMovingPerSlot whatever the batch size.
const MovingPerSlotLimit = 2

// DefaultProfile is used when no hardware profile is requested.
const DefaultProfile = "desktop"

func init() {
	Generation = GenerationConfig{
		// Stacking
		InterSlotGap:      0,
		MinVerticalGap:    80,
		StackTolerance:    0.001,
		TutorialSlotCount: 2,

		// Slot types
		PlatformsPerBatch:   5,
		SafeZonePlatforms:   3,
		SafeZoneWidthScale:  1.6,
		PlatformBatchWeight: 70,
		SafeZoneWeight:      10,
		MazeWeightScale:     100, // chance 0.2 -> weight 20
		TransformWeights: TransformWeights{
			None:     40,
			MirrorX:  30,
			MirrorY:  15,
			MirrorXY: 15,
		},

		// Platforms
		PlatformHeight:      16,
		MaxMovingPerSlot:    2,
		MovingTravel:        96,
		MovingSpeedJitter:   0.15,
		MaxPlacementRetries: 4,
		RetryNudge:          24,

		// Validator
		SameLineEpsilon: 4,
		SearchRadius:    240,

		// Maze
		MazeRowHeight: 32,
		MazeRowGap:    96,
		MazeTile:      16,
		MinMazeGap:    64, // Two tiles wider than the climber
		GapMargin:     24,

		// Items
		ItemLift:              28,
		ItemHeightCooldown:    120,
		PowerupHeightCooldown: 1200,
		PowerupTickCooldown:   600, // 10 seconds at 60fps
		MinItemDistance:       96,

		// Coordinator
		MinSlotsAhead:     3,
		LookaheadDistance: 900,
		TrailingDistance:  700,
		HazardMargin:      120,
		PerTickCap:        0,
		CapWarnInterval:   120,
	}

	Profiles = map[string]ProfileConfig{
		"desktop":     {Name: "desktop", PerTickCap: 3},
		"constrained": {Name: "constrained", PerTickCap: 1},
	}

	EnemyTypes = map[leveldata.ActorKind]EnemyTypeConfig{
		leveldata.EnemyPatrol: {
			Name:        "Patrol",
			Width:       24,
			Height:      28,
			PatrolSpeed: 1.0,
		},
		leveldata.EnemyShooter: {
			Name:     "Shooter",
			Width:    24,
			Height:   32,
			FireRate: 120, // 2 seconds at 60fps
		},
		leveldata.EnemyJumper: {
			Name:        "Jumper",
			Width:       22,
			Height:      24,
			PatrolSpeed: 0.5,
			JumpRate:    90,
			JumpHeight:  40,
		},
	}

	Items = ItemConfig{
		CoinSize:    14,
		PowerupSize: 20,
	}

	Sim = SimConfig{
		TickRate:         60,
		LevelWidth:       480,
		WallThickness:    16,
		WallMargin:       8,
		SpaceHeight:      1 << 16,
		SpaceCell:        64,
		RebaseMargin:     4096,
		Capacity:         4096,
		StartY:           0,
		ClimbSpeed:       2.5,
		ClimberWidth:     16,
		ClimberHeight:    40,
		HazardDelayTicks: 300, // 5 seconds at 60fps
		HazardLag:        900,
		HazardStartDepth: 600,
	}

	Viewer = ViewerConfig{
		Width:  480,
		Height: 720,
		Scale:  1,
	}
}

// PerTickCap resolves the per-tick generation cap: an explicit
// Generation.PerTickCap wins, otherwise the named profile's cap, otherwise
// the default profile's.
func PerTickCap(gen GenerationConfig, profile string) int {
	if gen.PerTickCap > 0 {
		return gen.PerTickCap
	}
	if p, ok := Profiles[profile]; ok && p.PerTickCap > 0 {
		return p.PerTickCap
	}
	if p, ok := Profiles[DefaultProfile]; ok && p.PerTickCap > 0 {
		return p.PerTickCap
	}
	return 1
}
