package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// JumpMode selects how the jump input starts a jump.
type JumpMode string

const (
	JumpImmediate JumpMode = "immediate" // press launches straight away
	JumpCharge    JumpMode = "charge"    // hold to charge, release to launch
)

// RunEnd selects where a completed downhill run drops the player.
type RunEnd string

const (
	RunEndHouse  RunEnd = "house"
	RunEndUphill RunEnd = "uphill"
)

// Config is the flat table of tunables consumed by the simulation. Distances
// are pixels, per-tick quantities assume a fixed 60 TPS step, durations are
// milliseconds.
type Config struct {
	Layers []Layer `toml:"layers"`

	// Downhill.
	Gravity         float64 `toml:"gravity"`
	AirGravity      float64 `toml:"air_gravity"`
	MaxFallSpeed    float64 `toml:"max_fall_speed"`
	Accel           float64 `toml:"accel"`
	Friction        float64 `toml:"friction"`
	MaxXVel         float64 `toml:"max_x_vel"`
	BounceImpulse   float64 `toml:"bounce_impulse"`
	BaseCollisions  int     `toml:"base_collisions_allowed"`
	BottomMargin    float64 `toml:"bottom_margin"`
	RunEnd          RunEnd  `toml:"run_end"`
	ScorePerPixel   float64 `toml:"score_per_pixel"`
	ScorePerSecond  float64 `toml:"score_per_second"`
	CourseDensity   float64 `toml:"course_density"`    // obstacles per 1000px of descent
	CourseSafeSpan  float64 `toml:"course_safe_span"`  // obstacle-free band below the run start
	TrailDensity    float64 `toml:"trail_density"`     // obstacles per layer per 1000px of circumference
	ObstacleScale   float64 `toml:"obstacle_scale"`    // render/collision scale applied to obstacles
	LandingTweenMs  float64 `toml:"landing_tween_ms"`  // forced-landing interpolation length
	SafeLandingStep float64 `toml:"safe_landing_step"` // search step for an obstacle-free landing Y

	// Uphill.
	UphillSpeed float64 `toml:"uphill_speed"`

	// Jump.
	JumpMode         JumpMode `toml:"jump_mode"`
	JumpDurationMs   float64  `toml:"jump_duration_ms"`
	JumpHeightFactor float64  `toml:"jump_height_factor"`
	JumpScaleBoost   float64  `toml:"jump_scale_boost"` // extra render scale at the peak of a full jump
	MaxChargeMs      float64  `toml:"max_charge_ms"`
	ChargeMinMs      float64  `toml:"charge_min_duration_ms"`
	ChargeMaxMs      float64  `toml:"charge_max_duration_ms"`
	ReHitWindowStart float64  `toml:"rehit_window_start"`
	ReHitBonus       float64  `toml:"rehit_bonus"`

	// Tricks.
	TrickDurationMs        float64 `toml:"trick_duration_ms"`
	TrickRotationDegPerSec float64 `toml:"trick_rotation_deg_per_sec"`
	TrickMaxOffset         float64 `toml:"trick_max_offset"`
	TrickBaseValue         float64 `toml:"trick_base_value"`
	ChainBase              float64 `toml:"chain_base"`
	TrickCooldownMs        float64 `toml:"trick_cooldown_ms"`
	TrickValueFloor        float64 `toml:"trick_value_floor"`
	AirBrakeDrag           float64 `toml:"air_brake_drag"`
	ParachuteGravityScale  float64 `toml:"parachute_gravity_scale"`

	// Camera.
	CameraLerp float64 `toml:"camera_lerp"`

	// Upgrade scaling per level.
	AccelPerLevel    float64 `toml:"accel_per_level"`
	MaxXVelPerLevel  float64 `toml:"max_x_vel_per_level"`
	FrictionRelief   float64 `toml:"friction_relief"`
	FootwearPerLevel float64 `toml:"footwear_per_level"`
	JumpPerLevel     float64 `toml:"jump_per_level"`

	Upgrades Upgrades `toml:"upgrades"`
}

// Upgrades are the purchased levels that feed the movement formulas. The
// economy owns how they are bought; the simulation only reads them.
type Upgrades struct {
	RocketSurgery     int `toml:"rocket_surgery" msgpack:"rocket_surgery"`
	OptimalOptics     int `toml:"optimal_optics" msgpack:"optimal_optics"`
	SledDurability    int `toml:"sled_durability" msgpack:"sled_durability"`
	FancierFootwear   int `toml:"fancier_footwear" msgpack:"fancier_footwear"`
	AntiGravGenerator int `toml:"antigrav_generator" msgpack:"antigrav_generator"`
}

// DefaultConfig returns the tuned baseline.
func DefaultConfig() Config {
	return Config{
		Layers: DefaultLayers(),

		Gravity:         0.1,
		AirGravity:      0.04,
		MaxFallSpeed:    12,
		Accel:           0.5,
		Friction:        0.9,
		MaxXVel:         6,
		BounceImpulse:   3,
		BaseCollisions:  3,
		BottomMargin:    100,
		RunEnd:          RunEndHouse,
		ScorePerPixel:   0.01,
		ScorePerSecond:  0.5,
		CourseDensity:   4,
		CourseSafeSpan:  400,
		TrailDensity:    3,
		ObstacleScale:   1,
		LandingTweenMs:  300,
		SafeLandingStep: 24,

		UphillSpeed: 5,

		JumpMode:         JumpImmediate,
		JumpDurationMs:   1000,
		JumpHeightFactor: 1,
		JumpScaleBoost:   0.5,
		MaxChargeMs:      1000,
		ChargeMinMs:      500,
		ChargeMaxMs:      1000,
		ReHitWindowStart: 0.7,
		ReHitBonus:       1.25,

		TrickDurationMs:        800,
		TrickRotationDegPerSec: 450,
		TrickMaxOffset:         40,
		TrickBaseValue:         10,
		ChainBase:              1.5,
		TrickCooldownMs:        5000,
		TrickValueFloor:        0.2,
		AirBrakeDrag:           0.97,
		ParachuteGravityScale:  0.5,

		CameraLerp: 0.15,

		AccelPerLevel:    0.1,
		MaxXVelPerLevel:  0.1,
		FrictionRelief:   0.25,
		FootwearPerLevel: 0.1,
		JumpPerLevel:     0.1,
	}
}

// LoadConfig decodes a TOML file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	// Decoding into a populated slice appends; start layers empty so a file
	// that declares [[layers]] replaces the defaults.
	cfg.Layers = nil
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if len(cfg.Layers) == 0 {
		cfg.Layers = DefaultLayers()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the simulation relies on.
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
	}
	if _, err := NewMountain(c.Layers); err != nil {
		return fmt.Errorf("layers: %w: %w", err, ErrInvalidConfig)
	}
	switch {
	case c.Friction <= 0 || c.Friction >= 1:
		return bad("friction %.3f outside (0,1)", c.Friction)
	case c.MaxXVel <= 0:
		return bad("max_x_vel must be positive")
	case c.MaxFallSpeed <= 0:
		return bad("max_fall_speed must be positive")
	case c.JumpDurationMs <= 0 || c.TrickDurationMs <= 0:
		return bad("jump and trick durations must be positive")
	case c.ReHitWindowStart <= 0 || c.ReHitWindowStart >= 1:
		return bad("rehit_window_start %.3f outside (0,1)", c.ReHitWindowStart)
	case c.ReHitBonus <= 0:
		return bad("rehit_bonus must be positive")
	case c.ChargeMinMs <= 0 || c.ChargeMaxMs < c.ChargeMinMs || c.MaxChargeMs <= 0:
		return bad("charge timings invalid (min %.0f max %.0f hold %.0f)", c.ChargeMinMs, c.ChargeMaxMs, c.MaxChargeMs)
	case c.TrickValueFloor < 0 || c.TrickValueFloor > 1:
		return bad("trick_value_floor %.3f outside [0,1]", c.TrickValueFloor)
	case c.ChainBase < 1:
		return bad("chain_base %.3f below 1", c.ChainBase)
	case c.CameraLerp <= 0 || c.CameraLerp > 1:
		return bad("camera_lerp %.3f outside (0,1]", c.CameraLerp)
	case c.BaseCollisions < 1:
		return bad("base_collisions_allowed must be at least 1")
	case c.LandingTweenMs < 0:
		return bad("landing_tween_ms must not be negative")
	}
	if c.JumpMode != JumpImmediate && c.JumpMode != JumpCharge {
		return bad("unknown jump_mode %q", c.JumpMode)
	}
	if c.RunEnd != RunEndHouse && c.RunEnd != RunEndUphill {
		return bad("unknown run_end %q", c.RunEnd)
	}
	return nil
}

// --- Upgrade-derived values ---

// DownhillAccel is the per-tick steering acceleration.
func (c Config) DownhillAccel(u Upgrades) float64 {
	return c.Accel * (1 + float64(u.RocketSurgery)*c.AccelPerLevel)
}

// DownhillMaxXVel is the steering speed cap.
func (c Config) DownhillMaxXVel(u Upgrades) float64 {
	return c.MaxXVel * (1 + float64(u.RocketSurgery)*c.MaxXVelPerLevel)
}

// DownhillFriction shrinks the drag penalty (1-Friction) with each level
// without ever reaching 1.
func (c Config) DownhillFriction(u Upgrades) float64 {
	return 1 - (1-c.Friction)/(1+float64(u.OptimalOptics)*c.FrictionRelief)
}

// MaxCollisions is how many hits the sled survives in one run.
func (c Config) MaxCollisions(u Upgrades) int {
	return c.BaseCollisions + u.SledDurability
}

// HikeSpeed is the uphill step per tick.
func (c Config) HikeSpeed(u Upgrades) float64 {
	return c.UphillSpeed * (1 + float64(u.FancierFootwear)*c.FootwearPerLevel)
}

// JumpBonus scales immediate-mode jump height and duration.
func (c Config) JumpBonus(u Upgrades) float64 {
	return 1 + float64(u.AntiGravGenerator)*c.JumpPerLevel
}

// RunScore converts a completed run into points.
func (c Config) RunScore(distance, seconds float64) float64 {
	return math.Max(0, distance)*c.ScorePerPixel + math.Max(0, seconds)*c.ScorePerSecond
}
