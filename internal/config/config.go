// Package config provides YAML-based game configuration loading and
// difficulty presets for the breakout platform.
package config

// BreakoutConfig is the read-only constants bundle a session is built from.
// Lengths are in arena units, speeds in arena units per frame.
type BreakoutConfig struct {
	Arena    ArenaConfig    `yaml:"arena"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Bricks   BrickConfig    `yaml:"bricks"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// ArenaConfig defines the play field size.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines ball size and speed progression.
type BallConfig struct {
	Size           float64 `yaml:"size"` // radius
	Speed          float64 `yaml:"speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // added on every paddle or brick hit
	StartOffset    float64 `yaml:"start_offset"`    // distance of the spawn point above the arena bottom
}

// PaddleConfig defines paddle geometry and speed.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	BottomOffset float64 `yaml:"bottom_offset"` // gap between paddle bottom and arena bottom
}

// BrickConfig defines the brick grid.
type BrickConfig struct {
	Rows       int      `yaml:"rows"`
	Columns    int      `yaml:"columns"`
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	Padding    float64  `yaml:"padding"`
	OffsetTop  float64  `yaml:"offset_top"`
	OffsetLeft float64  `yaml:"offset_left"`
	Colors     []string `yaml:"colors"` // assigned per row, cycling
}

// GameplayConfig defines scoring and round rules.
type GameplayConfig struct {
	Lives          int  `yaml:"lives"`
	PointsPerBrick int  `yaml:"points_per_brick"`
	FirstHitOnly   bool `yaml:"first_hit_only"` // stop the brick pass after the first hit in a frame

	// PaddleHoldTicks keeps a keyboard move intent alive for this many
	// frames after the last key event. Terminals deliver no key-up events.
	PaddleHoldTicks int `yaml:"paddle_hold_ticks"`
}

// Clone returns a copy that shares no slices with c.
func (c BreakoutConfig) Clone() BreakoutConfig {
	out := c
	out.Bricks.Colors = append([]string(nil), c.Bricks.Colors...)
	return out
}
