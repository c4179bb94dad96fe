package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the built-in Breakout configuration.
// It matches defaults/breakout.yaml and is used if the embedded file cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Ball: BallConfig{
			Size:           10,
			Speed:          4,
			MaxSpeed:       8,
			SpeedIncrement: 0.2,
			StartOffset:    30,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       10,
			Speed:        7,
			BottomOffset: 10,
		},
		Bricks: BrickConfig{
			Rows:       5,
			Columns:    9,
			Width:      75,
			Height:     20,
			Padding:    10,
			OffsetTop:  60,
			OffsetLeft: 30,
			Colors:     []string{"red", "orange", "yellow", "green", "blue"},
		},
		Gameplay: GameplayConfig{
			Lives:           3,
			PointsPerBrick:  10,
			FirstHitOnly:    false,
			PaddleHoldTicks: 8,
		},
	}
}
