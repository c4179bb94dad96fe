package config

import (
	"errors"
	"fmt"
)

// Validate reports every problem found in the config as one joined error.
func (c BreakoutConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("arena.width", c.Arena.Width)
	positive("arena.height", c.Arena.Height)
	positive("ball.size", c.Ball.Size)
	positive("ball.speed", c.Ball.Speed)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	positive("paddle.speed", c.Paddle.Speed)
	positive("bricks.width", c.Bricks.Width)
	positive("bricks.height", c.Bricks.Height)

	if c.Ball.MaxSpeed < c.Ball.Speed {
		errs = append(errs, fmt.Errorf("ball.max_speed (%v) is below ball.speed (%v)", c.Ball.MaxSpeed, c.Ball.Speed))
	}
	if c.Ball.SpeedIncrement < 0 {
		errs = append(errs, fmt.Errorf("ball.speed_increment must not be negative, got %v", c.Ball.SpeedIncrement))
	}
	if c.Paddle.Width > c.Arena.Width {
		errs = append(errs, fmt.Errorf("paddle.width (%v) exceeds arena.width (%v)", c.Paddle.Width, c.Arena.Width))
	}
	if c.Bricks.Rows <= 0 || c.Bricks.Columns <= 0 {
		errs = append(errs, fmt.Errorf("bricks grid must be at least 1x1, got %dx%d", c.Bricks.Rows, c.Bricks.Columns))
	}
	if len(c.Bricks.Colors) == 0 {
		errs = append(errs, errors.New("bricks.colors must not be empty"))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be positive, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.PaddleHoldTicks < 1 {
		errs = append(errs, fmt.Errorf("gameplay.paddle_hold_ticks must be at least 1, got %d", c.Gameplay.PaddleHoldTicks))
	}
	if c.Gameplay.PointsPerBrick < 0 {
		errs = append(errs, fmt.Errorf("gameplay.points_per_brick must not be negative, got %d", c.Gameplay.PointsPerBrick))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid breakout config: %w", errors.Join(errs...))
}
