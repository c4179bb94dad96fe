package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// paddleAngleFactor exaggerates bounce angles near the paddle edges.
const paddleAngleFactor = 1.5

// ScoreSink receives points awarded by the collision engine.
type ScoreSink interface {
	AddScore(points int)
}

// CollisionReport summarizes what one collision pass did.
type CollisionReport struct {
	PaddleHit bool
	BricksHit int
}

// CollisionEngine resolves ball/paddle and ball/brick contacts once per frame.
// Wall contacts are handled by Ball.Update.
type CollisionEngine struct {
	speedIncrement float64
	maxSpeed       float64
	pointsPerBrick int
	firstHitOnly   bool
}

// NewCollisionEngine creates an engine from the ball and gameplay settings.
func NewCollisionEngine(cfg config.BreakoutConfig) *CollisionEngine {
	return &CollisionEngine{
		speedIncrement: cfg.Ball.SpeedIncrement,
		maxSpeed:       cfg.Ball.MaxSpeed,
		pointsPerBrick: cfg.Gameplay.PointsPerBrick,
		firstHitOnly:   cfg.Gameplay.FirstHitOnly,
	}
}

// Check runs the paddle test, then the brick pass.
// It does nothing when the ball or paddle is missing.
func (e *CollisionEngine) Check(ball *Ball, paddle *Paddle, bricks []*Brick, sink ScoreSink) CollisionReport {
	var report CollisionReport
	if ball == nil || paddle == nil {
		return report
	}

	report.PaddleHit = e.checkPaddle(ball, paddle)
	report.BricksHit = e.checkBricks(ball, bricks, sink)
	return report
}

// checkPaddle sends the ball upward on overlap, steering it by where it hit.
func (e *CollisionEngine) checkPaddle(ball *Ball, paddle *Paddle) bool {
	if !ball.CollidesWith(paddle.Box()) {
		return false
	}

	e.speedUp(ball)

	// Always up, even on a side graze, so the ball cannot sink into the paddle.
	ball.DY = -ball.Speed

	// 0 at the left edge, 1 at the right edge, mapped to [-1, 1].
	hitPosition := (ball.X - paddle.X) / paddle.Width
	ball.DX = ball.Speed * (hitPosition*2 - 1) * paddleAngleFactor
	return true
}

// checkBricks breaks every unbroken brick the ball overlaps, in layout order.
// Several bricks can be broken in one frame unless firstHitOnly is set.
func (e *CollisionEngine) checkBricks(ball *Ball, bricks []*Brick, sink ScoreSink) int {
	hits := 0
	for _, brick := range bricks {
		if brick.Broken() || !ball.CollidesWith(brick.Box()) {
			continue
		}

		brick.Break()
		hits++
		if sink != nil {
			sink.AddScore(e.pointsPerBrick)
		}

		flipX, flipY := bounceSides(ball.Box(), brick.Box())
		if flipX {
			ball.DX = -ball.DX
		}
		if flipY {
			ball.DY = -ball.DY
		}

		e.speedUp(ball)
		ball.DY = core.Sign(ball.DY) * ball.Speed

		if e.firstHitOnly {
			break
		}
	}
	return hits
}

func (e *CollisionEngine) speedUp(ball *Ball) {
	ball.Speed = math.Min(ball.Speed+e.speedIncrement, e.maxSpeed)
}

// bounceSides picks the brick side nearest to the ball's facing edge.
// The left and right sides are vertical and flip DX, the top and bottom
// sides are horizontal and flip DY. A tie between the two (a corner)
// flips both.
func bounceSides(ball, brick core.Box) (flipX, flipY bool) {
	distLeft := math.Abs(ball.Right() - brick.Left())
	distRight := math.Abs(brick.Right() - ball.Left())
	distTop := math.Abs(ball.Bottom() - brick.Top())
	distBottom := math.Abs(brick.Bottom() - ball.Top())

	minDist := min(distLeft, distRight, distTop, distBottom)

	flipX = minDist == distLeft || minDist == distRight
	flipY = minDist == distTop || minDist == distBottom
	return flipX, flipY
}
