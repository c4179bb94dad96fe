package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func newTestPaddle() *Paddle {
	return NewPaddle(newFakeArena(), testConfig().Paddle) // X=350, Y=580, 100x10
}

func TestPaddleHitCenterGoesStraightUp(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	paddle := newTestPaddle()
	ball := &Ball{X: 400, Y: 575, Size: 10, Speed: 4, DX: 2, DY: -2}

	report := engine.Check(ball, paddle, nil, nil)

	if !report.PaddleHit {
		t.Fatal("expected paddle hit")
	}
	if !approx(ball.Speed, 4.2) {
		t.Errorf("Speed = %v, expected 4.2", ball.Speed)
	}
	if ball.DX != 0 {
		t.Errorf("DX = %v, expected 0 for a center hit", ball.DX)
	}
	if ball.DY != -ball.Speed {
		t.Errorf("DY = %v, expected -Speed (%v)", ball.DY, -ball.Speed)
	}
}

func TestPaddleHitAngles(t *testing.T) {
	tests := []struct {
		name   string
		ballX  float64
		wantDX float64
	}{
		{"left edge", 350, -6.3},
		{"quarter", 375, -3.15},
		{"right edge", 450, 6.3},
		{"beyond right edge", 455, 4.2 * 1.1 * 1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewCollisionEngine(testConfig())
			ball := &Ball{X: tc.ballX, Y: 575, Size: 10, Speed: 4, DX: 1, DY: 3}

			engine.Check(ball, newTestPaddle(), nil, nil)

			if math.Abs(ball.DX-tc.wantDX) > 1e-9 {
				t.Errorf("DX = %v, expected %v", ball.DX, tc.wantDX)
			}
			if ball.DY >= 0 {
				t.Errorf("DY = %v, ball should always leave upward", ball.DY)
			}
		})
	}
}

func TestPaddleEdgeHitMayExceedSpeed(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	ball := &Ball{X: 350, Y: 575, Size: 10, Speed: 4, DX: -3, DY: 3}

	engine.Check(ball, newTestPaddle(), nil, nil)

	// DX is not renormalized against Speed.
	if math.Abs(ball.DX) <= ball.Speed {
		t.Errorf("|DX| = %v should exceed Speed = %v on an edge hit", math.Abs(ball.DX), ball.Speed)
	}
}

func TestPaddleMiss(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	ball := &Ball{X: 400, Y: 500, Size: 10, Speed: 4, DX: 2, DY: 2}

	report := engine.Check(ball, newTestPaddle(), nil, nil)

	if report.PaddleHit {
		t.Error("unexpected paddle hit")
	}
	if ball.DX != 2 || ball.DY != 2 || ball.Speed != 4 {
		t.Errorf("ball changed without a hit: %+v", *ball)
	}
}

func TestSpeedNeverExceedsMax(t *testing.T) {
	cfg := testConfig()
	engine := NewCollisionEngine(cfg)
	ball := &Ball{X: 400, Y: 575, Size: 10, Speed: 7.9, DX: 0, DY: 4}

	for range 5 {
		engine.Check(ball, newTestPaddle(), nil, nil)
		if ball.Speed > cfg.Ball.MaxSpeed {
			t.Fatalf("Speed = %v exceeds max %v", ball.Speed, cfg.Ball.MaxSpeed)
		}
	}
	if ball.Speed != cfg.Ball.MaxSpeed {
		t.Errorf("Speed = %v, expected to settle at max %v", ball.Speed, cfg.Ball.MaxSpeed)
	}
}

func TestBrickHitFromBelow(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	brick := NewBrick(100, 100, 75, 20, "red")
	ball := &Ball{X: 137.5, Y: 128, Size: 10, Speed: 4, DX: 1.5, DY: -4}
	var score scoreCounter

	report := engine.Check(ball, newTestPaddle(), []*Brick{brick}, &score)

	if report.BricksHit != 1 {
		t.Fatalf("BricksHit = %d, expected 1", report.BricksHit)
	}
	if !brick.Broken() {
		t.Error("brick should be broken")
	}
	if score.total != 10 {
		t.Errorf("score = %d, expected 10", score.total)
	}
	if ball.DX != 1.5 {
		t.Errorf("DX = %v, expected unchanged 1.5", ball.DX)
	}
	if !approx(ball.DY, 4.2) {
		t.Errorf("DY = %v, expected 4.2 (reversed, resnapped to new speed)", ball.DY)
	}
}

func TestBrickHitFromSide(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	brick := NewBrick(100, 100, 75, 20, "red")
	ball := &Ball{X: 92, Y: 110, Size: 10, Speed: 4, DX: 4, DY: -1}

	engine.Check(ball, newTestPaddle(), []*Brick{brick}, nil)

	if ball.DX != -4 {
		t.Errorf("DX = %v, expected -4", ball.DX)
	}
	// Vertical direction kept, magnitude set to the new speed
	if !approx(ball.DY, -4.2) {
		t.Errorf("DY = %v, expected -4.2", ball.DY)
	}
}

func TestBrickCornerHitFlipsBoth(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	brick := NewBrick(100, 100, 75, 20, "red")
	ball := &Ball{X: 92, Y: 92, Size: 10, Speed: 4, DX: 3, DY: 3}

	engine.Check(ball, newTestPaddle(), []*Brick{brick}, nil)

	if ball.DX != -3 {
		t.Errorf("DX = %v, expected -3", ball.DX)
	}
	if !approx(ball.DY, -4.2) {
		t.Errorf("DY = %v, expected -4.2", ball.DY)
	}
}

func TestBounceSides(t *testing.T) {
	brick := core.NewBox(100, 100, 75, 20)

	tests := []struct {
		name         string
		ball         core.Box
		flipX, flipY bool
	}{
		{"from below", core.SquareAround(137.5, 128, 10), false, true},
		{"from above", core.SquareAround(137.5, 92, 10), false, true},
		{"from left", core.SquareAround(92, 110, 10), true, false},
		{"from right", core.SquareAround(183, 110, 10), true, false},
		{"top-left corner", core.SquareAround(92, 92, 10), true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx, fy := bounceSides(tc.ball, brick)
			if fx != tc.flipX || fy != tc.flipY {
				t.Errorf("bounceSides = (%v, %v), expected (%v, %v)", fx, fy, tc.flipX, tc.flipY)
			}
		})
	}
}

func TestBrokenBrickIsIgnored(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	brick := NewBrick(100, 100, 75, 20, "red")
	brick.Break()
	ball := &Ball{X: 137.5, Y: 128, Size: 10, Speed: 4, DX: 1.5, DY: -4}
	var score scoreCounter

	report := engine.Check(ball, newTestPaddle(), []*Brick{brick}, &score)

	if report.BricksHit != 0 || score.calls != 0 {
		t.Errorf("broken brick scored: hits=%d calls=%d", report.BricksHit, score.calls)
	}
	if ball.DY != -4 || ball.Speed != 4 {
		t.Errorf("ball changed on a broken brick: %+v", *ball)
	}
}

// twoBricks returns neighbours separated by the default padding, and a ball
// overlapping both from below.
func twoBricks() ([]*Brick, *Ball) {
	bricks := []*Brick{
		NewBrick(100, 100, 75, 20, "red"),
		NewBrick(185, 100, 75, 20, "red"),
	}
	ball := &Ball{X: 180, Y: 128, Size: 10, Speed: 4, DX: 0, DY: -4}
	return bricks, ball
}

func TestMultiBrickHitInOneFrame(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	bricks, ball := twoBricks()
	var score scoreCounter

	report := engine.Check(ball, newTestPaddle(), bricks, &score)

	if report.BricksHit != 2 {
		t.Fatalf("BricksHit = %d, expected 2", report.BricksHit)
	}
	if !bricks[0].Broken() || !bricks[1].Broken() {
		t.Error("both bricks should be broken")
	}
	if score.total != 20 {
		t.Errorf("score = %d, expected 20", score.total)
	}
	// Each hit flips DY and adds one speed increment.
	if !approx(ball.Speed, 4.4) {
		t.Errorf("Speed = %v, expected 4.4", ball.Speed)
	}
	if !approx(ball.DY, -4.4) {
		t.Errorf("DY = %v, expected -4.4 after two flips", ball.DY)
	}
}

func TestFirstHitOnlyMode(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.FirstHitOnly = true
	engine := NewCollisionEngine(cfg)
	bricks, ball := twoBricks()
	var score scoreCounter

	report := engine.Check(ball, newTestPaddle(), bricks, &score)

	if report.BricksHit != 1 {
		t.Fatalf("BricksHit = %d, expected 1", report.BricksHit)
	}
	if !bricks[0].Broken() || bricks[1].Broken() {
		t.Error("only the first brick in layout order should break")
	}
	if score.total != 10 {
		t.Errorf("score = %d, expected 10", score.total)
	}
	if !approx(ball.DY, 4.2) {
		t.Errorf("DY = %v, expected 4.2", ball.DY)
	}
}

func TestCheckWithoutEntities(t *testing.T) {
	engine := NewCollisionEngine(testConfig())
	bricks, ball := twoBricks()

	if r := engine.Check(nil, newTestPaddle(), bricks, nil); r != (CollisionReport{}) {
		t.Errorf("nil ball report = %+v", r)
	}
	if r := engine.Check(ball, nil, bricks, nil); r != (CollisionReport{}) {
		t.Errorf("nil paddle report = %+v", r)
	}
	if bricks[0].Broken() || bricks[1].Broken() {
		t.Error("no brick should break without a paddle")
	}
}
