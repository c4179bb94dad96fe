// Package breakout implements a ball-and-paddle brick breaker: entity motion,
// collision resolution and the round state machine.
package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Bounds exposes the arena size to entities.
type Bounds interface {
	Width() float64
	Height() float64
}

// EventSink receives events raised by entities.
type EventSink interface {
	BallLost()
}

// Arena is the capability a Ball holds on its owner.
// It is deliberately narrower than *Session.
type Arena interface {
	Bounds
	EventSink
}

// Ball is the bouncing ball. X and Y are its center, Size its radius.
// DX and DY are tracked independently of Speed.
type Ball struct {
	X, Y   float64
	Size   float64
	Speed  float64
	DX, DY float64

	arena       Arena
	startSpeed  float64
	startOffset float64
}

// NewBall creates a ball at the round-start position.
func NewBall(arena Arena, cfg config.BallConfig) *Ball {
	b := &Ball{
		Size:        cfg.Size,
		arena:       arena,
		startSpeed:  cfg.Speed,
		startOffset: cfg.StartOffset,
	}
	b.Reset()
	return b
}

// Update moves the ball one frame and bounces it off the side and top walls.
// Falling past the bottom is reported to the arena instead of being handled here.
func (b *Ball) Update() {
	b.X += b.DX
	b.Y += b.DY

	if b.X-b.Size < 0 || b.X+b.Size > b.arena.Width() {
		b.DX = -b.DX
	}
	if b.Y-b.Size < 0 {
		b.DY = -b.DY
	}
	if b.Y-b.Size > b.arena.Height() {
		b.arena.BallLost()
	}
}

// Box returns the ball's bounding square.
func (b *Ball) Box() core.Box {
	return core.SquareAround(b.X, b.Y, b.Size)
}

// CollidesWith reports whether the ball's bounding square overlaps r.
func (b *Ball) CollidesWith(r core.Box) bool {
	return b.Box().Overlaps(r)
}

// Reset puts the ball back at the round-start position with start speed,
// heading up and to the right.
func (b *Ball) Reset() {
	b.X = b.arena.Width() / 2
	b.Y = b.arena.Height() - b.startOffset
	b.Speed = b.startSpeed
	b.DX = b.Speed
	b.DY = -b.Speed
}

// Paddle is the player-controlled paddle. X and Y are its top-left corner.
type Paddle struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
	DX            float64 // velocity intent: -Speed, 0 or +Speed

	bounds Bounds
}

// NewPaddle creates a paddle centered horizontally near the arena bottom.
func NewPaddle(bounds Bounds, cfg config.PaddleConfig) *Paddle {
	return &Paddle{
		X:      (bounds.Width() - cfg.Width) / 2,
		Y:      bounds.Height() - cfg.Height - cfg.BottomOffset,
		Width:  cfg.Width,
		Height: cfg.Height,
		Speed:  cfg.Speed,
		bounds: bounds,
	}
}

// Update applies the velocity intent and keeps the paddle inside the arena.
func (p *Paddle) Update() {
	p.X += p.DX
	p.clamp()
}

// MoveLeft sets the intent to move left.
func (p *Paddle) MoveLeft() { p.DX = -p.Speed }

// MoveRight sets the intent to move right.
func (p *Paddle) MoveRight() { p.DX = p.Speed }

// Stop clears the velocity intent.
func (p *Paddle) Stop() { p.DX = 0 }

// SetPosition centers the paddle on x, then clamps it like Update does.
func (p *Paddle) SetPosition(x float64) {
	p.X = x - p.Width/2
	p.clamp()
}

func (p *Paddle) clamp() {
	p.X = core.Clamp(p.X, 0, p.bounds.Width()-p.Width)
}

// Box returns the paddle rectangle.
func (p *Paddle) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Brick is one breakable brick. Once broken it stays broken for the round.
type Brick struct {
	X, Y          float64
	Width, Height float64
	Color         string

	broken bool
}

// NewBrick creates an unbroken brick.
func NewBrick(x, y, w, h float64, color string) *Brick {
	return &Brick{X: x, Y: y, Width: w, Height: h, Color: color}
}

// Break marks the brick broken. Calling it again has no effect.
func (b *Brick) Break() {
	b.broken = true
}

// Broken reports whether the brick has been hit.
func (b *Brick) Broken() bool {
	return b.broken
}

// Box returns the brick rectangle.
func (b *Brick) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.Width, b.Height)
}
