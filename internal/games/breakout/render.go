package breakout

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar  = '='
	BallChar    = '●'
	BrickChar   = '█'
	BorderHoriz = '─'
)

// Minimum screen size the game can be drawn on.
const (
	minScreenW = 30
	minScreenH = 15
)

// hudRows is the number of rows above the playfield.
const hudRows = 2

// viewport maps arena units to screen cells.
type viewport struct {
	screenW, screenH int
	arenaW, arenaH   float64
}

func newViewport(b Bounds, screenW, screenH int) viewport {
	return viewport{
		screenW: screenW,
		screenH: screenH,
		arenaW:  b.Width(),
		arenaH:  b.Height(),
	}
}

func (v viewport) tooSmall() bool {
	return v.screenW < minScreenW || v.screenH < minScreenH
}

func (v viewport) fieldH() int {
	return v.screenH - hudRows
}

// cellX converts an arena x coordinate to a screen column.
func (v viewport) cellX(x float64) int {
	return int(math.Floor(x / v.arenaW * float64(v.screenW)))
}

// cellY converts an arena y coordinate to a screen row.
func (v viewport) cellY(y float64) int {
	return hudRows + int(math.Floor(y/v.arenaH*float64(v.fieldH())))
}

// arenaX converts a screen column to the arena x coordinate of the cell center.
func (v viewport) arenaX(col int) float64 {
	if v.screenW <= 0 {
		return 0
	}
	return (float64(col) + 0.5) * v.arenaW / float64(v.screenW)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	view := newViewport(g.session, dst.Width(), dst.Height())
	if view.tooSmall() {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	g.renderBricks(dst, view)
	g.renderPaddle(dst, view)
	g.renderBall(dst, view)
	g.renderOverlay(dst)
}

// renderHUD draws score, lives and title on the top row and a separator below.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", s.Score()))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", s.Lives()))

	title := g.Title()
	dst.DrawText(dst.Width()-utf8.RuneCountInString(title)-1, 0, title)

	if msg := s.DebugMessage(); msg != "" {
		dst.DrawText(1, 1, msg)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
}

// renderBricks draws unbroken bricks. Every brick covers at least one cell.
func (g *Game) renderBricks(dst *core.Screen, view viewport) {
	for _, b := range g.session.Bricks() {
		if b.Broken() {
			continue
		}
		x0 := view.cellX(b.X)
		x1 := max(view.cellX(b.X+b.Width), x0+1)
		y := view.cellY(b.Y)
		color := core.ParseColor(b.Color)

		// Leave a one-cell gap between neighbours when there is room.
		if x1-x0 > 2 {
			x1--
		}
		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, BrickChar, color)
		}
	}
}

// renderPaddle draws the paddle on the row of its top edge.
func (g *Game) renderPaddle(dst *core.Screen, view viewport) {
	p := g.session.Paddle()
	if p == nil {
		return
	}
	x0 := view.cellX(p.X)
	x1 := max(view.cellX(p.X+p.Width), x0+1)
	y := min(view.cellY(p.Y), dst.Height()-1)
	for x := x0; x < x1; x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorCyan)
	}
}

// renderBall draws the ball at its center cell.
func (g *Game) renderBall(dst *core.Screen, view viewport) {
	b := g.session.Ball()
	if b == nil {
		return
	}
	x := view.cellX(b.X)
	y := view.cellY(b.Y)
	if y < hudRows {
		return
	}
	dst.SetColored(x, y, BallChar, core.ColorWhite)
}

// renderOverlay draws state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.session
	switch s.State() {
	case StateStart:
		dst.DrawTextCentered(dst.Height()/2, "Press SPACE to start")
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", s.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", s.Score())
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
