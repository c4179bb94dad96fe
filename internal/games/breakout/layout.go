package breakout

import "github.com/vovakirdan/tui-breakout/internal/config"

// LayoutBricks builds the brick grid row by row, left to right.
// Row colors cycle through cfg.Colors.
func LayoutBricks(cfg config.BrickConfig) []*Brick {
	bricks := make([]*Brick, 0, cfg.Rows*cfg.Columns)
	for row := range cfg.Rows {
		color := ""
		if len(cfg.Colors) > 0 {
			color = cfg.Colors[row%len(cfg.Colors)]
		}
		for col := range cfg.Columns {
			x := cfg.OffsetLeft + float64(col)*(cfg.Width+cfg.Padding)
			y := cfg.OffsetTop + float64(row)*(cfg.Height+cfg.Padding)
			bricks = append(bricks, NewBrick(x, y, cfg.Width, cfg.Height, color))
		}
	}
	return bricks
}
