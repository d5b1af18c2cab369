package tui

import (
	"fmt"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/runner"
)

// Glyphs used by the terminal renderer.
const (
	glyphPlayer       = '█'
	glyphCactus       = '▓'
	glyphFlyer        = '▼'
	glyphCloud        = '░'
	glyphGround       = '═'
	glyphGroundDetail = '-'
)

// Ground texture repeats every groundPeriod field pixels and scrolls with the
// score.
const (
	groundPeriod = 40
	groundDash   = 20
)

// Idle screen hint.
const hintText = "jump over ground obstacles, duck under flying ones"

// viewport maps field coordinates to screen cells. Row 0 is the HUD; the
// field occupies the rows below it.
type viewport struct {
	cols, rows     int
	fieldW, fieldH float64
}

func newViewport(dst *core.Screen, field config.FieldConfig) viewport {
	return viewport{
		cols:   dst.Width(),
		rows:   dst.Height() - 1,
		fieldW: field.Width,
		fieldH: field.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(x * float64(v.cols) / v.fieldW)
}

// row keeps field content below the HUD.
func (v viewport) row(y float64) int {
	return core.Clamp(1+int(y*float64(v.rows)/v.fieldH), 1, v.rows)
}

// rect returns the cell box covering r. Anything on screen is at least one
// cell in each direction.
func (v viewport) rect(r core.Rect) (x, y, w, h int) {
	x, y = v.col(r.X), v.row(r.Y)
	w = max(v.col(r.Right())-x, 1)
	h = max(v.row(r.Bottom())-y, 1)
	return x, y, w, h
}

// Draw renders one frame from snap alone. dst is cleared first.
func Draw(dst *core.Screen, snap runner.Snapshot, cfg config.RunnerConfig) {
	dst.Clear()
	if dst.Width() < 10 || dst.Height() < 4 {
		dst.DrawText(0, 0, "too small", core.ColorDefault)
		return
	}

	v := newViewport(dst, cfg.Field)
	pal := cfg.Palette

	for _, c := range snap.Clouds {
		x, y, w, h := v.rect(core.NewRect(c.X, c.Y, c.Width, c.Height))
		dst.FillRect(x, y, w, h, glyphCloud, pal.Cloud)
	}

	drawGround(dst, v, cfg.Field.GroundY, snap.Score, pal)

	for _, o := range snap.Obstacles {
		glyph := glyphCactus
		if o.Flying {
			glyph = glyphFlyer
		}
		x, y, w, h := v.rect(o.Rect())
		dst.FillRect(x, y, w, h, glyph, o.Color)
	}

	playerColor := pal.Player
	if snap.Player.Posture == runner.PostureDucking {
		playerColor = pal.PlayerDucking
	}
	x, y, w, h := v.rect(snap.Player.Rect())
	dst.FillRect(x, y, w, h, glyphPlayer, playerColor)

	drawHUD(dst, snap, pal.Text)

	switch {
	case snap.ShowsIdlePrompt():
		drawIdle(dst, cfg.Title, snap.HighScore, pal.Text)
	case snap.GameOver:
		drawGameOver(dst, snap.Score, snap.HighScore, pal.Text)
	}
}

func drawGround(dst *core.Screen, v viewport, groundY float64, score int, pal config.Palette) {
	row := v.row(groundY)
	dst.DrawHLine(0, row, dst.Width(), glyphGround, pal.Ground)

	if row+1 >= dst.Height() {
		return
	}
	offset := float64(score % groundPeriod)
	for fx := -offset; fx < v.fieldW; fx += groundPeriod {
		x0, x1 := v.col(fx), v.col(fx+groundDash)
		dst.DrawHLine(x0, row+1, max(x1-x0, 1), glyphGroundDetail, pal.GroundDetail)
	}
}

func drawHUD(dst *core.Screen, snap runner.Snapshot, c core.Color) {
	left := fmt.Sprintf(" SCORE %05d", snap.Score)
	right := fmt.Sprintf("HI %05d  SPD %.1f ", snap.HighScore, snap.Speed)
	dst.DrawText(0, 0, left, c)
	dst.DrawText(dst.Width()-len(right), 0, right, c)
}

func drawIdle(dst *core.Screen, title string, highScore int, c core.Color) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, title, c)
	dst.DrawTextCentered(mid, "press ENTER to start", c)
	dst.DrawTextCentered(mid+1, hintText, c)
	if highScore > 0 {
		dst.DrawTextCentered(mid+2, fmt.Sprintf("high score %d", highScore), c)
	}
}

func drawGameOver(dst *core.Screen, score, highScore int, c core.Color) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("score %d", score),
		fmt.Sprintf("high score %d", highScore),
		"enter: play again",
	}

	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	w += 4
	h := len(lines) + 2
	x := (dst.Width() - w) / 2
	y := max((dst.Height()-h)/2, 1)

	dst.FillRect(x, y, w, h, ' ', core.ColorDefault)
	dst.DrawBox(x, y, w, h, c)
	for i, l := range lines {
		dst.DrawTextCentered(y+1+i, l, c)
	}
}
