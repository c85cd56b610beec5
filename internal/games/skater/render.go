package skater

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sats-skater/internal/core"
)

// Visual characters for rendering
const (
	GroundChar  = '═'
	DirtChar    = '░'
	BlockChar   = '▓'
	StackChar   = '▒'
	RampChar    = '◢'
	RailTopChar = '═'
	RailLegChar = '║'
	BoardChar   = '▬'
	HeadChar    = 'o'
	BodyChar    = '█'
	CrashChar   = 'x'
	SparkChar   = '✦'
)

// hudRows is the number of rows reserved above the play field.
const hudRows = 1

// view maps world pixels to screen cells.
type view struct {
	sx, sy float64
	top    int
}

func (g *Game) view(dst *core.Screen) view {
	rows := dst.Height() - hudRows
	return view{
		sx:  float64(dst.Width()) / g.cfg.World.FieldWidth,
		sy:  float64(rows) / g.cfg.World.FieldHeight,
		top: hudRows,
	}
}

func (v view) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v view) row(y float64) int { return v.top + int(math.Floor(y*v.sy)) }

// cells returns the cell rectangle covering a world box, at least 1x1.
func (v view) cells(b core.Box) core.Rect {
	x0, y0 := v.col(b.X), v.row(b.Y)
	x1, y1 := v.col(b.Right()), v.row(b.Bottom())
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.actor == nil {
		return
	}
	v := g.view(dst)

	groundRow := v.row(g.cfg.World.GroundY)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGray)
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), DirtChar, core.ColorGray)
	}

	for _, o := range g.gen.Obstacles() {
		g.drawObstacle(dst, v, o)
	}
	for _, p := range g.gen.PowerUps() {
		g.drawPowerUp(dst, v, p)
	}
	g.drawActor(dst, v)
	g.drawHUD(dst)

	switch {
	case g.gameOver:
		g.drawCenteredMessage(dst, "WIPEOUT", fmt.Sprintf("%d sats  |  Press R to restart", g.actor.Score()))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.actor.State() == StateIdle:
		g.drawCenteredMessage(dst, "SATS SKATER", "Press SPACE to drop in")
	}
}

func (g *Game) drawObstacle(dst *core.Screen, v view, o Obstacle) {
	r := v.cells(o.Box())
	color := core.ColorOrange
	switch {
	case o.Hit:
		color = core.ColorRed
	case o.DoubleJump:
		color = core.ColorMagenta
	case o.Kind == KindRail:
		color = core.ColorCyan
	}

	switch o.Kind {
	case KindRail:
		dst.DrawHLine(r.X, r.Y, r.W, RailTopChar, color)
		for y := r.Y + 1; y < r.Bottom(); y++ {
			dst.SetColored(r.X, y, RailLegChar, color)
			dst.SetColored(r.Right()-1, y, RailLegChar, color)
		}
	case KindRamp:
		// Slope rises toward the trailing edge.
		for dx := 0; dx < r.W; dx++ {
			h := core.Max(1, (dx+1)*r.H/r.W)
			for dy := 0; dy < h; dy++ {
				ch := BlockChar
				if dy == h-1 {
					ch = RampChar
				}
				dst.SetColored(r.X+dx, r.Bottom()-1-dy, ch, color)
			}
		}
	default:
		ch := BlockChar
		if o.Stacked() {
			ch = StackChar
		}
		dst.DrawRect(r, ch, color)
	}
}

func (g *Game) drawPowerUp(dst *core.Screen, v view, p PowerUp) {
	r := v.cells(p.Box())
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	if p.Collected {
		if p.CollectProgress(g.cfg.PowerUps.CollectAnimMs) < 1 {
			dst.SetColored(cx, cy-1, SparkChar, core.ColorYellow)
		}
		return
	}
	dst.SetColored(cx, cy, p.Kind.Glyph(), core.ColorYellow)
}

func (g *Game) drawActor(dst *core.Screen, v view) {
	a := g.actor
	r := v.cells(a.Box())
	cx := r.X + r.W/2

	if a.Crashed() {
		dst.SetColored(cx, r.Bottom()-1, CrashChar, core.ColorRed)
		dst.DrawHLine(r.X, r.Bottom()-1, r.W, BoardChar, core.ColorRed)
		return
	}

	color := core.ColorGreen
	if a.CurrentTrick() != TrickNone {
		color = core.ColorMagenta
	}
	dst.SetColored(cx, r.Y, HeadChar, color)
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		dst.SetColored(cx, y, BodyChar, color)
	}
	dst.DrawHLine(r.X, r.Bottom()-1, r.W, BoardChar, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf(" ₿ %d  HI %d  %.0fm ", g.actor.Score(), g.highScore, g.actor.Distance()/10)
	dst.DrawTextColored(1, 0, left, core.ColorYellow)

	right := fmt.Sprintf(" SPD %.0f ", g.gen.Speed())
	if held := g.actor.HeldPowerUp(); held != TrickNone {
		right = fmt.Sprintf(" [%c %s] ", held.Glyph(), held) + right
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
