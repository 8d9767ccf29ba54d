package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '█'
	FistChar      = '▶'
	GroundObsChar = '▓'
	AirObsChar    = '▒'
	OrbChar       = '●'
	ParticleChar  = '·'
	GroundChar    = '═'
	HeartFull     = '♥'
	HeartEmpty    = '♡'
)

// hudRows is the number of rows reserved at the top for the HUD.
const hudRows = 2

// viewport maps world units onto screen cells below the HUD.
type viewport struct {
	sx, sy float64
	offX   int
	top    int
}

func newViewport(dst *core.Screen, world config.WorldConfig, shake, t float64) viewport {
	h := max(dst.Height()-hudRows, 1)
	v := viewport{
		sx:  float64(dst.Width()) / world.Width,
		sy:  float64(h) / world.Height,
		top: hudRows,
	}
	if shake > 0 {
		// horizontal jitter, strongest right after the hit
		v.offX = int(math.Round(math.Sin(t*57) * shake * 4))
	}
	return v
}

func (v viewport) x(wx float64) int { return int(math.Floor(wx*v.sx)) + v.offX }
func (v viewport) y(wy float64) int { return int(math.Floor(wy*v.sy)) + v.top }

// rect converts a world rectangle to at least one cell.
func (v viewport) rect(r core.Rect) (x, y, w, h int) {
	x, y = v.x(r.X), v.y(r.Y)
	w = max(v.x(r.Right())-x, 1)
	h = max(v.y(r.Bottom())-y, 1)
	return x, y, w, h
}

// RenderSnapshot draws a frame: world, HUD and the overlay for the phase.
func RenderSnapshot(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	v := newViewport(dst, snap.World, snap.Shake, snap.AnimTime)

	groundRow := v.y(snap.World.GroundY())
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGray)

	for _, o := range snap.Orbs {
		dst.SetColored(v.x(o.X), v.y(o.Y), OrbChar, core.ColorBrightCyan)
	}
	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, o)
	}
	drawPlayer(dst, v, snap)
	for _, p := range snap.Particles {
		dst.SetColored(v.x(p.X), v.y(p.Y), ParticleChar, core.TagColor(p.Tag))
	}

	drawHUD(dst, snap)

	if snap.Toast != "" && snap.Phase == PhaseRunning {
		dst.DrawTextCentered(hudRows+1, snap.Toast, core.ColorBrightYellow)
	}

	switch snap.Phase {
	case PhaseTitle:
		drawCenteredMessage(dst, "ORB DASH",
			fmt.Sprintf("Best: %d  |  Enter to start", int(snap.Best)), core.ColorBrightMagenta)
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "P to resume  |  B for title", core.ColorYellow)
	case PhaseLevelComplete:
		drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d COMPLETE!", snap.Level),
			fmt.Sprintf("Score: %d  |  Enter for next level", int(snap.Score)), core.ColorBrightGreen)
	case PhaseGameOver:
		title := "GAME OVER"
		color := core.ColorBrightRed
		if snap.NewBest {
			title = "NEW BEST!"
			color = core.ColorBrightYellow
		}
		drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  Best: %d  |  Enter to retry", int(snap.Score), int(snap.Best)), color)
	}
}

func drawObstacle(dst *core.Screen, v viewport, o Obstacle) {
	ch, color := GroundObsChar, core.ColorOrange
	if o.Kind == config.ObstacleAir {
		ch, color = AirObsChar, core.ColorMagenta
	}
	x, y, w, h := v.rect(core.NewRect(o.X, o.Y-o.Height, o.Width, o.Height))
	dst.FillRect(x, y, w, h, ch, color)
}

func drawPlayer(dst *core.Screen, v viewport, snap Snapshot) {
	p := snap.Player

	color := core.ColorBrightGreen
	switch p.Pose {
	case PoseHurt:
		color = core.ColorBrightRed
	case PoseAttack:
		color = core.ColorBrightYellow
	case PoseVictory:
		color = core.ColorBrightMagenta
	}
	// blink while invincible
	if p.Invincible && math.Sin(snap.Elapsed*30) < 0 {
		color = core.ColorGray
	}

	body := core.NewRect(p.X-p.Width*0.3, p.Y-p.Height*0.72, p.Width*0.6, p.Height*0.72)
	x, y, w, h := v.rect(body)
	dst.FillRect(x, y, w, h, PlayerChar, color)

	if p.Attacking {
		dst.SetColored(x+w, y+h/2, FistChar, core.ColorBrightYellow)
	}
}

// drawHUD renders health, score, combo, level and the fun and progress bars.
func drawHUD(dst *core.Screen, snap Snapshot) {
	var hearts strings.Builder
	for i := 0; i < snap.MaxHealth; i++ {
		if i < snap.Health {
			hearts.WriteRune(HeartFull)
		} else {
			hearts.WriteRune(HeartEmpty)
		}
	}
	dst.DrawTextColored(1, 0, hearts.String(), core.ColorBrightRed)

	left := fmt.Sprintf(" Score: %d  Best: %d", int(snap.Score), int(snap.Best))
	dst.DrawTextColored(snap.MaxHealth+1, 0, left, core.ColorWhite)

	if snap.Combo > 1 {
		combo := fmt.Sprintf(" x%d ", snap.Combo)
		dst.DrawTextColored(snap.MaxHealth+2+len(left), 0, combo, core.ColorBrightCyan)
	}

	level := fmt.Sprintf("L%d %s ", snap.Level, snap.LevelName)
	dst.DrawTextColored(dst.Width()-len([]rune(level))-1, 0, level, core.ColorBrightMagenta)

	barW := max(dst.Width()/3, 4)
	dst.DrawTextColored(1, 1, "Fun ", core.ColorYellow)
	drawBar(dst, 5, 1, barW, ratio(snap.Fun, snap.FunMax), core.ColorYellow)

	progX := 5 + barW + 2
	dst.DrawTextColored(progX, 1, "Run ", core.ColorGreen)
	drawBar(dst, progX+4, 1, max(dst.Width()-progX-6, 4), snap.Progress(), core.ColorGreen)
}

func drawBar(dst *core.Screen, x, y, w int, fill float64, c core.Color) {
	filled := int(math.Round(fill * float64(w)))
	for i := 0; i < w; i++ {
		if i < filled {
			dst.SetColored(x+i, y, '█', c)
		} else {
			dst.SetColored(x+i, y, '░', core.ColorGray)
		}
	}
}

func ratio(v, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return core.ClampF(v/total, 0, 1)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, c)
	dst.DrawTextColored(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorWhite)
}
