// Package snapshot draws Orb Dash frames and level plans as PNG images.
package snapshot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
	"github.com/vovakirdan/orb-dash/internal/games/runner"
)

// Palette shared by frame and plan images.
var (
	skyColor    = color.RGBA{12, 12, 28, 255}
	groundColor = color.RGBA{60, 60, 78, 255}
	hudColor    = color.RGBA{235, 235, 245, 255}
	shadowColor = color.RGBA{0, 0, 0, 160}
)

// coreColors maps terminal colors onto RGB for image output.
var coreColors = map[core.Color]color.RGBA{
	core.ColorDefault:       {220, 220, 220, 255},
	core.ColorRed:           {205, 49, 49, 255},
	core.ColorGreen:         {13, 188, 121, 255},
	core.ColorYellow:        {229, 229, 16, 255},
	core.ColorBlue:          {36, 114, 200, 255},
	core.ColorMagenta:       {188, 63, 188, 255},
	core.ColorCyan:          {17, 168, 205, 255},
	core.ColorWhite:         {229, 229, 229, 255},
	core.ColorBrightRed:     {241, 76, 76, 255},
	core.ColorBrightGreen:   {35, 209, 139, 255},
	core.ColorBrightYellow:  {245, 245, 67, 255},
	core.ColorBrightBlue:    {59, 142, 234, 255},
	core.ColorBrightMagenta: {214, 112, 214, 255},
	core.ColorBrightCyan:    {41, 184, 219, 255},
	core.ColorBrightWhite:   {255, 255, 255, 255},
	core.ColorOrange:        {255, 135, 0, 255},
	core.ColorGray:          {138, 138, 138, 255},
}

// RGB converts a terminal color to an image color.
func RGB(c core.Color) color.RGBA {
	if rgb, ok := coreColors[c]; ok {
		return rgb
	}
	return coreColors[core.ColorDefault]
}

// Frame draws snap at world resolution multiplied by scale.
func Frame(snap runner.Snapshot, scale float64) *gg.Context {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Max(snap.World.Width*scale, 1))
	h := int(math.Max(snap.World.Height*scale, 1))

	dc := gg.NewContext(w, h)
	dc.SetColor(skyColor)
	dc.Clear()

	dc.Push()
	dc.Scale(scale, scale)
	if snap.Shake > 0 {
		dc.Translate(math.Sin(snap.AnimTime*57)*snap.Shake*12, 0)
	}

	groundY := snap.World.GroundY()
	dc.SetColor(groundColor)
	dc.DrawRectangle(-snap.World.Width, groundY, snap.World.Width*3, snap.World.Height-groundY)
	dc.Fill()

	for _, o := range snap.Orbs {
		dc.SetColor(RGB(core.ColorBrightCyan))
		dc.DrawCircle(o.X, o.Y, o.Radius)
		dc.Fill()
	}

	for _, o := range snap.Obstacles {
		c := RGB(core.ColorOrange)
		if o.Kind == config.ObstacleAir {
			c = RGB(core.ColorMagenta)
		}
		dc.SetColor(c)
		dc.DrawRoundedRectangle(o.X, o.Y-o.Height, o.Width, o.Height, 4)
		dc.Fill()
	}

	drawPlayer(dc, snap.Player)

	for _, p := range snap.Particles {
		c := RGB(core.TagColor(p.Tag))
		c.A = uint8(255 * math.Min(math.Max(p.Life/0.6, 0.2), 1))
		dc.SetColor(c)
		dc.DrawCircle(p.X, p.Y, 3)
		dc.Fill()
	}
	dc.Pop()

	drawHUD(dc, snap, float64(w))
	return dc
}

func drawPlayer(dc *gg.Context, p runner.PlayerView) {
	c := RGB(core.ColorBrightGreen)
	switch p.Pose {
	case runner.PoseHurt:
		c = RGB(core.ColorBrightRed)
	case runner.PoseAttack:
		c = RGB(core.ColorBrightYellow)
	case runner.PoseVictory:
		c = RGB(core.ColorBrightMagenta)
	}
	if p.Invincible {
		c.A = 140
	}

	bodyW, bodyH := p.Width*0.6, p.Height*0.72
	dc.SetColor(c)
	dc.DrawRoundedRectangle(p.X-bodyW/2, p.Y-bodyH, bodyW, bodyH, 6)
	dc.Fill()
	dc.DrawCircle(p.X, p.Y-bodyH-p.Height*0.14, p.Height*0.14)
	dc.Fill()

	if p.Attacking {
		reach := bodyW/2 + 8 + 20*math.Sin(p.AttackProgress*math.Pi)
		dc.SetColor(RGB(core.ColorBrightYellow))
		dc.DrawCircle(p.X+reach, p.Y-bodyH/2, 8)
		dc.Fill()
	}
}

func drawHUD(dc *gg.Context, snap runner.Snapshot, width float64) {
	lines := []string{
		fmt.Sprintf("Score %d  Best %d  x%d", int(snap.Score), int(snap.Best), snap.Combo),
		fmt.Sprintf("Level %d %s  HP %d/%d", snap.Level, snap.LevelName, snap.Health, snap.MaxHealth),
	}
	for i, line := range lines {
		y := 16 + float64(i)*16
		dc.SetColor(shadowColor)
		dc.DrawString(line, 11, y+1)
		dc.SetColor(hudColor)
		dc.DrawString(line, 10, y)
	}

	// progress bar
	barW := math.Max(width-20, 1)
	dc.SetColor(groundColor)
	dc.DrawRectangle(10, 40, barW, 4)
	dc.Fill()
	dc.SetColor(RGB(core.ColorBrightGreen))
	dc.DrawRectangle(10, 40, barW*snap.Progress(), 4)
	dc.Fill()

	banner := ""
	switch snap.Phase {
	case runner.PhaseTitle:
		banner = "ORB DASH"
	case runner.PhasePaused:
		banner = "PAUSED"
	case runner.PhaseLevelComplete:
		banner = fmt.Sprintf("LEVEL %d COMPLETE!", snap.Level)
	case runner.PhaseGameOver:
		banner = "GAME OVER"
		if snap.NewBest {
			banner = "NEW BEST!"
		}
	}
	if banner != "" {
		dc.SetColor(hudColor)
		dc.DrawStringAnchored(banner, width/2, float64(dc.Height())/2, 0.5, 0.5)
	}
}

// Plan draws a level plan as a horizontal strip: obstacles as bars on the
// ground or in the air, orbs as dots at their height.
// pxPerUnit scales run distance to pixels.
func Plan(plan runner.LevelPlan, world config.WorldConfig, entities config.EntitiesConfig, pxPerUnit float64) *gg.Context {
	if pxPerUnit <= 0 {
		pxPerUnit = 0.25
	}
	const (
		margin = 20.0
		height = 160.0
	)
	span := math.Max(plan.Target, 1)
	for _, ev := range plan.Spawns {
		span = math.Max(span, ev.At)
	}
	w := int(span*pxPerUnit + 2*margin)

	dc := gg.NewContext(w, int(height))
	dc.SetColor(skyColor)
	dc.Clear()

	groundY := height - 30
	// world units above the ground fit into the strip height
	vScale := (groundY - 24) / math.Max(world.GroundY(), 1)
	x := func(at float64) float64 { return margin + at*pxPerUnit }

	dc.SetColor(groundColor)
	dc.DrawLine(margin, groundY, x(span), groundY)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetColor(RGB(core.ColorBrightGreen))
	dc.DrawLine(x(plan.Target), 20, x(plan.Target), groundY+10)
	dc.Stroke()

	for _, ev := range plan.Spawns {
		switch ev.Kind {
		case runner.SpawnObstacle:
			drawPlannedObstacle(dc, ev.Obstacle, entities.Obstacles, x(ev.At), groundY, vScale)
		case runner.SpawnOrb:
			h := ev.Orb.Height
			if h <= 0 {
				h = entities.Orbs.MinHeight + entities.Orbs.HeightRange/2
			}
			dc.SetColor(RGB(core.ColorBrightCyan))
			dc.DrawCircle(x(ev.At), groundY-h*vScale, math.Max(entities.Orbs.Radius*vScale, 2))
			dc.Fill()
		}
	}

	dc.SetColor(hudColor)
	dc.DrawString(fmt.Sprintf("Level %d  target %d  spawns %d  segments %d",
		plan.Level, int(plan.Target), len(plan.Spawns), len(plan.Segments)), margin, 14)
	return dc
}

func drawPlannedObstacle(dc *gg.Context, o config.ObstaclePlacement, def config.ObstacleDefaults, px, groundY, vScale float64) {
	width, height, lift := o.Width, o.Height, o.Lift
	c := RGB(core.ColorGray) // random type
	switch o.Type {
	case config.ObstacleGround:
		c = RGB(core.ColorOrange)
		if height <= 0 {
			height = def.GroundMinHeight + def.GroundHeightRange/2
		}
		if width <= 0 {
			width = def.GroundMinWidth + def.GroundWidthRange/2
		}
	case config.ObstacleAir:
		c = RGB(core.ColorMagenta)
		if height <= 0 {
			height = def.AirHeight
		}
		if width <= 0 {
			width = def.AirWidth
		}
		if lift <= 0 {
			lift = def.AirMinLift + def.AirLiftRange/2
		}
	default:
		if height <= 0 {
			height = def.GroundMinHeight
		}
		if width <= 0 {
			width = def.GroundMinWidth
		}
	}

	w := math.Max(width*vScale, 2)
	h := math.Max(height*vScale, 2)
	dc.SetColor(c)
	dc.DrawRectangle(px, groundY-lift*vScale-h, w, h)
	dc.Fill()
}

// SavePNG writes dc to path, creating parent directories.
func SavePNG(dc *gg.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: cannot create directory: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: cannot write %s: %w", path, err)
	}
	return nil
}
