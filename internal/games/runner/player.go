package runner

import (
	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
)

// Player is the runner character. X is fixed; Y is the feet position in
// world units with y growing downwards, so the ground line is the maximum.
type Player struct {
	x, y    float64
	vy      float64
	groundY float64
	cfg     config.PlayerConfig

	onGround       bool
	attackTimer    float64
	attackCooldown float64
	hurtTimer      float64
	invincible     float64
	jumpBuffer     float64
	coyoteTimer    float64
}

// NewPlayer creates a player standing on the ground.
func NewPlayer(cfg config.PlayerConfig, groundY float64) *Player {
	p := &Player{cfg: cfg, groundY: groundY}
	p.Reset()
	return p
}

// Reset puts the player back on the ground with all timers cleared.
func (p *Player) Reset() {
	p.x = p.cfg.X
	p.y = p.groundY
	p.vy = 0
	p.onGround = true
	p.attackTimer = 0
	p.attackCooldown = 0
	p.hurtTimer = 0
	p.invincible = 0
	p.jumpBuffer = 0
	p.coyoteTimer = 0
}

// RequestJump remembers a jump for the buffer window.
// The jump fires during Update as soon as coyote time allows it.
func (p *Player) RequestJump() {
	p.jumpBuffer = p.cfg.JumpBuffer
}

// TryAttack starts an attack unless the cooldown is still running.
func (p *Player) TryAttack() bool {
	if p.attackCooldown > 0 {
		return false
	}
	p.attackTimer = p.cfg.AttackDuration
	p.attackCooldown = p.cfg.AttackCooldown
	return true
}

// Hurt starts the hurt and invincibility windows.
func (p *Player) Hurt() {
	p.hurtTimer = p.cfg.HurtDuration
	p.invincible = p.cfg.InvincibleDuration
}

// Update integrates vertical motion and advances every timer.
// It reports whether a buffered jump fired this tick.
func (p *Player) Update(dt float64) bool {
	if !p.onGround {
		p.vy += p.cfg.Gravity * dt
	}
	p.y += p.vy * dt

	if p.y >= p.groundY {
		p.y = p.groundY
		p.vy = 0
		p.onGround = true
	}

	if p.onGround {
		p.coyoteTimer = p.cfg.CoyoteTime
	} else {
		p.coyoteTimer = core.Countdown(p.coyoteTimer, dt)
	}

	jumped := false
	if p.jumpBuffer > 0 {
		p.jumpBuffer = core.Countdown(p.jumpBuffer, dt)
		if p.coyoteTimer > 0 {
			p.vy = -p.cfg.JumpPower
			p.onGround = false
			p.jumpBuffer = 0
			p.coyoteTimer = 0
			jumped = true
		}
	}

	p.attackTimer = core.Countdown(p.attackTimer, dt)
	p.attackCooldown = core.Countdown(p.attackCooldown, dt)
	p.hurtTimer = core.Countdown(p.hurtTimer, dt)
	p.invincible = core.Countdown(p.invincible, dt)

	return jumped
}

// Attacking reports whether the attack window is open.
func (p *Player) Attacking() bool { return p.attackTimer > 0 }

// Invincible reports whether damage is suppressed.
func (p *Player) Invincible() bool { return p.invincible > 0 }

// Hitbox returns the collision box: a fraction of the sprite, centered on x
// with its bottom at the feet.
func (p *Player) Hitbox() core.Rect {
	w := p.cfg.Width * p.cfg.HitboxWidth
	h := p.cfg.Height * p.cfg.HitboxHeight
	return core.NewRect(p.x-w/2, p.y-h, w, h)
}

// Pose selects the animation a renderer should show.
type Pose string

const (
	PoseIdle    Pose = "idle"
	PoseRun     Pose = "run"
	PoseJump    Pose = "jump"
	PoseAttack  Pose = "attack"
	PoseHurt    Pose = "hurt"
	PoseVictory Pose = "victory"
)

// PlayerView is a read-only copy of the player for renderers.
type PlayerView struct {
	X, Y          float64
	VY            float64
	Width, Height float64
	OnGround      bool
	Attacking     bool
	Hurt          bool
	Invincible    bool
	// AttackProgress goes from 0 to 1 over the attack window.
	AttackProgress float64
	Pose           Pose
}

func (p *Player) view(pose Pose) PlayerView {
	progress := 0.0
	if p.cfg.AttackDuration > 0 && p.attackTimer > 0 {
		progress = 1 - p.attackTimer/p.cfg.AttackDuration
	}
	return PlayerView{
		X:              p.x,
		Y:              p.y,
		VY:             p.vy,
		Width:          p.cfg.Width,
		Height:         p.cfg.Height,
		OnGround:       p.onGround,
		Attacking:      p.Attacking(),
		Hurt:           p.hurtTimer > 0,
		Invincible:     p.Invincible(),
		AttackProgress: progress,
		Pose:           pose,
	}
}
