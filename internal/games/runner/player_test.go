package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/orb-dash/internal/config"
)

const frame = 1.0 / 60

func newTestPlayer() *Player {
	cfg := config.DefaultRunnerConfig()
	return NewPlayer(cfg.Player, cfg.World.GroundY())
}

func TestPlayerJumpArcStaysAboveGround(t *testing.T) {
	p := newTestPlayer()
	p.RequestJump()

	if !p.Update(frame) {
		t.Fatal("jump from the ground should fire on the next update")
	}
	if p.vy != -p.cfg.JumpPower {
		t.Errorf("vy after jump = %v, want %v", p.vy, -p.cfg.JumpPower)
	}

	landed := false
	for i := 0; i < 200; i++ {
		wasGrounded := p.onGround
		p.Update(frame)
		if p.y > p.groundY {
			t.Fatalf("tick %d: y %v below ground %v", i, p.y, p.groundY)
		}
		if !wasGrounded && p.onGround {
			landed = true
			if p.vy != 0 {
				t.Errorf("vy = %v right after landing, want 0", p.vy)
			}
			if p.y != p.groundY {
				t.Errorf("y = %v after landing, want %v", p.y, p.groundY)
			}
		}
	}
	if !landed {
		t.Error("player never landed")
	}
}

func TestPlayerCoyoteTime(t *testing.T) {
	p := newTestPlayer()

	// just left the ground without jumping
	p.onGround = false
	p.y = p.groundY - 100
	p.vy = 0
	p.coyoteTimer = p.cfg.CoyoteTime

	p.Update(frame)
	if p.coyoteTimer <= 0 || p.coyoteTimer >= p.cfg.CoyoteTime {
		t.Fatalf("coyote timer = %v, want decaying and positive", p.coyoteTimer)
	}

	p.RequestJump()
	if !p.Update(frame) {
		t.Fatal("jump within coyote time should fire")
	}
	if p.vy != -p.cfg.JumpPower {
		t.Errorf("vy = %v, want %v", p.vy, -p.cfg.JumpPower)
	}
	if p.coyoteTimer != 0 || p.jumpBuffer != 0 {
		t.Errorf("timers not cleared: coyote %v buffer %v", p.coyoteTimer, p.jumpBuffer)
	}
}

func TestPlayerCoyoteExpires(t *testing.T) {
	p := newTestPlayer()
	p.onGround = false
	p.y = p.groundY - 300
	p.vy = 0
	p.coyoteTimer = p.cfg.CoyoteTime

	for i := 0; i < 10; i++ {
		p.Update(frame)
	}
	if p.coyoteTimer != 0 {
		t.Fatalf("coyote timer = %v after expiry, want 0", p.coyoteTimer)
	}

	p.RequestJump()
	if p.Update(frame) {
		t.Error("jump fired in mid air after coyote time expired")
	}
}

func TestPlayerJumpBufferFiresOnLanding(t *testing.T) {
	p := newTestPlayer()
	p.onGround = false
	p.coyoteTimer = 0
	p.y = p.groundY - 5
	p.vy = 600

	p.RequestJump()
	if !p.Update(frame) {
		t.Fatal("buffered jump should fire on the landing tick")
	}
	if p.onGround || p.vy != -p.cfg.JumpPower {
		t.Errorf("after buffered jump onGround=%v vy=%v", p.onGround, p.vy)
	}
}

func TestPlayerJumpBufferExpires(t *testing.T) {
	p := newTestPlayer()
	p.onGround = false
	p.coyoteTimer = 0
	p.y = p.groundY - 400
	p.vy = 0

	p.RequestJump()
	jumped := false
	for i := 0; i < 120; i++ {
		if p.Update(frame) {
			jumped = true
		}
	}
	if jumped {
		t.Error("stale jump request fired on landing")
	}
	if !p.onGround || p.vy != 0 {
		t.Errorf("expected resting on ground, onGround=%v vy=%v", p.onGround, p.vy)
	}
}

func TestPlayerAttackCooldown(t *testing.T) {
	p := newTestPlayer()

	if !p.TryAttack() {
		t.Fatal("first attack should start")
	}
	if !p.Attacking() {
		t.Error("attack window should be open")
	}
	if p.TryAttack() {
		t.Error("attack during cooldown should be refused")
	}

	// attack window closes before the cooldown ends
	for i := 0; i < 25; i++ {
		p.Update(frame)
	}
	if p.Attacking() {
		t.Error("attack window should have closed")
	}
	if p.TryAttack() {
		t.Error("cooldown should still be running")
	}

	for i := 0; i < 20; i++ {
		p.Update(frame)
	}
	if !p.TryAttack() {
		t.Error("attack should be available after cooldown")
	}
}

func TestPlayerTimersNeverNegative(t *testing.T) {
	p := newTestPlayer()
	p.TryAttack()
	p.Hurt()
	p.RequestJump()

	for i := 0; i < 200; i++ {
		p.Update(0.05)
		for name, v := range map[string]float64{
			"attack":     p.attackTimer,
			"cooldown":   p.attackCooldown,
			"hurt":       p.hurtTimer,
			"invincible": p.invincible,
			"buffer":     p.jumpBuffer,
			"coyote":     p.coyoteTimer,
		} {
			if v < 0 {
				t.Fatalf("tick %d: %s timer = %v", i, name, v)
			}
		}
	}
}

func TestPlayerHurtWindows(t *testing.T) {
	p := newTestPlayer()
	p.Hurt()

	if !p.Invincible() || p.hurtTimer <= 0 {
		t.Fatal("hurt should start both windows")
	}

	// hurt ends first, invincibility lasts longer
	for i := 0; i < 30; i++ {
		p.Update(frame)
	}
	if p.hurtTimer != 0 {
		t.Errorf("hurt timer = %v after 0.5s, want 0", p.hurtTimer)
	}
	if !p.Invincible() {
		t.Error("invincibility should outlast the hurt window")
	}
}

func TestPlayerHitbox(t *testing.T) {
	p := newTestPlayer()
	box := p.Hitbox()

	if math.Abs(box.W-170*0.6) > 1e-9 || math.Abs(box.H-240*0.72) > 1e-9 {
		t.Errorf("hitbox size = %vx%v", box.W, box.H)
	}
	if cx, _ := box.Center(); math.Abs(cx-p.x) > 1e-9 {
		t.Errorf("hitbox center x = %v, want %v", cx, p.x)
	}
	if math.Abs(box.Bottom()-p.groundY) > 1e-9 {
		t.Errorf("hitbox bottom = %v, want feet at %v", box.Bottom(), p.groundY)
	}
}
