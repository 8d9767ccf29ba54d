package runner

import "github.com/vovakirdan/orb-dash/internal/core"

// resolveCollisions checks the player against obstacles, then orbs.
// Checking stops as soon as the run ends.
func (s *Session) resolveCollisions() {
	box := s.player.Hitbox()

	inset := s.cfg.Entities.Obstacles.HitboxInset
	obstacles := s.obstacles.Items()
	for i := range obstacles {
		if !s.running {
			return
		}
		if box.Intersects(obstacles[i].Hitbox(inset)) {
			s.hitObstacle(&obstacles[i])
		}
	}

	scale := s.cfg.Entities.Orbs.HitboxScale
	orbs := s.orbs.Items()
	for i := range orbs {
		if !s.running {
			return
		}
		if !orbs[i].Collected && box.Intersects(orbs[i].Hitbox(scale)) {
			s.collectOrb(&orbs[i])
		}
	}
}

// hitObstacle applies an overlap with o. An invincible player and an
// already smashed obstacle are both ignored; otherwise an attack smashes
// the obstacle and anything else hurts the player.
func (s *Session) hitObstacle(o *Obstacle) {
	if s.player.Invincible() || o.Hit {
		return
	}

	sc := s.cfg.Scoring
	if s.player.Attacking() {
		o.Hit = true
		s.score += sc.SmashBonus
		s.addFun(sc.FunSmash)
		s.particles.Burst(o.X, o.Y, core.TagSmash, s.rng)
		s.notify("Pow!")
		s.emit(EventSmash, sc.SmashBonus)
		return
	}

	s.health--
	s.combo = 1
	s.addFun(-sc.FunHurt)
	s.player.Hurt()
	s.shake = s.cfg.Session.ShakeDuration

	cx, cy := s.player.Hitbox().Center()
	s.particles.Burst(cx, cy, core.TagHurt, s.rng)
	s.notify("Ouch!")
	s.emit(EventHurt, 0)

	if s.health <= 0 {
		s.health = 0
		s.endGame()
	}
}

// collectOrb scores o at the current combo and raises the combo.
func (s *Session) collectOrb(o *Orb) {
	sc := s.cfg.Scoring
	gain := s.orbValue()

	o.Collected = true
	s.score += gain
	s.combo++
	s.addFun(sc.FunOrb)
	s.particles.Burst(o.X, o.Y, core.TagOrb, s.rng)
	s.emit(EventOrb, gain)

	if sc.ComboMilestone > 0 && s.combo%sc.ComboMilestone == 0 {
		s.notify("Insane Combo!")
		s.emit(EventComboMilestone, 0)
	}
}
