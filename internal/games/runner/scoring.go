package runner

import "github.com/vovakirdan/orb-dash/internal/core"

// accrue adds the passive per-frame gains. Score grows with speed relative
// to the pace baseline; an active combo feeds the fun meter.
func (s *Session) accrue(dt float64) {
	sc := s.cfg.Scoring
	pace := s.speed / sc.PaceBaseline

	s.score += dt * sc.PerSecond * pace
	s.addFun(dt * sc.FunPerSecond)
	s.distance += s.speed * dt

	if s.combo > 1 {
		s.addFun(dt * float64(s.combo) * sc.FunComboRate)
	}
}

// addFun moves the fun meter by delta within [0, FunMax].
func (s *Session) addFun(delta float64) {
	s.fun = core.ClampF(s.fun+delta, 0, s.cfg.Scoring.FunMax)
}

// orbValue is the score for the next orb at the current combo.
func (s *Session) orbValue() float64 {
	sc := s.cfg.Scoring
	return sc.OrbBase + float64(s.combo)*sc.OrbComboStep
}
