package runner

import (
	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
)

// Obstacle is something to jump over, run under or punch.
// Y is the bottom edge.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Kind          config.ObstacleType
	Hit           bool // smashed this frame, removed on the next cull
}

// Hitbox returns the obstacle bounds shrunk by inset on every side.
func (o Obstacle) Hitbox(inset float64) core.Rect {
	return core.NewRect(o.X, o.Y-o.Height, o.Width, o.Height).Inset(inset, inset)
}

// Orb is a collectible. X, Y is the center.
type Orb struct {
	X, Y      float64
	Radius    float64
	Collected bool
}

// Hitbox returns a square around the orb, radius scaled by scale.
func (o Orb) Hitbox(scale float64) core.Rect {
	r := o.Radius * scale
	return core.NewRect(o.X-r, o.Y-r, r*2, r*2)
}

// Particle is a short-lived spark.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Tag    core.Tag
}

// keepIf filters items in place, preserving order.
func keepIf[T any](items []T, keep func(*T) bool) []T {
	n := 0
	for i := range items {
		if keep(&items[i]) {
			items[n] = items[i]
			n++
		}
	}
	clear(items[n:])
	return items[:n]
}

// ObstacleStore spawns, scrolls and culls obstacles.
type ObstacleStore struct {
	items      []Obstacle
	defaults   config.ObstacleDefaults
	spawnX     float64
	groundY    float64
	cullMargin float64
}

// NewObstacleStore creates an empty store for the given world.
func NewObstacleStore(world config.WorldConfig, defaults config.ObstacleDefaults) *ObstacleStore {
	return &ObstacleStore{
		items:      make([]Obstacle, 0, 8),
		defaults:   defaults,
		spawnX:     world.SpawnX(),
		groundY:    world.GroundY(),
		cullMargin: world.CullMargin,
	}
}

// Spawn appends an obstacle past the right edge. Unset placement fields
// are filled with randomized defaults; negative sizes are clamped to defaults.
func (s *ObstacleStore) Spawn(p config.ObstaclePlacement, rng core.Random) Obstacle {
	d := s.defaults
	kind := p.Type
	if kind != config.ObstacleGround && kind != config.ObstacleAir {
		kind = config.ObstacleAir
		if rng.Float64() < d.GroundChance {
			kind = config.ObstacleGround
		}
	}

	o := Obstacle{X: s.spawnX, Kind: kind, Width: p.Width, Height: p.Height}
	if kind == config.ObstacleGround {
		if o.Height <= 0 {
			o.Height = d.GroundMinHeight + rng.Float64()*d.GroundHeightRange
		}
		if o.Width <= 0 {
			o.Width = d.GroundMinWidth + rng.Float64()*d.GroundWidthRange
		}
		o.Y = s.groundY
	} else {
		if o.Height <= 0 {
			o.Height = d.AirHeight
		}
		if o.Width <= 0 {
			o.Width = d.AirWidth
		}
		lift := p.Lift
		if lift <= 0 {
			lift = d.AirMinLift + rng.Float64()*d.AirLiftRange
		}
		o.Y = s.groundY - lift
	}

	s.items = append(s.items, o)
	return o
}

// Update scrolls every obstacle left by dx and drops those past the left
// edge or already hit.
func (s *ObstacleStore) Update(dx float64) {
	s.items = keepIf(s.items, func(o *Obstacle) bool {
		o.X -= dx
		return o.X+o.Width >= -s.cullMargin && !o.Hit
	})
}

// Items returns the live obstacles. Callers may flag Hit on elements.
func (s *ObstacleStore) Items() []Obstacle { return s.items }

// Len returns the number of live obstacles.
func (s *ObstacleStore) Len() int { return len(s.items) }

// Reset removes every obstacle.
func (s *ObstacleStore) Reset() { s.items = s.items[:0] }

// OrbStore spawns, scrolls and culls orbs.
type OrbStore struct {
	items      []Orb
	defaults   config.OrbDefaults
	spawnX     float64
	groundY    float64
	cullMargin float64
}

// NewOrbStore creates an empty store for the given world.
func NewOrbStore(world config.WorldConfig, defaults config.OrbDefaults) *OrbStore {
	return &OrbStore{
		items:      make([]Orb, 0, 16),
		defaults:   defaults,
		spawnX:     world.SpawnX(),
		groundY:    world.GroundY(),
		cullMargin: world.CullMargin,
	}
}

// Spawn appends an orb past the right edge at the placement height above
// the ground, or a random height when unset.
func (s *OrbStore) Spawn(p config.OrbPlacement, rng core.Random) Orb {
	height := p.Height
	if height <= 0 {
		height = s.defaults.MinHeight + rng.Float64()*s.defaults.HeightRange
	}
	o := Orb{X: s.spawnX, Y: s.groundY - height, Radius: s.defaults.Radius}
	s.items = append(s.items, o)
	return o
}

// Update scrolls every orb left by dx and drops those past the left edge
// or already collected.
func (s *OrbStore) Update(dx float64) {
	s.items = keepIf(s.items, func(o *Orb) bool {
		o.X -= dx
		return o.X+o.Radius >= -s.cullMargin && !o.Collected
	})
}

// Items returns the live orbs. Callers may flag Collected on elements.
func (s *OrbStore) Items() []Orb { return s.items }

// Len returns the number of live orbs.
func (s *OrbStore) Len() int { return len(s.items) }

// Reset removes every orb.
func (s *OrbStore) Reset() { s.items = s.items[:0] }

// ParticleStore holds burst particles, bounded by MaxCount.
type ParticleStore struct {
	items []Particle
	cfg   config.ParticleConfig
}

// NewParticleStore creates an empty particle store.
func NewParticleStore(cfg config.ParticleConfig) *ParticleStore {
	return &ParticleStore{
		items: make([]Particle, 0, max(cfg.MaxCount, 0)),
		cfg:   cfg,
	}
}

// Burst emits a fan of particles at (x, y). When the store is full the
// oldest particles are dropped.
func (s *ParticleStore) Burst(x, y float64, tag core.Tag, rng core.Random) {
	c := s.cfg
	for i := 0; i < c.Burst; i++ {
		s.items = append(s.items, Particle{
			X:    x,
			Y:    y,
			VX:   (rng.Float64() - 0.5) * c.SpreadX,
			VY:   -c.MinRise - rng.Float64()*c.RiseRange,
			Life: c.MinLife + rng.Float64()*c.LifeRange,
			Tag:  tag,
		})
	}

	if c.MaxCount > 0 && len(s.items) > c.MaxCount {
		drop := len(s.items) - c.MaxCount
		n := copy(s.items, s.items[drop:])
		clear(s.items[n:])
		s.items = s.items[:n]
	}
}

// Update ages, accelerates and moves particles, dropping expired ones.
func (s *ParticleStore) Update(dt float64) {
	g := s.cfg.Gravity
	s.items = keepIf(s.items, func(p *Particle) bool {
		p.Life -= dt
		p.VY += g * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		return p.Life > 0
	})
}

// Items returns the live particles.
func (s *ParticleStore) Items() []Particle { return s.items }

// Len returns the number of live particles.
func (s *ParticleStore) Len() int { return len(s.items) }

// Reset removes every particle.
func (s *ParticleStore) Reset() { s.items = s.items[:0] }
