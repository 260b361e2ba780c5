package sim

import "github.com/tomz197/arena/internal/physics"

// fixedTime reports the same delta every poll.
type fixedTime struct {
	dt, now float64
}

func (f fixedTime) DeltaSeconds() float64 { return f.dt }
func (f fixedTime) NowSeconds() float64   { return f.now }

// fixedInput always reports the same movement intent.
type fixedInput physics.Vec2

func (f fixedInput) MovementAxis() physics.Vec2 { return physics.Vec2(f) }

var noInput = fixedInput{}

// seqRandom replays values in order, then falls back to 0.5. It counts every draw.
type seqRandom struct {
	values []float64
	draws  int
}

func (r *seqRandom) Float64() float64 {
	r.draws++
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

// constRandom always draws the same value.
type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

// step advances s by dt with no movement input and a constant random source.
func step(s *Simulation, dt float64) {
	s.Update(noInput, fixedTime{dt: dt}, constRandom(0))
}

// quietConfig is the default tuning with spawning and attacking effectively disabled,
// so tests can place entities by hand.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.EnemySpawnInterval = 1e9
	cfg.AttackInterval = 1e9
	return cfg
}

func addEnemy(s *Simulation, pos physics.Vec2, speed float64) {
	s.enemies = append(s.enemies, enemy{pos: pos, speed: speed, radius: s.cfg.EnemyRadius})
}

func addProjectile(s *Simulation, pos, vel physics.Vec2) {
	s.projectiles = append(s.projectiles, projectile{
		pos:            pos,
		vel:            vel,
		radius:         s.cfg.ProjectileRadius,
		life:           s.cfg.ProjectileLifetime,
		remainingRange: s.cfg.ProjectileRange,
	})
}
