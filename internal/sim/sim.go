// Package sim is the deterministic arena simulation: player movement, enemy spawning,
// auto-attack targeting, projectile integration and collision bookkeeping.
//
// A Simulation is advanced once per host tick with Update and read with Snapshot.
// It is not safe for concurrent use and must not be re-entered from inside Update.
package sim

import (
	"math"

	"github.com/tomz197/arena/internal/physics"
)

// maxGridCells bounds the broad-phase grid resolution along one axis.
const maxGridCells = 64

// Simulation owns the player, enemies, projectiles and the spawn/attack timers.
type Simulation struct {
	cfg Config

	playerPos    physics.Vec2
	playerHealth int

	enemies     []enemy
	projectiles []projectile

	spawnAcc  float64 // Seconds since the last enemy spawn
	attackAcc float64 // Seconds since the last auto-attack

	// Scratch state for projectile-enemy resolution, reused between steps.
	hitGrid   *physics.SpatialGrid
	enemyHit  []bool
	projSpent []bool
}

// New creates a simulation with the player at the origin and an empty arena.
func New(cfg Config) *Simulation {
	cellSize := cfg.EnemyRadius + cfg.ProjectileRadius
	if minCell := 2 * cfg.ArenaRadius / maxGridCells; cellSize < minCell {
		cellSize = minCell
	}
	return &Simulation{
		cfg:          cfg,
		playerHealth: cfg.PlayerHealth,
		hitGrid:      physics.NewSpatialGrid(cfg.ArenaRadius, cellSize),
	}
}

// Config returns the parameters the simulation was built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// IsGameOver reports whether the player's health has run out.
func (s *Simulation) IsGameOver() bool {
	return s.playerHealth <= 0
}

// Health returns the player's current health.
func (s *Simulation) Health() int {
	return s.playerHealth
}

// PlayerPosition returns the player's current position.
func (s *Simulation) PlayerPosition() physics.Vec2 {
	return s.playerPos
}

// EnemyCount returns the number of live enemies.
func (s *Simulation) EnemyCount() int {
	return len(s.enemies)
}

// ProjectileCount returns the number of live projectiles.
func (s *Simulation) ProjectileCount() int {
	return len(s.projectiles)
}

// Update advances the simulation by one step using the given frame readings.
// Once the game is over Update changes nothing.
func (s *Simulation) Update(in InputSource, clk TimeSource, rng RandomSource) {
	if s.IsGameOver() {
		return
	}

	dt := math.Max(0, clk.DeltaSeconds())
	s.spawnAcc += dt
	s.attackAcc += dt

	// Order matters: each phase sees the results of the previous one.
	s.movePlayer(in.MovementAxis(), dt)
	s.spawnEnemies(rng)
	s.autoAttack()
	s.moveEnemies(dt)
	s.moveProjectiles(dt)
	s.resolvePlayerContacts()
	s.resolveProjectileHits()
}

// movePlayer applies the normalized movement intent and keeps the player inside the arena.
func (s *Simulation) movePlayer(axis physics.Vec2, dt float64) {
	step := axis.Normalize().Scale(s.cfg.PlayerSpeed * dt)
	// Clamp along the candidate position's own direction.
	s.playerPos = s.playerPos.Add(step).ClampLen(s.cfg.ArenaRadius - s.cfg.PlayerRadius)
}

// moveEnemies steps every enemy straight at the player's current position.
// An enemy exactly on the player has no direction and stays where it is rather
// than stepping along +X.
func (s *Simulation) moveEnemies(dt float64) {
	for i := range s.enemies {
		e := &s.enemies[i]
		dir := s.playerPos.Sub(e.pos).Normalize()
		e.pos = e.pos.Add(dir.Scale(e.speed * dt))
	}
}

// moveProjectiles integrates projectiles and drops the ones out of lifetime or range.
func (s *Simulation) moveProjectiles(dt float64) {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.life -= dt
		p.remainingRange -= p.vel.Len() * dt
		if !p.expired() {
			kept = append(kept, p)
		}
	}
	s.projectiles = kept
}
