package sim

import (
	"math"

	"github.com/tomz197/arena/internal/physics"
)

// spawnEnemies drains the spawn timer, placing one enemy on the arena edge per
// elapsed interval. Each spawn consumes exactly one random draw for its angle.
func (s *Simulation) spawnEnemies(rng RandomSource) {
	interval := s.cfg.EnemySpawnInterval
	if interval <= 0 {
		return
	}
	edge := s.cfg.ArenaRadius - s.cfg.EnemyRadius
	for s.spawnAcc >= interval {
		s.spawnAcc -= interval
		theta := rng.Float64() * 2 * math.Pi
		s.enemies = append(s.enemies, enemy{
			pos:    physics.FromAngle(theta).Scale(edge),
			speed:  s.cfg.EnemySpeed,
			radius: s.cfg.EnemyRadius,
		})
	}
}

// autoAttack drains the attack timer, firing one projectile at the nearest enemy
// per elapsed interval. Intervals that pass with no enemy around are spent, not banked.
func (s *Simulation) autoAttack() {
	interval := s.cfg.AttackInterval
	if interval <= 0 {
		return
	}
	for s.attackAcc >= interval {
		s.attackAcc -= interval
		target, ok := s.nearestEnemy()
		if !ok {
			continue
		}
		dir := target.Sub(s.playerPos).Normalize()
		s.projectiles = append(s.projectiles, projectile{
			pos:            s.playerPos,
			vel:            dir.Scale(s.cfg.ProjectileSpeed),
			radius:         s.cfg.ProjectileRadius,
			life:           s.cfg.ProjectileLifetime,
			remainingRange: s.cfg.ProjectileRange,
		})
	}
}

// nearestEnemy returns the position of the enemy closest to the player.
// Ties go to the enemy that comes first in the collection.
func (s *Simulation) nearestEnemy() (physics.Vec2, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i := range s.enemies {
		d := s.enemies[i].pos.DistSq(s.playerPos)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return physics.Zero, false
	}
	return s.enemies[best].pos, true
}
