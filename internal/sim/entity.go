package sim

import "github.com/tomz197/arena/internal/physics"

// enemy converges on the player. Radius and speed never change after creation.
type enemy struct {
	pos    physics.Vec2
	speed  float64
	radius float64
}

// projectile flies in a straight line until it expires, runs out of range or hits an enemy.
type projectile struct {
	pos            physics.Vec2
	vel            physics.Vec2 // Fixed at creation
	radius         float64
	life           float64 // Seconds remaining
	remainingRange float64 // Distance remaining
}

// expired reports whether the projectile should be dropped after integration.
func (p *projectile) expired() bool {
	return p.life <= 0 || p.remainingRange <= 0
}
