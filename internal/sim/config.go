package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by Config.Validate for every rejected parameter.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the tunable parameters of a simulation.
// A Simulation copies its Config at construction; later edits have no effect on it.
type Config struct {
	ArenaRadius float64 // Distance from the origin to the arena wall

	PlayerRadius float64
	PlayerSpeed  float64 // Units per second
	PlayerHealth int     // Starting health; game over at <= 0

	EnemyRadius        float64
	EnemySpeed         float64 // Units per second
	EnemySpawnInterval float64 // Seconds between spawns

	AttackInterval     float64 // Seconds between auto-attacks
	ProjectileSpeed    float64 // Units per second
	ProjectileRadius   float64
	ProjectileLifetime float64 // Seconds before a projectile expires
	ProjectileRange    float64 // Distance a projectile may travel
}

// DefaultConfig returns the standard arena tuning.
func DefaultConfig() Config {
	return Config{
		ArenaRadius: 20,

		PlayerRadius: 0.8,
		PlayerSpeed:  8,
		PlayerHealth: 5,

		EnemyRadius:        0.7,
		EnemySpeed:         2.5,
		EnemySpawnInterval: 1.2,

		AttackInterval:     0.6,
		ProjectileSpeed:    12,
		ProjectileRadius:   0.2,
		ProjectileLifetime: 2.5,
		ProjectileRange:    5,
	}
}

// Validate reports the first parameter a host should not run with.
// The simulation tolerates any Config; Validate exists so hosts can reject
// user-supplied tuning before constructing one.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"ArenaRadius", c.ArenaRadius},
		{"PlayerRadius", c.PlayerRadius},
		{"EnemyRadius", c.EnemyRadius},
		{"EnemySpawnInterval", c.EnemySpawnInterval},
		{"AttackInterval", c.AttackInterval},
		{"ProjectileRadius", c.ProjectileRadius},
		{"ProjectileLifetime", c.ProjectileLifetime},
		{"ProjectileRange", c.ProjectileRange},
	}
	for _, p := range positive {
		if !finite(p.value) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, p.name, p.value)
		}
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"PlayerSpeed", c.PlayerSpeed},
		{"EnemySpeed", c.EnemySpeed},
		{"ProjectileSpeed", c.ProjectileSpeed},
	}
	for _, p := range nonNegative {
		if !finite(p.value) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, p.name, p.value)
		}
		if p.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.PlayerRadius >= c.ArenaRadius {
		return fmt.Errorf("%w: PlayerRadius %v does not fit in ArenaRadius %v", ErrInvalidConfig, c.PlayerRadius, c.ArenaRadius)
	}
	if c.EnemyRadius >= c.ArenaRadius {
		return fmt.Errorf("%w: EnemyRadius %v does not fit in ArenaRadius %v", ErrInvalidConfig, c.EnemyRadius, c.ArenaRadius)
	}
	if c.PlayerHealth <= 0 {
		return fmt.Errorf("%w: PlayerHealth must be positive, got %d", ErrInvalidConfig, c.PlayerHealth)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
