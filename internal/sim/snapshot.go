package sim

import "github.com/tomz197/arena/internal/physics"

// Kind identifies what a SpriteView depicts.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
)

// String returns the sprite id a renderer keys its assets by.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "bullet"
	default:
		return "unknown"
	}
}

// SpriteView is the drawable view of one entity.
type SpriteView struct {
	Kind     Kind
	Position physics.Vec2
	Radius   float64
}

// WorldSnapshot is a read-only copy of the simulation for rendering.
// It shares no memory with the simulation.
type WorldSnapshot struct {
	Player      SpriteView
	Enemies     []SpriteView
	Projectiles []SpriteView
	Time        float64 // Timestamp supplied by the host
	Health      int
	ArenaRadius float64
	GameOver    bool
}

// Snapshot projects the current state for rendering. It never mutates the simulation.
func (s *Simulation) Snapshot(now float64) WorldSnapshot {
	enemies := make([]SpriteView, len(s.enemies))
	for i, e := range s.enemies {
		enemies[i] = SpriteView{Kind: KindEnemy, Position: e.pos, Radius: e.radius}
	}

	projectiles := make([]SpriteView, len(s.projectiles))
	for i, p := range s.projectiles {
		projectiles[i] = SpriteView{Kind: KindProjectile, Position: p.pos, Radius: p.radius}
	}

	return WorldSnapshot{
		Player:      SpriteView{Kind: KindPlayer, Position: s.playerPos, Radius: s.cfg.PlayerRadius},
		Enemies:     enemies,
		Projectiles: projectiles,
		Time:        now,
		Health:      s.playerHealth,
		ArenaRadius: s.cfg.ArenaRadius,
		GameOver:    s.IsGameOver(),
	}
}
