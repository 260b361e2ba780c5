package sim

import "github.com/tomz197/arena/internal/physics"

// resolvePlayerContacts removes every enemy touching the player. Each one deals 1 damage.
func (s *Simulation) resolvePlayerContacts() {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if physics.CirclesTouch(e.pos, e.radius, s.playerPos, s.cfg.PlayerRadius) {
			s.playerHealth--
			continue
		}
		kept = append(kept, e)
	}
	s.enemies = kept
}

// resolveProjectileHits pairs projectiles with enemies, at most one enemy per projectile
// and one projectile per enemy. Projectiles are processed in collection order and each
// takes the first not-yet-hit enemy (lowest index) it touches. This is first match, not
// best match: an earlier projectile may claim an enemy a later one was closer to.
func (s *Simulation) resolveProjectileHits() {
	if len(s.projectiles) == 0 || len(s.enemies) == 0 {
		return
	}

	s.enemyHit = resetFlags(s.enemyHit, len(s.enemies))
	s.projSpent = resetFlags(s.projSpent, len(s.projectiles))

	s.hitGrid.Clear()
	for i := range s.enemies {
		s.hitGrid.Insert(s.enemies[i].pos, i)
	}

	for pi := range s.projectiles {
		p := &s.projectiles[pi]
		first := -1
		// The grid yields candidates out of order; keep the lowest matching index.
		s.hitGrid.QueryAround(p.pos, func(ei int) bool {
			if s.enemyHit[ei] || (first >= 0 && ei > first) {
				return false
			}
			e := &s.enemies[ei]
			if physics.CirclesTouch(e.pos, e.radius, p.pos, p.radius) {
				first = ei
			}
			return false
		})
		if first >= 0 {
			s.enemyHit[first] = true
			s.projSpent[pi] = true
		}
	}

	keptEnemies := s.enemies[:0]
	for i, e := range s.enemies {
		if !s.enemyHit[i] {
			keptEnemies = append(keptEnemies, e)
		}
	}
	s.enemies = keptEnemies

	keptProjectiles := s.projectiles[:0]
	for i, p := range s.projectiles {
		if !s.projSpent[i] {
			keptProjectiles = append(keptProjectiles, p)
		}
	}
	s.projectiles = keptProjectiles
}

// resetFlags returns a zeroed flag slice of length n, reusing buf when it is large enough.
func resetFlags(buf []bool, n int) []bool {
	if cap(buf) < n {
		return make([]bool, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}
