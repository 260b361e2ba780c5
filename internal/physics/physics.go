// Package physics provides 2D vector math, circle contact tests and a broad-phase grid.
package physics

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// CirclesTouch reports whether two circles overlap or touch.
// Touching counts: the distance between centers may equal the radius sum.
func CirclesTouch(a Vec2, ra float64, b Vec2, rb float64) bool {
	reach := ra + rb
	return DistanceSquared(a, b) <= reach*reach
}
