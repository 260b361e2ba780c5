package sim

import "github.com/tomz197/arena/internal/physics"

// TimeSource reports frame timing to the simulation.
type TimeSource interface {
	// DeltaSeconds is the time since the previous poll. Negative values are treated as 0.
	DeltaSeconds() float64
	// NowSeconds is the monotonic accumulated time.
	NowSeconds() float64
}

// InputSource reports the player's movement intent.
type InputSource interface {
	// MovementAxis may have any magnitude; the simulation normalizes it.
	MovementAxis() physics.Vec2
}

// RandomSource yields independent uniform draws in [0, 1).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}
