// Package config centralizes the tunables of the terminal host.
package config

import "time"

// Render area. Larger terminals get the arena centred inside a border-free margin.
const (
	MaxTermWidth  = 160 // Columns
	MaxTermHeight = 60  // Rows (120 sub-pixels)
)

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxFrameDelta   = 250 * time.Millisecond // Longer frames are simulated as this long
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// UI
const (
	PromptBlinkPeriod = 600 * time.Millisecond
	HUDWidth          = 28 // HUD text is padded to this width so shorter values overwrite longer ones
)
