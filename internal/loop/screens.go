package loop

import (
	"fmt"

	"github.com/tomz197/arena/internal/draw"
	"github.com/tomz197/arena/internal/loop/config"
	"github.com/tomz197/arena/internal/physics"
	"github.com/tomz197/arena/internal/sim"
)

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := s.state.GameState != s.state.prevGameState
	inactiveChanged := s.state.isInactive != s.state.wasInactive
	if stateChanged || inactiveChanged {
		s.chunkWriter.ClearScreen()
		s.canvas.ForceRedraw()
		s.state.prevGameState = s.state.GameState
		s.state.wasInactive = s.state.isInactive
	}

	s.canvas.Clear()

	snap := s.game.Snapshot(s.clock.NowSeconds())
	switch s.state.GameState {
	case GameStatePlaying, GameStateOver:
		renderWorld(s.canvas, snap)
	default:
		s.canvas.StrokeCircle(physics.Zero, snap.ArenaRadius, draw.PenArena)
	}

	if err := s.canvas.Render(s.chunkWriter); err != nil {
		return err
	}

	s.drawUI(snap)

	return s.chunkWriter.Flush()
}

// renderWorld draws the arena wall and every entity of snap onto the canvas.
// The player goes last so it stays visible under a swarm.
func renderWorld(c *draw.Canvas, snap sim.WorldSnapshot) {
	c.StrokeCircle(physics.Zero, snap.ArenaRadius, draw.PenArena)
	for _, p := range snap.Projectiles {
		c.FillCircle(p.Position, p.Radius, draw.PenProjectile)
	}
	for _, e := range snap.Enemies {
		c.StrokeCircle(e.Position, e.Radius, draw.PenEnemy)
	}
	c.FillCircle(snap.Player.Position, snap.Player.Radius, draw.PenPlayer)
}

// hudText formats the in-game status line.
func hudText(health int, seconds float64) string {
	return fmt.Sprintf("HP: %d    TIME: %.1fs", health, max(0, seconds))
}

// text writes s at canvas position (col, row) and marks the cells so the
// canvas repaints them once the text is gone.
func (s *Session) text(col, row int, str string) {
	start, n := s.chunkWriter.WriteAt(col, row, str)
	s.canvas.MarkTextDirty(start, row, n)
}

// field writes str padded to width cells.
func (s *Session) field(col, row int, str string, width int) {
	start, n := s.chunkWriter.WritePadded(col, row, str, width)
	s.canvas.MarkTextDirty(start, row, n)
}

// centered writes str horizontally centred on col.
func (s *Session) centered(col, row int, str string) {
	s.text(col-len(str)/2, row, str)
}

// blinkOn alternates between true and false every PromptBlinkPeriod.
func (s *Session) blinkOn() bool {
	return s.now().UnixMilli()/config.PromptBlinkPeriod.Milliseconds()%2 == 0
}

// drawUI draws the text overlay for the current screen.
func (s *Session) drawUI(snap sim.WorldSnapshot) {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if s.state.GameState == GameStateShutdown {
		s.drawShutdownScreen(centerX, centerY)
		return
	}

	if s.state.isInactive {
		s.drawInactivityScreen(centerX, centerY)
		return
	}

	switch s.state.GameState {
	case GameStateStart:
		s.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		s.drawPlayingHUD(termWidth, termHeight, snap)
	case GameStateOver:
		s.drawPlayingHUD(termWidth, termHeight, snap)
		col, row := s.canvas.WorldToTerminal(physics.Zero)
		s.drawGameOverScreen(col, row)
	}
}

// drawPlayingHUD draws the in-game HUD.
func (s *Session) drawPlayingHUD(termWidth, termHeight int, snap sim.WorldSnapshot) {
	seconds := snap.Time
	if snap.GameOver {
		seconds = s.state.survived
	}
	s.field(2, 1, hudText(snap.Health, seconds), config.HUDWidth)

	const enemiesWidth = 13
	s.field(termWidth-enemiesWidth-1, termHeight, fmt.Sprintf("Enemies: %d", len(snap.Enemies)), enemiesWidth)
}

// drawStartScreen draws the title screen.
func (s *Session) drawStartScreen(centerX, centerY int) {
	title := []string{
		`+-----------------------------+`,
		`|   A R E N A   S U R V I V E |`,
		`+-----------------------------+`,
	}
	top := centerY - 6
	for i, line := range title {
		s.centered(centerX, top+i, line)
	}

	subtitle := "~ dodge the swarm, your gun aims itself ~"
	s.centered(centerX, top+len(title)+1, subtitle)

	controlsY := top + len(title) + 3
	s.centered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W A S D / arrows . . Move",
		"R  . . . . . . .  Restart",
		"Q / ESC  . . . . . . Quit",
	}
	for i, line := range controlLines {
		s.centered(centerX, controlsY+1+i, line)
	}

	if s.blinkOn() {
		s.centered(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
	}
}

// drawGameOverScreen draws the game over overlay on top of the frozen arena,
// centred on the arena's middle cell.
func (s *Session) drawGameOverScreen(centerX, centerY int) {
	s.centered(centerX, centerY-2, "  G A M E   O V E R  ")
	s.centered(centerX, centerY, fmt.Sprintf("  You survived %.1f seconds  ", s.state.survived))
	if s.blinkOn() {
		s.centered(centerX, centerY+2, "  >>  Press R to Restart  <<  ")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	s.centered(centerX, centerY-2, "INACTIVITY WARNING")

	left := config.InactivityDisconnectUser - s.now().Sub(s.lastInput).Seconds()
	s.centered(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", int(max(left, 0))))

	s.centered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen(centerX, centerY int) {
	s.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	s.centered(centerX, centerY-1, "The server is restarting for maintenance.")
	s.centered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(s.state.shutdownTimer) + 1
	s.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	s.centered(centerX, centerY+4, "Press Q to disconnect now")
}
