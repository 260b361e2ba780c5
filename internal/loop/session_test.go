package loop

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/arena/internal/draw"
	"github.com/tomz197/arena/internal/input"
	"github.com/tomz197/arena/internal/loop/config"
	"github.com/tomz197/arena/internal/physics"
	"github.com/tomz197/arena/internal/sim"
)

// fakeClock is a wall clock the test moves by hand.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func fixedSize() (int, int, error) { return 80, 24, nil }

// newTestSession builds a session whose input never produces bytes on its own.
func newTestSession(t *testing.T, cfg sim.Config) (*Session, *bytes.Buffer, *fakeClock) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	fc := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	var out bytes.Buffer
	s, err := NewSession(bufio.NewReader(pr), &out, Options{
		TermSizeFunc: fixedSize,
		Config:       cfg,
		Seed:         1,
		Logger:       log.New(io.Discard),
		Now:          fc.now,
	})
	require.NoError(t, err)
	return s, &out, fc
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.ArenaRadius = -1

	_, err := NewSession(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: fixedSize,
		Config:       cfg,
	})

	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestSessionGameFlow(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.PlayerHealth = 1
	cfg.EnemySpeed = 100
	cfg.EnemySpawnInterval = 0.05
	s, _, fc := newTestSession(t, cfg)
	ctx := context.Background()

	s.update(ctx)
	assert.Equal(t, GameStateStart, s.state.GameState, "waits for the start key")

	s.state.Input = input.Input{Start: true}
	s.update(ctx)
	require.Equal(t, GameStatePlaying, s.state.GameState)
	assert.Equal(t, 1, s.state.games)

	s.state.Input = input.Input{}
	for i := 0; i < 50 && s.state.GameState == GameStatePlaying; i++ {
		fc.advance(100 * time.Millisecond)
		s.update(ctx)
	}
	require.Equal(t, GameStateOver, s.state.GameState)
	assert.Greater(t, s.state.survived, 0.0)
	survived := s.state.survived

	fc.advance(time.Second)
	s.update(ctx)
	assert.Equal(t, GameStateOver, s.state.GameState, "stays over without a key")
	assert.Equal(t, survived, s.state.survived)

	s.state.Input = input.Input{Restart: true}
	s.update(ctx)
	require.Equal(t, GameStatePlaying, s.state.GameState)
	assert.Equal(t, 2, s.state.games)
	assert.Equal(t, cfg.PlayerHealth, s.game.Health())
	assert.Equal(t, 0, s.game.EnemyCount())
	assert.Zero(t, s.clock.NowSeconds(), "the clock restarts with the game")
}

func TestSessionRestartKeyIgnoredWhilePlaying(t *testing.T) {
	s, _, fc := newTestSession(t, sim.DefaultConfig())
	ctx := context.Background()

	s.state.Input = input.Input{Start: true}
	s.update(ctx)
	s.state.Input = input.Input{Restart: true}
	fc.advance(100 * time.Millisecond)
	s.update(ctx)

	assert.Equal(t, 1, s.state.games)
	assert.InDelta(t, 0.1, s.clock.NowSeconds(), 1e-9)
}

func TestSessionDrawsHUD(t *testing.T) {
	s, out, fc := newTestSession(t, sim.DefaultConfig())
	ctx := context.Background()

	s.state.Input = input.Input{Start: true}
	s.update(ctx)
	s.state.Input = input.Input{Right: true}
	fc.advance(100 * time.Millisecond)
	s.update(ctx)

	require.NoError(t, s.drawFrame())

	frame := out.String()
	assert.Contains(t, frame, "HP: 5    TIME: 0.1s")
	assert.Contains(t, frame, "Enemies: 0")
	assert.Contains(t, frame, draw.ColorBrightCyan, "player is drawn")
	assert.Greater(t, s.game.PlayerPosition().X, 0.0)
}

func TestSessionDrawsScreens(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.PlayerHealth = 1
	cfg.EnemySpeed = 100
	cfg.EnemySpawnInterval = 0.05
	s, out, fc := newTestSession(t, cfg)
	ctx := context.Background()

	require.NoError(t, s.drawFrame())
	assert.Contains(t, out.String(), "Controls")

	s.state.Input = input.Input{Start: true}
	s.update(ctx)
	s.state.Input = input.Input{}
	for i := 0; i < 50 && s.state.GameState == GameStatePlaying; i++ {
		fc.advance(100 * time.Millisecond)
		s.update(ctx)
	}
	require.Equal(t, GameStateOver, s.state.GameState)

	out.Reset()
	require.NoError(t, s.drawFrame())
	frame := out.String()
	assert.Contains(t, frame, "\033[H\033[2J", "state change clears the screen")
	assert.Contains(t, frame, "G A M E   O V E R")
	assert.Contains(t, frame, "You survived")
	assert.Contains(t, frame, "HP: ")

	// the overlay is centred on the arena, not the terminal
	col, row := s.canvas.WorldToTerminal(physics.Zero)
	title := "  G A M E   O V E R  "
	at := fmt.Sprintf("\033[%d;%dH%s", row-2+s.canvas.OffsetRow(), col-len(title)/2+s.canvas.OffsetCol(), title)
	assert.Contains(t, frame, at)
}

func TestSessionShutdownCountdown(t *testing.T) {
	s, out, fc := newTestSession(t, sim.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.update(ctx)
	require.Equal(t, GameStateShutdown, s.state.GameState)
	require.NoError(t, s.drawFrame())
	assert.Contains(t, out.String(), "SERVER SHUTTING DOWN")

	frames := 0
	for s.state.Running && frames < 1000 {
		fc.advance(time.Second)
		s.update(ctx)
		frames++
	}

	assert.False(t, s.state.Running)
	// long frames are capped, so the countdown takes MaxFrameDelta steps
	want := int(config.ShutdownDisplaySeconds / config.MaxFrameDelta.Seconds())
	assert.InDelta(t, want, frames, 1)
}

func TestSessionInactivity(t *testing.T) {
	s, out, fc := newTestSession(t, sim.DefaultConfig())

	fc.advance((config.InactivityWarnUser + 1) * time.Second)
	s.processInput()
	assert.True(t, s.state.isInactive)
	assert.True(t, s.state.Running)

	require.NoError(t, s.drawFrame())
	assert.Contains(t, out.String(), "INACTIVITY WARNING")

	fc.advance((config.InactivityDisconnectUser - config.InactivityWarnUser) * time.Second)
	s.processInput()
	assert.False(t, s.state.Running)
}

func TestSessionRunQuitsOnKey(t *testing.T) {
	var out bytes.Buffer
	s, err := NewSession(bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize,
		Config:       sim.DefaultConfig(),
		Logger:       log.New(io.Discard),
	})
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))

	assert.True(t, strings.HasPrefix(out.String(), "\033[?25l"), "cursor hidden first")
	assert.True(t, strings.HasSuffix(out.String(), "\033[?25h"), "cursor restored last")
}

func TestSessionRunEndsWhenInputCloses(t *testing.T) {
	pr, pw := io.Pipe()
	s, err := NewSession(bufio.NewReader(pr), io.Discard, Options{
		TermSizeFunc: fixedSize,
		Config:       sim.DefaultConfig(),
		Logger:       log.New(io.Discard),
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()
	require.NoError(t, pw.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after its input closed")
	}
}

func TestHUDText(t *testing.T) {
	assert.Equal(t, "HP: 5    TIME: 12.3s", hudText(5, 12.34))
	assert.Equal(t, "HP: 0    TIME: 0.0s", hudText(0, -1))
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		width, height          int
		wantW, wantH, col, row int
	}{
		{"fits", 80, 24, 80, 24, 0, 0},
		{"too wide", config.MaxTermWidth + 40, 24, config.MaxTermWidth, 24, 20, 0},
		{"too tall", 80, config.MaxTermHeight + 11, 80, config.MaxTermHeight, 0, 5},
		{"degenerate", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, col, row := clampTermSize(tt.width, tt.height)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.row, row)
		})
	}
}

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "start", GameStateStart.String())
	assert.Equal(t, "playing", GameStatePlaying.String())
	assert.Equal(t, "game over", GameStateOver.String())
	assert.Equal(t, "shutdown", GameStateShutdown.String())
	assert.Equal(t, "unknown", GameState(9).String())
}
