// Package loop runs the frame loop of one terminal game session: input, simulation
// step, and rendering, plus the screens around a game.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/arena/internal/clock"
	"github.com/tomz197/arena/internal/draw"
	"github.com/tomz197/arena/internal/input"
	"github.com/tomz197/arena/internal/loop/config"
	"github.com/tomz197/arena/internal/sim"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Config       sim.Config
	Seed         int64
	Logger       *log.Logger
	Now          func() time.Time // Wall clock; nil means time.Now
}

// Session runs independent games for a single terminal, one after another.
type Session struct {
	cfg    sim.Config
	seed   int64
	rng    *rand.Rand
	game   *sim.Simulation
	clock  *clock.Clock
	state  *sessionState
	logger *log.Logger
	now    func() time.Time

	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
}

// NewSession creates a session reading keys from r and drawing to w.
// It fails if opts.Config is not a playable configuration.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, opts.Config.ArenaRadius)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)
	chunkWriter.SetArea(offsetCol, offsetRow, renderWidth, renderHeight)

	return &Session{
		cfg:          opts.Config,
		seed:         opts.Seed,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		game:         sim.New(opts.Config),
		clock:        clock.New(now, config.MaxFrameDelta),
		state:        newSessionState(),
		logger:       logger,
		now:          now,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    now(),
		termSizeFunc: termSizeFunc,
	}, nil
}

// Run starts the frame loop. It blocks until the player quits, the input ends,
// or the shutdown countdown that follows ctx's cancellation runs out.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	for s.state.Running {
		frameStart := time.Now()

		s.processInput()
		s.update(ctx)
		s.updateScreen()

		if err := s.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	s.logger.Info("session ended", "games", s.state.games)
	draw.ClearScreen(s.writer)
	return nil
}

// processInput reads this frame's keys and handles quitting and inactivity.
func (s *Session) processInput() {
	s.state.Input = input.ReadInput(s.inputStream)
	now := s.now()

	if len(s.state.Input.Pressed) > 0 {
		s.lastInput = now
		s.state.isInactive = false
	} else if now.Sub(s.lastInput).Seconds() > config.InactivityDisconnectUser {
		s.logger.Info("disconnecting inactive session")
		s.state.Running = false
	} else if now.Sub(s.lastInput).Seconds() > config.InactivityWarnUser {
		s.state.isInactive = true
	}

	if s.state.Input.Quit || s.inputStream.Closed() {
		s.state.Running = false
	}
}

// update advances the current screen by one frame.
func (s *Session) update(ctx context.Context) {
	if s.state.GameState != GameStateShutdown && ctx.Err() != nil {
		s.state.GameState = GameStateShutdown
		s.state.shutdownTimer = config.ShutdownDisplaySeconds
	}

	s.clock.Tick()

	switch s.state.GameState {
	case GameStateStart:
		if s.state.Input.Start {
			s.startGame()
		}
	case GameStatePlaying:
		s.game.Update(s.state.Input, s.clock, s.rng)
		if s.game.IsGameOver() {
			s.state.survived = s.clock.NowSeconds()
			s.state.GameState = GameStateOver
			s.logger.Info("game over", "survived", fmt.Sprintf("%.1fs", s.state.survived), "game", s.state.games)
		}
	case GameStateOver:
		if s.state.Input.Restart || s.state.Input.Start {
			s.startGame()
		}
	case GameStateShutdown:
		s.state.shutdownTimer -= s.clock.DeltaSeconds()
		if s.state.shutdownTimer <= 0 {
			s.state.Running = false
		}
	}
}

// startGame throws away the previous simulation and starts a fresh one.
func (s *Session) startGame() {
	input.ResetKeyInput(s.inputStream)

	s.game = sim.New(s.cfg)
	s.clock.Reset()
	s.state.survived = 0
	s.state.games++
	s.state.GameState = GameStatePlaying

	s.logger.Debug("game started", "game", s.state.games, "seed", s.seed)
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.chunkWriter.ClearScreen()
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetArea(offsetCol, offsetRow, renderWidth, renderHeight)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
