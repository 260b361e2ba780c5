package loop

import "github.com/tomz197/arena/internal/input"

// GameState represents the current game phase of a session.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Player died, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

func (g GameState) String() string {
	switch g {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "game over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// sessionState holds the per-session UI state around the simulation.
type sessionState struct {
	Input     input.Input
	GameState GameState
	Running   bool

	survived      float64 // Seconds the last game lasted
	games         int     // Games started in this session
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the inactivity warning is showing

	// Last drawn values, to detect transitions that need a full clear.
	prevGameState GameState
	wasInactive   bool
}

func newSessionState() *sessionState {
	return &sessionState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
