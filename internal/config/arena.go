package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/arena/internal/sim"
)

// Arena is the game tuning a host reads from the environment.
type Arena struct {
	Sim       sim.Config
	Seed      int64
	SeedFixed bool // ARENA_SEED was set; every game replays the same spawns
}

// SessionSeed returns the seed for a new session: the fixed seed when one was
// configured, otherwise a fresh time-based one.
func (a Arena) SessionSeed() int64 {
	if a.SeedFixed {
		return a.Seed
	}
	return time.Now().UnixNano()
}

// LoadArena reads ARENA_SEED, ARENA_RADIUS and ARENA_PLAYER_HEALTH on top of
// sim.DefaultConfig and validates the result.
func LoadArena() (Arena, error) {
	a := Arena{Sim: sim.DefaultConfig()}

	seed, err := GetEnvInt64("ARENA_SEED", 0)
	if err != nil {
		return a, err
	}
	a.Seed = seed
	a.SeedFixed = GetEnv("ARENA_SEED", "") != ""

	radius, err := GetEnvFloat("ARENA_RADIUS", a.Sim.ArenaRadius)
	if err != nil {
		return a, err
	}
	a.Sim.ArenaRadius = radius

	health, err := GetEnvInt64("ARENA_PLAYER_HEALTH", int64(a.Sim.PlayerHealth))
	if err != nil {
		return a, err
	}
	a.Sim.PlayerHealth = int(health)

	if err := a.Sim.Validate(); err != nil {
		return a, fmt.Errorf("arena config: %w", err)
	}
	return a, nil
}

// NewLogger creates a logger writing to w at the level named by LOG_LEVEL
// (debug, info, warn, error; default info).
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})

	name := strings.TrimSpace(GetEnv("LOG_LEVEL", "info"))
	level, err := log.ParseLevel(name)
	if err != nil {
		return logger, errors.Join(fmt.Errorf("LOG_LEVEL %q", name), err)
	}
	logger.SetLevel(level)
	return logger, nil
}
