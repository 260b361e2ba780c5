package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tomz197/arena/internal/config"
	"github.com/tomz197/arena/internal/loop"
	"golang.org/x/term"
)

func main() {
	arena, err := config.LoadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to a file when asked for.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("GAME_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(logOut, "game")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	session, err := loop.NewSession(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Config: arena.Sim,
		Seed:   arena.SessionSeed(),
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create session", "err", err)
		return
	}
	logger.Info("starting local game", "arena", arena.Sim.ArenaRadius, "seed_fixed", arena.SeedFixed)

	if err := session.Run(context.Background()); err != nil {
		logger.Error("game error", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
