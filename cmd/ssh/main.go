package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/arena/internal/config"
	"github.com/tomz197/arena/internal/draw"
	"github.com/tomz197/arena/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	sessionDrainTimeout = 15 * time.Second
	serverCloseTimeout  = 5 * time.Second
)

func main() {
	logger, err := config.NewLogger(os.Stderr, "ssh")
	if err != nil {
		logger.Warn("falling back to info level", "err", err)
	}

	arena, err := config.LoadArena()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"arena", arena.Sim.ArenaRadius, "health", arena.Sim.PlayerHealth, "seedFixed", arena.SeedFixed)

	// Cancelled on shutdown; every running session shows its countdown and exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	games := &gameHandler{ctx: ctx, arena: arena, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down, notifying players", "sessions", games.active())
	cancel()
	if games.wait(sessionDrainTimeout) {
		logger.Info("all sessions ended")
	} else {
		logger.Warn("sessions still running after timeout", "sessions", games.active())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCloseTimeout)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameHandler runs one independent game session per SSH connection.
type gameHandler struct {
	ctx    context.Context
	arena  config.Arena
	logger *log.Logger

	wg sync.WaitGroup
	mu sync.Mutex
	n  int
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.track(1)
		defer g.track(-1)

		seed := g.arena.SessionSeed()
		logger := g.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height, "seed", seed)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		session, err := loop.NewSession(bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Config:       g.arena.Sim,
			Seed:         seed,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("failed to create session", "err", err)
			return
		}
		if err := session.Run(g.ctx); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

func (g *gameHandler) track(delta int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n += delta
	g.wg.Add(delta)
}

func (g *gameHandler) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// wait blocks until every session ended or timeout passed. It reports whether
// all sessions ended.
func (g *gameHandler) wait(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
