package main

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/arena/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

// landingPage tells visitors how to connect to the SSH game server.
var landingPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Arena Survive</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; text-align: center; padding-top: 10vh; }
code { background: #222; color: #5ff; padding: 0.4em 0.8em; font-size: 1.4em; }
</style>
</head>
<body>
<h1>A R E N A &nbsp; S U R V I V E</h1>
<p>Dodge the swarm. Your gun aims itself.</p>
<p><code>ssh -t -p {{.Port}} {{.Host}}</code></p>
<p>WASD / arrows to move, R to restart, Q to quit.</p>
</body>
</html>
`))

type pageData struct {
	Host string
	Port string
}

func landingHandler(data pageData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = landingPage.Execute(w, data)
	}
}

func main() {
	logger, err := config.NewLogger(os.Stderr, "web")
	if err != nil {
		logger.Warn("falling back to info level", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	data := pageData{
		Host: config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		Port: config.GetEnv("SSH_PORT", "2222"),
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           landingHandler(data),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
