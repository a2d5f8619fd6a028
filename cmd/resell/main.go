package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/resell/internal/api"
	"github.com/erazemk/resell/internal/db"
	"github.com/erazemk/resell/internal/session"
	"github.com/erazemk/resell/internal/web"
)

func main() {
	fs := flag.NewFlagSet("resell", flag.ContinueOnError)

	var addr string
	fs.StringVar(&addr, "addr", ":8080", "")
	fs.StringVar(&addr, "a", ":8080", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var sessionTTL time.Duration
	fs.DurationVar(&sessionTTL, "session-ttl", session.DefaultTTL, "")
	fs.DurationVar(&sessionTTL, "t", session.DefaultTTL, "")

	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "")
	fs.BoolVar(&verbose, "v", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: resell [flags]

Serves the console inventory and its add-item wizard. The inventory is kept
in memory and is lost when the server stops.

Flags:
  -a, -addr <host:port>       listen address (default: :8080)
  -l, -log <path>             log file path (default: no file, stdout/stderr only)
  -t, -session-ttl <duration> idle time before an open wizard is discarded (default: 30m)
  -v, -verbose                also log debug messages
  -h, -help                   show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := setupLogger(logPath, verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	database, err := db.OpenMemory()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	sessions, err := session.NewManager(context.Background(), database, sessionTTL)
	if err != nil {
		slog.Error("failed to set up wizard sessions", "error", err)
		os.Exit(1)
	}

	handler, err := newHandler(database, sessions)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr, "session_ttl", sessionTTL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, inventory discarded")
}

// newHandler combines the API, metrics and page routes behind request
// logging. API routes take priority, web routes handle the rest.
func newHandler(database *sql.DB, sessions *session.Manager) (http.Handler, error) {
	webRouter, err := web.NewRouter(database, sessions)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(database, sessions))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", webRouter)

	return api.LoggingMiddleware(mux), nil
}
