// Dishly — a terminal client for the Dish Recommender recipe service.
//
// Usage:
//
//	dishly [-verbose] [-quiet]
package main

import (
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"

	"github.com/dishly-app/dishly/internal/api"
	"github.com/dishly-app/dishly/internal/auth"
	"github.com/dishly-app/dishly/internal/config"
	"github.com/dishly-app/dishly/internal/logger"
	"github.com/dishly-app/dishly/internal/store"
	"github.com/dishly-app/dishly/internal/theme"
	"github.com/dishly-app/dishly/internal/ui"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console; default from config)")
	flag.Parse()

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "error: dishly needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Configure logger.
	logLevel := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	target := cfg.LogFile
	if *logFile != "" {
		target = *logFile
	}
	var logOut io.Writer = os.Stderr
	if target != "" && target != "stderr" {
		if dir := filepath.Dir(target); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", target, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package to the same output so third-party
	// libraries can't garble the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Wire dependencies.
	local, err := store.Open(cfg.StatePath, log.Named("store"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	backend := api.NewClient(cfg.APIBaseURL, log.Named("api"),
		api.WithHTTPTimeout(cfg.HTTPTimeout),
	)

	identityOpts := []auth.FirebaseOption{auth.WithHTTPTimeout(cfg.HTTPTimeout)}
	if cfg.IdentityEndpoint != "" {
		identityOpts = append(identityOpts, auth.WithEndpoint(cfg.IdentityEndpoint))
	}
	identity := auth.NewFirebaseClient(cfg.FirebaseAPIKey, log.Named("auth"), identityOpts...)

	session := auth.NewManager(identity, backend, local, log.Named("session"))
	themes := theme.NewManager(local, log.Named("theme"))

	if cfg.FirebaseAPIKey == "" {
		log.Warn("no identity API key configured; login will fail until DISHLY_FIREBASE_API_KEY is set")
	}

	log.Info("dishly starting (backend=%s)", cfg.APIBaseURL)

	app := ui.New(backend, session, session.Events().Subscribe(), themes, log)

	// Bubble Tea owns the terminal — blocks until quit.
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Error("ui: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
