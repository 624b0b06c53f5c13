package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nedo8680/plan-accion-cli/internal/api"
	"github.com/nedo8680/plan-accion-cli/internal/cli"
	"github.com/nedo8680/plan-accion-cli/internal/config"
	"github.com/nedo8680/plan-accion-cli/internal/db"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/repository"
	"github.com/nedo8680/plan-accion-cli/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if cfg.BaseURL == "" {
		return fmt.Errorf("PLANACCION_API_URL is not set")
	}
	if !domain.ValidRoles[cfg.Role] {
		return fmt.Errorf("PLANACCION_ROLE must be one of entidad, auditor, admin (got %q)", cfg.Role)
	}

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}

	// An expired session is announced once; the operator renews the token
	// out of band and re-runs the command.
	onAuthExpired := func() {
		fmt.Fprintln(os.Stderr, "Session expired: set a fresh PLANACCION_TOKEN and retry.")
	}

	gateway := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		TimeoutMs:  cfg.TimeoutMs,
		MaxRetries: cfg.MaxRetries,
	}, observer, onAuthExpired)

	session := service.Session{
		Role:       domain.Role(cfg.Role),
		ActorEmail: cfg.ActorEmail,
	}
	orc := service.NewOrchestrator(gateway, session)
	defer orc.Close()

	app := &cli.App{
		Orc:     orc,
		Session: session,
	}

	if cfg.SnapshotPath != "" {
		database, err := db.OpenDB(cfg.SnapshotPath)
		if err != nil {
			return fmt.Errorf("opening snapshot: %w", err)
		}
		defer database.Close()
		app.Snapshot = repository.NewSQLiteSnapshotRepo(database)
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
