package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/clockwork/internal/cli"
	"github.com/alexanderramin/clockwork/internal/config"
	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/repository"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/alexanderramin/clockwork/internal/timer"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the history store
	store := service.NewHistoryStore(
		repository.NewSQLiteSessionRepo(database),
		repository.NewSQLitePreferencesRepo(database),
		db.NewSQLiteUnitOfWork(database),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	tm := timer.New(context.Background(), store,
		timer.WithTickInterval(cfg.TickInterval),
		timer.WithLogger(logger),
		timer.WithObserver(observer),
	)
	defer tm.Close()

	app := &cli.App{
		Timer: tm,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
