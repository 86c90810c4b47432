package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/lanes/internal/repositories"
	"github.com/desertthunder/lanes/internal/server"
	"github.com/desertthunder/lanes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the development task store until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	dbCfg := r.config.Database
	if cmd.IsSet("db") {
		dbCfg.Path = cmd.String("db")
	}

	r.logger.Info("initializing database", "path", dbCfg.Path)

	db, err := shared.NewDatabase(dbCfg.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, dbCfg)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := repositories.NewTodoRepository(db)
	if cmd.Bool("seed") {
		n, err := server.Seed(ctx, repo, server.SampleTodos)
		if err != nil {
			return fmt.Errorf("failed to seed task store: %w", err)
		}
		if n > 0 {
			r.logger.Info("seeded task store", "count", n)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := shared.WithLogger(r.logger, "component", "server")
	return server.New(cfg, repo, logger).ListenAndServe(ctx)
}
