package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lanes/internal/shared"
	"github.com/desertthunder/lanes/internal/tasks"
	"github.com/desertthunder/lanes/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultBoardLog = "./tmp/lanes-board.log"

// Board launches the interactive task board.
func (r *Runner) Board(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Log.File
	if path == "" {
		path = defaultBoardLog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(path)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())

	store := r.store
	if r.ownStore {
		store = r.newStore(ctx, fileLogger)
	}

	updates := make(chan tasks.State, 64)
	board := r.newBoard(store, shared.WithLogger(fileLogger, "component", "board"), updates)

	model := ui.NewModel(ctx, board, updates)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
