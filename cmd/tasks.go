package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/lanes/internal/formatter"
	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/shared"
	"github.com/urfave/cli/v3"
)

// List fetches the board and renders it to stdout or a file.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	var only *models.Status
	if s := cmd.String("status"); s != "" {
		status, err := models.ParseStatus(s)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		only = &status
	}

	if err := r.board.FetchAll(ctx); err != nil {
		return err
	}

	lanes := r.board.Lanes()
	if only != nil {
		lanes = map[models.Status][]models.Task{*only: lanes[*only]}
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteBoard(format, lanes, path); err != nil {
			return err
		}
		r.logger.Info("board written", "path", path, "format", format)
		return nil
	}

	data, err := formatter.Render(format, lanes)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Show prints one task from the fetched board, or from the remote store with --remote.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}

	var task models.Task
	if cmd.Bool("remote") {
		todo, err := r.store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get task %d: %w", id, err)
		}
		task = models.FromTodo(*todo)
	} else {
		if err := r.board.FetchAll(ctx); err != nil {
			return err
		}
		t, ok := r.board.Task(id)
		if !ok {
			return fmt.Errorf("%w: id %d is not on the board", shared.ErrNotFound, id)
		}
		task = t
	}

	if cmd.Bool("json") {
		return r.writeJSON(task, true)
	}
	if _, err := r.output.Write(formatter.TaskToText(task)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Add creates a pending task.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: task title", shared.ErrMissingArgument)
	}

	task, err := r.board.Create(ctx, models.Draft{Title: title, Description: cmd.String("description")})
	if err != nil {
		return err
	}
	return r.writePlain("Created #%d %s\n", task.ID, task.Title)
}

// Edit changes the title and/or description of a task.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}

	var patch models.Patch
	if cmd.IsSet("title") {
		title := cmd.String("title")
		patch.Title = &title
	}
	if cmd.IsSet("description") {
		desc := cmd.String("description")
		patch.Description = &desc
	}
	if patch.Empty() {
		return fmt.Errorf("%w: --title or --description", shared.ErrMissingArgument)
	}

	return r.update(ctx, id, patch)
}

// Move sets the lane of a task.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}

	raw := cmd.StringArg("status")
	if raw == "" {
		return fmt.Errorf("%w: target status", shared.ErrMissingArgument)
	}
	status, err := models.ParseStatus(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	return r.update(ctx, id, models.StatusPatch(status))
}

// update fetches the board so the task is known locally, then applies the patch.
func (r *Runner) update(ctx context.Context, id int, patch models.Patch) error {
	if err := r.board.FetchAll(ctx); err != nil {
		return err
	}

	task, err := r.board.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	return r.writePlain("Saved #%d (%s)\n", task.ID, task.Status.Label())
}

// Remove deletes a task after confirmation, unless --yes is given.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}

	if err := r.board.FetchAll(ctx); err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		question := fmt.Sprintf("Delete #%d?", id)
		if task, ok := r.board.Task(id); ok {
			question = fmt.Sprintf("Delete #%d '%s'?", id, task.Title)
		}
		ok, err := r.confirm(question)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: task %d kept", shared.ErrAborted, id)
		}
	}

	if err := r.board.Remove(ctx, id); err != nil {
		return err
	}
	return r.writePlain("Deleted #%d\n", id)
}
