package server

import (
	"context"

	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/repositories"
)

// SampleTodos is the data inserted by `lanes serve --seed`.
var SampleTodos = []models.NewTodo{
	{Todo: "Do something nice for someone you care about", Completed: false, UserID: 1},
	{Todo: "Memorize a poem", Completed: true, UserID: 1},
	{Todo: "Watch a classic movie", Completed: true, UserID: 1},
	{Todo: "Watch a documentary", Completed: false, UserID: 1},
	{Todo: "Invest in cryptocurrency", Completed: false, UserID: 1},
	{Todo: "Contribute code or a monetary donation to an open-source software project", Completed: false, UserID: 1},
	{Todo: "Solve a Rubik's cube", Completed: true, UserID: 1},
	{Todo: "Bake pastries for yourself and neighbor", Completed: false, UserID: 1},
}

// Seed inserts todos when the store is empty and returns how many were added.
func Seed(ctx context.Context, repo *repositories.TodoRepository, todos []models.NewTodo) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}

	for _, todo := range todos {
		if _, err := repo.Create(ctx, todo); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
