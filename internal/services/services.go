// package services defines interface Store for the remote todo list API
package services

import (
	"context"

	"github.com/desertthunder/lanes/internal/models"
)

// Store is the remote source of truth for tasks.
type Store interface {
	// List retrieves up to limit records from the start of the list.
	List(ctx context.Context, limit int) (*models.TodoPage, error)

	// Get retrieves a single record by ID.
	Get(ctx context.Context, id int) (*models.Todo, error)

	// Add creates a record and returns it with its remote-assigned ID.
	Add(ctx context.Context, todo models.NewTodo) (*models.Todo, error)

	// Update replaces the title and completed flag of a record.
	Update(ctx context.Context, id int, update models.TodoUpdate) (*models.Todo, error)

	// Delete removes a record. The acknowledgement body is ignored.
	Delete(ctx context.Context, id int) error
}
