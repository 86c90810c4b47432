package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/shared"
)

// TodoChanges is a partial update to a todo record. Nil fields are left untouched.
type TodoChanges struct {
	Todo      *string
	Completed *bool
	UserID    *int
}

// TodoRepository persists todo records for the development task store.
//
// Deleted records are soft-deleted and excluded from every query.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new TodoRepository with the given database connection
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func notFound(id int) error {
	return fmt.Errorf("%w: Todo with id '%d' not found", shared.ErrNotFound, id)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: todo must not be empty", shared.ErrValidation)
	}
	return nil
}

// Create inserts a new record with the next id from the todos sequence.
func (r *TodoRepository) Create(ctx context.Context, todo models.NewTodo) (*models.Todo, error) {
	if err := validateTitle(todo.Todo); err != nil {
		return nil, err
	}
	if todo.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", shared.ErrValidation)
	}

	id, err := NextSequence(ctx, r.db, "todos")
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO todos (id, todo, completed, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, id, todo.Todo, todo.Completed, todo.UserID, now, now); err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return &models.Todo{ID: id, Todo: todo.Todo, Completed: todo.Completed, UserID: todo.UserID}, nil
}

// Get retrieves a record by id, excluding soft-deleted records
func (r *TodoRepository) Get(ctx context.Context, id int) (*models.Todo, error) {
	query := `
		SELECT id, todo, completed, user_id
		FROM todos
		WHERE id = ? AND deleted_at IS NULL
	`

	var todo models.Todo
	err := r.db.QueryRowContext(ctx, query, id).Scan(&todo.ID, &todo.Todo, &todo.Completed, &todo.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}
	return &todo, nil
}

// Update merges changes into an existing record and returns the result.
func (r *TodoRepository) Update(ctx context.Context, id int, changes TodoChanges) (*models.Todo, error) {
	todo, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Todo != nil {
		if err := validateTitle(*changes.Todo); err != nil {
			return nil, err
		}
		todo.Todo = *changes.Todo
	}
	if changes.Completed != nil {
		todo.Completed = *changes.Completed
	}
	if changes.UserID != nil {
		todo.UserID = *changes.UserID
	}

	query := `
		UPDATE todos
		SET todo = ?, completed = ?, user_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, todo.Todo, todo.Completed, todo.UserID, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, notFound(id)
	}
	return todo, nil
}

// Delete soft-deletes a record and returns it with its deletion stamp.
func (r *TodoRepository) Delete(ctx context.Context, id int) (*models.DeletedTodo, error) {
	todo, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		UPDATE todos
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, notFound(id)
	}

	return &models.DeletedTodo{Todo: *todo, IsDeleted: true, DeletedOn: now.Format(time.RFC3339)}, nil
}

// List returns records in id order. A limit of zero or less returns every record after skip.
func (r *TodoRepository) List(ctx context.Context, limit, skip int) ([]models.Todo, error) {
	if limit <= 0 {
		limit = -1
	}
	if skip < 0 {
		skip = 0
	}

	query := `
		SELECT id, todo, completed, user_id
		FROM todos
		WHERE deleted_at IS NULL
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Todo, &todo.Completed, &todo.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return todos, nil
}

// Count returns the number of records that are not deleted.
func (r *TodoRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos WHERE deleted_at IS NULL").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return n, nil
}
