package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/services"
	"github.com/desertthunder/lanes/internal/shared"
)

// DefaultFetchLimit is the page size requested by FetchAll.
const DefaultFetchLimit = 20

// Board defines the operations the CLI and TUI use to read and change the task collection.
type Board interface {
	// FetchAll replaces the collection with the first page of remote records.
	FetchAll(ctx context.Context) error

	// Create adds a task after the remote store accepts it. Nothing is inserted on failure.
	Create(ctx context.Context, draft models.Draft) (models.Task, error)

	// Update applies a patch optimistically, then commits the reconciled task or restores the original.
	Update(ctx context.Context, id int, patch models.Patch) (models.Task, error)

	// Remove deletes a task after the remote store confirms. The task stays on failure.
	Remove(ctx context.Context, id int) error

	// SetEditingTask sets or clears the task open in the edit form.
	SetEditingTask(task *models.Task)

	State() State
	Lanes() map[models.Status][]models.Task
	Task(id int) (models.Task, bool)
}

// Options configures a [Synchronizer].
type Options struct {
	Limit   int          // Page size for FetchAll; defaults to [DefaultFetchLimit]
	UserID  int          // Owner recorded on created tasks; defaults to 1
	Logger  *log.Logger
	Updates chan<- State // Optional; receives every new state without blocking
}

// Synchronizer implements [Board] over a [services.Store].
//
// The lock guards state only. It is never held across a store call.
type Synchronizer struct {
	store   services.Store
	limit   int
	userID  int
	logger  *log.Logger
	updates chan<- State

	mu    sync.Mutex
	state State
}

var _ Board = (*Synchronizer)(nil)

// NewSynchronizer creates a Synchronizer with an empty collection.
func NewSynchronizer(store services.Store, opts Options) *Synchronizer {
	if opts.Limit <= 0 {
		opts.Limit = DefaultFetchLimit
	}
	if opts.UserID <= 0 {
		opts.UserID = 1
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Synchronizer{
		store:   store,
		limit:   opts.Limit,
		userID:  opts.UserID,
		logger:  opts.Logger,
		updates: opts.Updates,
		state:   State{Tasks: []models.Task{}},
	}
}

// dispatch reduces each action in order and publishes the resulting state once.
func (s *Synchronizer) dispatch(actions ...Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	snapshot := s.state.Clone()
	s.sendUpdate(snapshot)
	return snapshot
}

// sendUpdate offers the state to the updates channel without blocking.
func (s *Synchronizer) sendUpdate(state State) {
	if s.updates == nil {
		return
	}
	select {
	case s.updates <- state:
	default:
	}
}

// fail records err in state and returns it as a [*SyncError].
func (s *Synchronizer) fail(op Op, err error, actions ...Action) error {
	serr := newSyncError(op, err)
	s.dispatch(append(actions, errorAction(serr.Error()))...)
	s.logger.Debug("sync failed", "op", op, "kind", serr.Kind, "error", serr.Err)
	return serr
}

func (s *Synchronizer) FetchAll(ctx context.Context) error {
	s.dispatch(loadingAction(true))
	s.logger.Debug("fetching tasks", "limit", s.limit)

	page, err := s.store.List(ctx, s.limit)
	if err != nil {
		return s.fail(OpFetch, err, loadingAction(false))
	}

	tasks := make([]models.Task, 0, len(page.Todos))
	for _, todo := range page.Todos {
		tasks = append(tasks, models.FromTodo(todo))
	}

	s.dispatch(tasksAction(tasks))
	s.logger.Debug("fetched tasks", "count", len(tasks), "total", page.Total)
	return nil
}

func (s *Synchronizer) Create(ctx context.Context, draft models.Draft) (models.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.Task{}, s.fail(OpCreate, validationError("title must not be empty"))
	}

	todo, err := s.store.Add(ctx, models.NewTodo{Todo: title, Completed: false, UserID: s.userID})
	if err != nil {
		return models.Task{}, s.fail(OpCreate, err)
	}

	task := models.FromTodo(*todo)
	task.Description = draft.Description
	if task.Title == "" {
		task.Title = title
	}
	if task.UserID == 0 {
		task.UserID = s.userID
	}

	if _, ok := s.Task(task.ID); ok {
		s.logger.Warn("remote reused a task id, overwriting", "id", task.ID)
	}
	s.dispatch(addAction(task))
	s.logger.Debug("created task", "id", task.ID)
	return task, nil
}

// Update validates the patch before touching state or the network.
func (s *Synchronizer) Update(ctx context.Context, id int, patch models.Patch) (models.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Task{}, s.fail(OpUpdate, validationError("invalid status %q", *patch.Status))
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Task{}, s.fail(OpUpdate, validationError("title must not be empty"))
	}

	current, ok := s.Task(id)
	if !ok {
		return models.Task{}, s.fail(OpUpdate, fmt.Errorf("%w: id %d", shared.ErrNotFound, id))
	}

	remote := func(ctx context.Context, optimistic models.Task) (*models.Todo, error) {
		return s.store.Update(ctx, id, models.TodoUpdate{
			Completed: optimistic.Completed,
			Todo:      optimistic.Title,
		})
	}
	publish := func(t models.Task) { s.dispatch(replaceAction(t)) }

	out := Transact(ctx, current, patch, remote, publish)
	if !out.Committed {
		s.logger.Warn("update rolled back", "id", id, "error", out.Err)
		return out.Task, s.fail(OpUpdate, out.Err)
	}

	s.logger.Debug("updated task", "id", id, "status", out.Task.Status)
	return out.Task, nil
}

func (s *Synchronizer) Remove(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(OpRemove, err)
	}

	s.dispatch(removeAction(id))
	s.logger.Debug("removed task", "id", id)
	return nil
}

func (s *Synchronizer) SetEditingTask(task *models.Task) {
	s.dispatch(editingAction(task))
}

// State returns a copy of the current state.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Synchronizer) Lanes() map[models.Status][]models.Task {
	return s.State().Lanes()
}

func (s *Synchronizer) Task(id int) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Find(id)
}
