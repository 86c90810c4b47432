package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/shared"
	tu "github.com/desertthunder/lanes/internal/testing"
)

func fixtureTodos() []models.Todo {
	return []models.Todo{
		{ID: 1, Todo: "Do something nice for someone you care about", Completed: true, UserID: 26},
		{ID: 2, Todo: "Memorize a poem", Completed: false, UserID: 13},
		{ID: 3, Todo: "Watch a classic movie", Completed: false, UserID: 68},
	}
}

func newTestSynchronizer(t *testing.T, store *tu.FakeStore, updates chan State) *Synchronizer {
	t.Helper()
	return NewSynchronizer(store, Options{Logger: shared.NewLogger(io.Discard), Updates: updates})
}

// fetched returns a synchronizer that has already loaded the given todos.
func fetched(t *testing.T, todos ...models.Todo) (*Synchronizer, *tu.FakeStore) {
	t.Helper()
	store := tu.NewFakeStore(todos...)
	s := newTestSynchronizer(t, store, nil)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	return s, store
}

func assertKind(t *testing.T, err error, op Op, kind error) {
	t.Helper()
	var serr *SyncError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyncError, got %T: %v", err, err)
	}
	if serr.Op != op {
		t.Errorf("expected op %s, got %s", op, serr.Op)
	}
	if !errors.Is(err, kind) {
		t.Errorf("expected kind %v, got %v", kind, serr.Kind)
	}
}

func TestNewSynchronizer(t *testing.T) {
	s := NewSynchronizer(tu.NewFakeStore(), Options{})
	if s.limit != DefaultFetchLimit || s.userID != 1 || s.logger == nil {
		t.Errorf("unexpected defaults: limit=%d user=%d", s.limit, s.userID)
	}

	state := s.State()
	if state.Tasks == nil || len(state.Tasks) != 0 || state.Loading || state.Err != "" || state.Editing != nil {
		t.Errorf("expected empty initial state, got %+v", state)
	}
}

func TestFetchAll(t *testing.T) {
	t.Run("maps records into lanes", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)

		if store.CallCount("List 20") != 1 {
			t.Errorf("expected one List call with limit 20, got %v", store.Calls)
		}

		lanes := s.Lanes()
		if len(lanes[models.Pending]) != 2 || len(lanes[models.InProgress]) != 0 || len(lanes[models.Completed]) != 1 {
			t.Errorf("unexpected lane sizes: %d/%d/%d",
				len(lanes[models.Pending]), len(lanes[models.InProgress]), len(lanes[models.Completed]))
		}

		state := s.State()
		if state.Loading || state.Err != "" {
			t.Errorf("expected idle state, got loading=%v err=%q", state.Loading, state.Err)
		}
		for _, task := range state.Tasks {
			if task.Description != fmt.Sprintf("Task %d description", task.ID) {
				t.Errorf("unexpected description %q", task.Description)
			}
			if task.Completed != (task.Status == models.Completed) {
				t.Errorf("completed flag out of step with status: %+v", task)
			}
		}
	})

	t.Run("requests the configured limit", func(t *testing.T) {
		store := tu.NewFakeStore()
		s := NewSynchronizer(store, Options{Limit: 5, Logger: shared.NewLogger(io.Discard)})
		if err := s.FetchAll(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.CallCount("List 5") != 1 {
			t.Errorf("expected List 5, got %v", store.Calls)
		}
	})

	t.Run("publishes loading before the response", func(t *testing.T) {
		updates := make(chan State, 4)
		s := newTestSynchronizer(t, tu.NewFakeStore(fixtureTodos()...), updates)
		if err := s.FetchAll(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		first, second := <-updates, <-updates
		if !first.Loading {
			t.Error("expected first state to be loading")
		}
		if second.Loading || len(second.Tasks) != 3 {
			t.Errorf("expected loaded state, got %+v", second)
		}
	})

	t.Run("failure keeps tasks and records error", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		before := s.State().Tasks

		store.ListErr = fmt.Errorf("%w: status 500", shared.ErrTransport)
		err := s.FetchAll(context.Background())
		assertKind(t, err, OpFetch, shared.ErrTransport)

		state := s.State()
		if !reflect.DeepEqual(state.Tasks, before) {
			t.Errorf("expected tasks unchanged, got %+v", state.Tasks)
		}
		if state.Loading {
			t.Error("expected loading cleared")
		}
		if state.Err == "" {
			t.Error("expected error message")
		}
	})

	t.Run("parse failure", func(t *testing.T) {
		store := tu.NewFakeStore()
		store.ListErr = fmt.Errorf("%w: response has no todos", shared.ErrParse)
		err := newTestSynchronizer(t, store, nil).FetchAll(context.Background())
		assertKind(t, err, OpFetch, shared.ErrParse)
	})

	t.Run("unclassified failures are transport errors", func(t *testing.T) {
		store := tu.NewFakeStore()
		store.ListErr = errors.New("connection reset")
		err := newTestSynchronizer(t, store, nil).FetchAll(context.Background())
		assertKind(t, err, OpFetch, shared.ErrTransport)
	})

	t.Run("success clears a previous error", func(t *testing.T) {
		store := tu.NewFakeStore(fixtureTodos()...)
		s := newTestSynchronizer(t, store, nil)
		store.ListErr = errors.New("offline")
		_ = s.FetchAll(context.Background())

		store.ListErr = nil
		if err := s.FetchAll(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.State().Err != "" {
			t.Errorf("expected error cleared, got %q", s.State().Err)
		}
	})
}

func TestCreate(t *testing.T) {
	t.Run("appends the remote record", func(t *testing.T) {
		s, _ := fetched(t, fixtureTodos()...)

		task, err := s.Create(context.Background(), models.Draft{Title: "Buy milk", Description: "2 liters"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if task.ID != 4 || task.Title != "Buy milk" || task.Description != "2 liters" {
			t.Errorf("unexpected task: %+v", task)
		}
		if task.Status != models.Pending || task.Completed || task.UserID != 1 {
			t.Errorf("expected pending task for user 1, got %+v", task)
		}

		tasks := s.State().Tasks
		if len(tasks) != 4 || tasks[3] != task {
			t.Errorf("expected task appended last, got %+v", tasks)
		}
	})

	t.Run("trims the title", func(t *testing.T) {
		s, store := fetched(t)
		task, err := s.Create(context.Background(), models.Draft{Title: "  Walk  "})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.Title != "Walk" || store.CallCount("Add Walk") != 1 {
			t.Errorf("expected trimmed title, got %q (%v)", task.Title, store.Calls)
		}
	})

	t.Run("empty title is rejected without a remote call", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)

		_, err := s.Create(context.Background(), models.Draft{Title: "   "})
		assertKind(t, err, OpCreate, shared.ErrValidation)

		if store.CallCount("Add") != 0 {
			t.Error("expected no remote call")
		}
		if len(s.State().Tasks) != 3 {
			t.Error("expected no task added")
		}
	})

	t.Run("failure adds nothing", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		store.AddErr = fmt.Errorf("%w: status 503", shared.ErrTransport)

		_, err := s.Create(context.Background(), models.Draft{Title: "Buy milk"})
		assertKind(t, err, OpCreate, shared.ErrTransport)

		state := s.State()
		if len(state.Tasks) != 3 {
			t.Errorf("expected 3 tasks, got %d", len(state.Tasks))
		}
		if state.Err == "" {
			t.Error("expected error message")
		}
	})

	t.Run("a reused remote id overwrites instead of duplicating", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		store.FixedAddID = 255

		for _, title := range []string{"first", "second"} {
			if _, err := s.Create(context.Background(), models.Draft{Title: title}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}

		tasks := s.State().Tasks
		if len(tasks) != 4 {
			t.Fatalf("expected 4 tasks, got %+v", tasks)
		}
		if tasks[3].ID != 255 || tasks[3].Title != "second" {
			t.Errorf("expected task 255 titled second, got %+v", tasks[3])
		}

		store.UpdateResult = &models.Todo{ID: 255, Todo: "second", Completed: true, UserID: 1}
		task, err := s.Update(context.Background(), 255, models.StatusPatch(models.Completed))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.Status != models.Completed || len(s.State().Tasks) != 4 {
			t.Errorf("expected one completed task 255, got %+v", s.State().Tasks)
		}
	})

	t.Run("created task survives a refetch from the same store", func(t *testing.T) {
		s, _ := fetched(t, fixtureTodos()...)
		task, err := s.Create(context.Background(), models.Draft{Title: "Round trip"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := s.FetchAll(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := s.Task(task.ID); !ok {
			t.Errorf("expected task %d after refetch", task.ID)
		}
	})
}

func TestUpdate(t *testing.T) {
	for _, status := range models.Statuses {
		t.Run("moves to "+string(status), func(t *testing.T) {
			s, _ := fetched(t, fixtureTodos()...)

			task, err := s.Update(context.Background(), 2, models.StatusPatch(status))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if task.Status != status || task.Completed != (status == models.Completed) {
				t.Errorf("unexpected task: %+v", task)
			}

			lane := s.Lanes()[status]
			found := false
			for _, l := range lane {
				found = found || l.ID == 2
			}
			if !found {
				t.Errorf("expected task 2 in lane %s", status)
			}
		})
	}

	t.Run("in progress survives reconciliation", func(t *testing.T) {
		s, _ := fetched(t, models.Todo{ID: 5, Todo: "Five", Completed: false, UserID: 1})

		task, err := s.Update(context.Background(), 5, models.StatusPatch(models.InProgress))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.Status != models.InProgress || task.Completed {
			t.Errorf("expected inprogress, not completed, got %+v", task)
		}
		if len(s.Lanes()[models.InProgress]) != 1 {
			t.Error("expected task in the in-progress lane")
		}
	})

	t.Run("optimistic value is visible while the request is in flight", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		store.BeforeUpdate = func(id int) {
			task, _ := s.Task(id)
			if task.Status != models.Completed {
				t.Errorf("expected optimistic status, got %s", task.Status)
			}
		}

		if _, err := s.Update(context.Background(), 2, models.StatusPatch(models.Completed)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("remote fields win", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		store.UpdateResult = &models.Todo{ID: 2, Todo: "Memorize two poems", Completed: false, UserID: 13}

		task, err := s.Update(context.Background(), 2, models.Patch{Title: ptr("Memorize a poem!")})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.Title != "Memorize two poems" {
			t.Errorf("expected remote title, got %q", task.Title)
		}
	})

	t.Run("response with a different id keeps the requested id", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		store.UpdateResult = &models.Todo{ID: 99, Todo: "Memorize a poem", Completed: false, UserID: 13}

		task, err := s.Update(context.Background(), 2, models.StatusPatch(models.InProgress))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.ID != 2 {
			t.Errorf("expected id 2, got %d", task.ID)
		}
		if _, ok := s.Task(99); ok {
			t.Error("expected no task 99 on the board")
		}
		if got, ok := s.Task(2); !ok || got.Status != models.InProgress {
			t.Errorf("expected task 2 in progress, got %+v %v", got, ok)
		}
	})

	t.Run("title-only patch keeps the lane", func(t *testing.T) {
		s, _ := fetched(t, fixtureTodos()...)
		if _, err := s.Update(context.Background(), 2, models.StatusPatch(models.InProgress)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		task, err := s.Update(context.Background(), 2, models.Patch{Title: ptr("Renamed")})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if task.Status != models.InProgress || task.Title != "Renamed" {
			t.Errorf("unexpected task: %+v", task)
		}
	})

	t.Run("failure rolls back exactly", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		desc := "changed"
		before, _ := s.Task(2)
		store.UpdateErr = fmt.Errorf("%w: status 500", shared.ErrTransport)

		task, err := s.Update(context.Background(), 2, models.Patch{Description: &desc, Status: statusPtr(models.Completed)})
		assertKind(t, err, OpUpdate, shared.ErrTransport)

		after, _ := s.Task(2)
		if after != before || task != before {
			t.Errorf("expected rollback to %+v, got %+v", before, after)
		}
		if s.State().Err == "" {
			t.Error("expected error message")
		}
	})

	t.Run("invalid status is rejected without a remote call", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		before := s.State()

		_, err := s.Update(context.Background(), 2, models.StatusPatch(models.Status("archived")))
		assertKind(t, err, OpUpdate, shared.ErrValidation)

		if store.CallCount("Update") != 0 {
			t.Error("expected no remote call")
		}
		if !reflect.DeepEqual(s.State().Tasks, before.Tasks) {
			t.Error("expected tasks unchanged")
		}
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		_, err := s.Update(context.Background(), 2, models.Patch{Title: ptr(" ")})
		assertKind(t, err, OpUpdate, shared.ErrValidation)
		if store.CallCount("Update") != 0 {
			t.Error("expected no remote call")
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		_, err := s.Update(context.Background(), 42, models.StatusPatch(models.Completed))
		assertKind(t, err, OpUpdate, shared.ErrNotFound)
		if store.CallCount("Update") != 0 {
			t.Error("expected no remote call")
		}
	})

	t.Run("last response wins for the same id", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)

		var calls atomic.Int32
		entered := make(chan struct{})
		release := make(chan struct{})
		store.BeforeUpdate = func(id int) {
			if calls.Add(1) == 1 {
				close(entered)
				<-release
			}
		}

		done := make(chan error)
		go func() {
			_, err := s.Update(context.Background(), 2, models.StatusPatch(models.Completed))
			done <- err
		}()

		<-entered
		if _, err := s.Update(context.Background(), 2, models.StatusPatch(models.InProgress)); err != nil {
			t.Fatalf("second update failed: %v", err)
		}
		if task, _ := s.Task(2); task.Status != models.InProgress {
			t.Fatalf("expected second update applied, got %s", task.Status)
		}

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("first update failed: %v", err)
		}

		task, _ := s.Task(2)
		if task.Status != models.Completed || !task.Completed {
			t.Errorf("expected the later response to win, got %+v", task)
		}
	})

	t.Run("does not disturb other tasks", func(t *testing.T) {
		s, _ := fetched(t, fixtureTodos()...)
		before := s.State().Tasks

		if _, err := s.Update(context.Background(), 2, models.StatusPatch(models.InProgress)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		after := s.State().Tasks
		if after[0] != before[0] || after[2] != before[2] {
			t.Error("expected other tasks untouched")
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes after the remote confirms", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)

		if err := s.Remove(context.Background(), 2); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := s.Task(2); ok {
			t.Error("expected task removed")
		}
		if len(s.State().Tasks) != 2 || store.CallCount("Delete 2") != 1 {
			t.Errorf("unexpected state after remove: %+v", s.State().Tasks)
		}
	})

	t.Run("failure keeps the task", func(t *testing.T) {
		s, store := fetched(t, fixtureTodos()...)
		store.DeleteErr = fmt.Errorf("%w: status 500", shared.ErrTransport)

		err := s.Remove(context.Background(), 2)
		assertKind(t, err, OpRemove, shared.ErrTransport)

		if _, ok := s.Task(2); !ok {
			t.Error("expected task kept")
		}
		if s.State().Err == "" {
			t.Error("expected error message")
		}
	})
}

func TestSetEditingTask(t *testing.T) {
	s, _ := fetched(t, fixtureTodos()...)
	task, _ := s.Task(1)

	s.SetEditingTask(&task)
	if editing := s.State().Editing; editing == nil || *editing != task {
		t.Errorf("expected editing task %d, got %+v", task.ID, editing)
	}

	task.Title = "changed locally"
	if s.State().Editing.Title == "changed locally" {
		t.Error("expected editing task to be copied")
	}

	s.SetEditingTask(nil)
	first := s.State()
	s.SetEditingTask(nil)
	second := s.State()

	if first.Editing != nil || !reflect.DeepEqual(first, second) {
		t.Error("expected clearing twice to be idempotent")
	}
}

func TestSyncError(t *testing.T) {
	cause := fmt.Errorf("%w: status 404: Todo with id '9' not found", shared.ErrTransport)
	err := newSyncError(OpRemove, cause)

	if err.Error() != "remove: remote request failed: status 404: Todo with id '9' not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) || KindOf(err) != shared.ErrTransport {
		t.Error("expected cause and kind to match")
	}
	if KindOf(errors.New("plain")) != nil {
		t.Error("expected no kind for plain errors")
	}

	rewrapped := newSyncError(OpUpdate, newSyncError(OpFetch, fmt.Errorf("%w: bad", shared.ErrParse)))
	if rewrapped.Op != OpUpdate || rewrapped.Kind != shared.ErrParse {
		t.Errorf("unexpected rewrap: %+v", rewrapped)
	}
}

func TestUpdatesChannelNeverBlocks(t *testing.T) {
	updates := make(chan State)
	s := newTestSynchronizer(t, tu.NewFakeStore(fixtureTodos()...), updates)

	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(s.State().Tasks) != 3 {
		t.Error("expected fetch to complete without a reader")
	}
}

func ptr(s string) *string { return &s }

func statusPtr(s models.Status) *models.Status { return &s }
