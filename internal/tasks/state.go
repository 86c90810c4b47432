package tasks

import (
	"slices"

	"github.com/desertthunder/lanes/internal/models"
)

// State is the synchronizer's view of the board.
type State struct {
	Tasks   []models.Task // Insertion order: fetch order, then creation order
	Loading bool          // True only while FetchAll is in flight
	Err     string        // Message of the most recent failure
	Editing *models.Task  // Task open in the edit form, if any
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Tasks = slices.Clone(s.Tasks)
	if s.Editing != nil {
		t := *s.Editing
		c.Editing = &t
	}
	return c
}

// Find returns the task with the given ID.
func (s State) Find(id int) (models.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s State) index(id int) int {
	return slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == id })
}

// Lanes groups the tasks by status.
func (s State) Lanes() map[models.Status][]models.Task {
	return models.Lanes(s.Tasks)
}

// ActionKind enumerates the state transitions understood by [Reduce].
type ActionKind int

const (
	SetLoading ActionKind = iota
	SetTasks
	AddTask
	ReplaceTask
	RemoveTask
	SetError
	SetEditing
)

func (k ActionKind) String() string {
	switch k {
	case SetLoading:
		return "set_loading"
	case SetTasks:
		return "set_tasks"
	case AddTask:
		return "add_task"
	case ReplaceTask:
		return "replace_task"
	case RemoveTask:
		return "remove_task"
	case SetError:
		return "set_error"
	case SetEditing:
		return "set_editing"
	default:
		return ""
	}
}

// Action is a single state transition. Only the fields relevant to Kind are read.
type Action struct {
	Kind    ActionKind
	Loading bool
	Tasks   []models.Task
	Task    models.Task
	ID      int
	Err     string
	Editing *models.Task
}

func loadingAction(loading bool) Action {
	return Action{Kind: SetLoading, Loading: loading}
}

func tasksAction(tasks []models.Task) Action {
	return Action{Kind: SetTasks, Tasks: tasks}
}

func addAction(t models.Task) Action {
	return Action{Kind: AddTask, Task: t}
}

func replaceAction(t models.Task) Action {
	return Action{Kind: ReplaceTask, Task: t}
}

func removeAction(id int) Action {
	return Action{Kind: RemoveTask, ID: id}
}

func errorAction(msg string) Action {
	return Action{Kind: SetError, Err: msg}
}

func editingAction(t *models.Task) Action {
	return Action{Kind: SetEditing, Editing: t}
}

// Reduce returns the state that follows s after a. It never modifies s.
//
// Task IDs stay unique: AddTask of an ID already on the board overwrites that
// entry in place, since the remote may hand out the same ID more than once.
// ReplaceTask is keyed by ID and is a no-op when the task is gone. Removing the
// task that is open in the edit form also closes the form.
func Reduce(s State, a Action) State {
	next := s.Clone()

	switch a.Kind {
	case SetLoading:
		next.Loading = a.Loading
	case SetTasks:
		next.Tasks = append([]models.Task{}, a.Tasks...)
		next.Loading = false
		next.Err = ""
	case AddTask:
		if i := next.index(a.Task.ID); i >= 0 {
			next.Tasks[i] = a.Task
		} else {
			next.Tasks = append(next.Tasks, a.Task)
		}
	case ReplaceTask:
		if i := next.index(a.Task.ID); i >= 0 {
			next.Tasks[i] = a.Task
		}
	case RemoveTask:
		kept := make([]models.Task, 0, len(next.Tasks))
		for _, t := range next.Tasks {
			if t.ID != a.ID {
				kept = append(kept, t)
			}
		}
		next.Tasks = kept
		if next.Editing != nil && next.Editing.ID == a.ID {
			next.Editing = nil
		}
	case SetError:
		next.Err = a.Err
	case SetEditing:
		next.Editing = nil
		if a.Editing != nil {
			t := *a.Editing
			next.Editing = &t
		}
	}

	return next
}
