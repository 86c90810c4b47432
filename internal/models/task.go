package models

import (
	"fmt"
	"strings"
)

// Status is the lane a task belongs to.
type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "inprogress"
	Completed  Status = "completed"
)

// Statuses lists every status in lane order.
var Statuses = []Status{Pending, InProgress, Completed}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case Pending, InProgress, Completed:
		return true
	default:
		return false
	}
}

// Label returns the lane heading for s.
func (s Status) Label() string {
	switch s {
	case Pending:
		return "Pending"
	case InProgress:
		return "In Progress"
	case Completed:
		return "Completed"
	default:
		return string(s)
	}
}

// Next returns the lane to the right of s, or s itself at the last lane.
func (s Status) Next() Status {
	return s.shift(1)
}

// Prev returns the lane to the left of s, or s itself at the first lane.
func (s Status) Prev() Status {
	return s.shift(-1)
}

func (s Status) shift(by int) Status {
	for i, st := range Statuses {
		if st != s {
			continue
		}
		if j := i + by; j >= 0 && j < len(Statuses) {
			return Statuses[j]
		}
		return s
	}
	return s
}

// ParseStatus accepts the enumerated values plus a few common spellings.
func ParseStatus(v string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "pending", "todo":
		return Pending, nil
	case "inprogress", "in-progress", "in_progress", "doing":
		return InProgress, nil
	case "completed", "done":
		return Completed, nil
	default:
		return "", fmt.Errorf("unknown status %q (want one of pending, inprogress, completed)", v)
	}
}

// Task is a card on the board.
//
// Completed mirrors Status == Completed for compatibility with the remote API.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Completed   bool   `json:"completed"`
	UserID      int    `json:"userId"`
}

// Draft is the input for creating a task.
type Draft struct {
	Title       string
	Description string
	Status      Status
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
}

// StatusPatch is shorthand for a patch that only moves a task between lanes.
func StatusPatch(s Status) Patch {
	return Patch{Status: &s}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply returns t with the patch merged on top.
//
// Completed is derived from the new status only when the patch carries one.
func (t Task) Apply(p Patch) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
		t.Completed = *p.Status == Completed
	}
	return t
}

// Reconcile merges a remote record on top of t. Remote fields win, except the
// ID: the task keeps the ID it was requested under.
//
// The remote API has no status, so the status is kept unless it contradicts the remote completed flag.
// Zero-valued remote titles and user ids are treated as absent.
func (t Task) Reconcile(r Todo) Task {
	if r.Todo != "" {
		t.Title = r.Todo
	}
	t.Completed = r.Completed
	if r.UserID != 0 {
		t.UserID = r.UserID
	}

	switch {
	case r.Completed:
		t.Status = Completed
	case t.Status == Completed:
		t.Status = Pending
	}
	return t
}

// FromTodo maps a remote record into a task, deriving the status from the completed flag.
func FromTodo(r Todo) Task {
	status := Pending
	if r.Completed {
		status = Completed
	}
	return Task{
		ID:          r.ID,
		Title:       r.Todo,
		Description: PlaceholderDescription(r.ID),
		Status:      status,
		Completed:   r.Completed,
		UserID:      r.UserID,
	}
}

// PlaceholderDescription is the description given to records that arrive without one.
func PlaceholderDescription(id int) string {
	return fmt.Sprintf("Task %d description", id)
}

// Lanes groups tasks by status, keeping collection order within each lane.
//
// Every status has an entry, even when its lane is empty.
func Lanes(tasks []Task) map[Status][]Task {
	lanes := make(map[Status][]Task, len(Statuses))
	for _, s := range Statuses {
		lanes[s] = []Task{}
	}
	for _, t := range tasks {
		lanes[t.Status] = append(lanes[t.Status], t)
	}
	return lanes
}
