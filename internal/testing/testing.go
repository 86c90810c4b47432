// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/shared"
)

// FakeStore is an in-memory test double for services.Store.
//
// Set the *Err fields to make the matching method fail. Hooks run before the
// method does anything else, which lets tests block or observe an in-flight call.
type FakeStore struct {
	mu     sync.Mutex
	todos  []models.Todo
	nextID int

	ListErr   error
	GetErr    error
	AddErr    error
	UpdateErr error
	DeleteErr error

	// UpdateResult, when set, is returned by Update instead of the stored record.
	UpdateResult *models.Todo

	// FixedAddID, when non-zero, is the ID handed out by every Add. The public
	// sandbox API answers each create with the same ID.
	FixedAddID int

	BeforeUpdate func(id int)

	Calls []string
}

// NewFakeStore creates a FakeStore seeded with todos.
func NewFakeStore(todos ...models.Todo) *FakeStore {
	next := 0
	for _, t := range todos {
		next = max(next, t.ID)
	}
	return &FakeStore{todos: append([]models.Todo(nil), todos...), nextID: next + 1}
}

func (f *FakeStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallCount returns how many recorded calls start with the given method name.
func (f *FakeStore) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c, method) {
			n++
		}
	}
	return n
}

func (f *FakeStore) List(ctx context.Context, limit int) (*models.TodoPage, error) {
	f.record(fmt.Sprintf("List %d", limit))
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	n := min(limit, len(f.todos))
	todos := append([]models.Todo{}, f.todos[:n]...)
	return &models.TodoPage{Todos: todos, Total: len(f.todos), Skip: 0, Limit: limit}, nil
}

func (f *FakeStore) Get(ctx context.Context, id int) (*models.Todo, error) {
	f.record(fmt.Sprintf("Get %d", id))
	if f.GetErr != nil {
		return nil, f.GetErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.todos {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: status 404", shared.ErrTransport)
}

func (f *FakeStore) Add(ctx context.Context, todo models.NewTodo) (*models.Todo, error) {
	f.record("Add " + todo.Todo)
	if f.AddErr != nil {
		return nil, f.AddErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	created := models.Todo{ID: f.nextID, Todo: todo.Todo, Completed: todo.Completed, UserID: todo.UserID}
	if f.FixedAddID != 0 {
		created.ID = f.FixedAddID
		return &created, nil
	}
	f.nextID++
	f.todos = append(f.todos, created)
	return &created, nil
}

func (f *FakeStore) Update(ctx context.Context, id int, update models.TodoUpdate) (*models.Todo, error) {
	if f.BeforeUpdate != nil {
		f.BeforeUpdate(id)
	}
	f.record(fmt.Sprintf("Update %d", id))
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	if f.UpdateResult != nil {
		r := *f.UpdateResult
		return &r, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id {
			f.todos[i].Todo = update.Todo
			f.todos[i].Completed = update.Completed
			r := f.todos[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: status 404", shared.ErrTransport)
}

func (f *FakeStore) Delete(ctx context.Context, id int) error {
	f.record(fmt.Sprintf("Delete %d", id))
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: status 404", shared.ErrTransport)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
