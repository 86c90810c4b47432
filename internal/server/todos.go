package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/repositories"
	"github.com/desertthunder/lanes/internal/shared"
)

// TodosHandler serves the /todos collection over a [repositories.TodoRepository].
type TodosHandler struct {
	repo   *repositories.TodoRepository
	logger *log.Logger
	mux    *http.ServeMux
}

var _ Handler = (*TodosHandler)(nil)

// NewTodosHandler creates a new TodosHandler.
func NewTodosHandler(repo *repositories.TodoRepository, logger *log.Logger) *TodosHandler {
	h := &TodosHandler{repo: repo, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /todos", h.list)
	h.mux.HandleFunc("GET /todos/{id}", h.get)
	h.mux.HandleFunc("POST /todos/add", h.add)
	h.mux.HandleFunc("PUT /todos/{id}", h.update)
	h.mux.HandleFunc("PATCH /todos/{id}", h.update)
	h.mux.HandleFunc("DELETE /todos/{id}", h.remove)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *TodosHandler) Routes() []string {
	return []string{
		"GET /todos",
		"GET /todos/{id}",
		"POST /todos/add",
		"PUT /todos/{id}",
		"PATCH /todos/{id}",
		"DELETE /todos/{id}",
	}
}

func (h *TodosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// todoBody is the create/update request body. Pointers distinguish omitted fields.
type todoBody struct {
	Todo      *string `json:"todo"`
	Completed *bool   `json:"completed"`
	UserID    *int    `json:"userId"`
}

func (h *TodosHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	skip, ok := queryInt(w, r, "skip")
	if !ok {
		return
	}

	todos, err := h.repo.List(r.Context(), limit, skip)
	if err != nil {
		h.fail(w, err)
		return
	}
	total, err := h.repo.Count(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	if limit <= 0 {
		limit = len(todos)
	}
	writeJSON(w, http.StatusOK, models.TodoPage{Todos: todos, Total: total, Skip: skip, Limit: limit})
}

func (h *TodosHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodosHandler) add(w http.ResponseWriter, r *http.Request) {
	var body todoBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.Todo == nil {
		writeError(w, http.StatusBadRequest, "Todo is required")
		return
	}
	if body.UserID == nil {
		writeError(w, http.StatusBadRequest, "User id is required")
		return
	}

	input := models.NewTodo{Todo: *body.Todo, UserID: *body.UserID}
	if body.Completed != nil {
		input.Completed = *body.Completed
	}

	todo, err := h.repo.Create(r.Context(), input)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.logger.Debug("created todo", "id", todo.ID, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodosHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body todoBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	todo, err := h.repo.Update(r.Context(), id, repositories.TodoChanges{
		Todo:      body.Todo,
		Completed: body.Completed,
		UserID:    body.UserID,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodosHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

// fail maps repository errors to statuses. Unexpected errors are logged and hidden from the client.
func (h *TodosHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		writeError(w, http.StatusNotFound, message(err, shared.ErrNotFound))
	case errors.Is(err, shared.ErrValidation):
		writeError(w, http.StatusBadRequest, message(err, shared.ErrValidation))
	default:
		h.logger.Error("task store failure", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// message strips the sentinel prefix added by %w wrapping.
func message(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid todo id '%s'", raw))
		return 0, false
	}
	return id, true
}

func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid '%s' - must be a non-negative number", key))
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
