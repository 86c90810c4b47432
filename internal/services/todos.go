// Todo list API [Store] implementation
//
// Speaks the DummyJSON /todos contract, which `lanes serve` also implements.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultTodosBaseURL string = "https://dummyjson.com/todos"
	requestIDHeader     string = "X-Request-ID"
)

var _ Store = (*TodoService)(nil)

// TodoService implements [Store] over HTTP.
type TodoService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// TodoServiceOpts configures a [TodoService].
type TodoServiceOpts struct {
	BaseURL    string       // Defaults to https://dummyjson.com/todos
	Token      string       // Optional bearer token
	RateLimit  float64      // Requests per second; 0 disables pacing
	HTTPClient *http.Client // Defaults to http.DefaultClient
	Logger     *log.Logger
}

// NewTodoService creates a new todo list API client.
//
// When a token is configured the HTTP client is wrapped by an [oauth2.Transport] that
// sets "Authorization: Bearer <token>" on every request.
func NewTodoService(ctx context.Context, opts TodoServiceOpts) *TodoService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultTodosBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	client := opts.HTTPClient
	if opts.Token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &TodoService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     opts.Logger,
	}
}

// BaseURL returns the collection URL requests are made against.
func (s *TodoService) BaseURL() string {
	return s.baseURL
}

// doRequest sends body as JSON (when non-nil) and decodes the response into result (when non-nil).
//
// Network failures and non-2xx statuses wrap [shared.ErrTransport]; undecodable bodies wrap [shared.ErrParse].
func (s *TodoService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", shared.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrTransport, err)
	}

	requestID := shared.GenerateID()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.logger.Debug("remote request", "method", method, "url", req.URL.String(), "request_id", requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrTransport, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrTransport, resp.StatusCode)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrParse, err)
	}
	return nil
}

// List retrieves up to limit records.
//
// Calls GET {base}?limit={limit}.
func (s *TodoService) List(ctx context.Context, limit int) (*models.TodoPage, error) {
	var page models.TodoPage
	if err := s.doRequest(ctx, http.MethodGet, "?limit="+strconv.Itoa(limit), nil, &page); err != nil {
		return nil, err
	}
	if page.Todos == nil {
		return nil, fmt.Errorf("%w: response has no todos", shared.ErrParse)
	}
	return &page, nil
}

// Get retrieves a single record.
//
// Calls GET {base}/{id}.
func (s *TodoService) Get(ctx context.Context, id int) (*models.Todo, error) {
	var todo models.Todo
	if err := s.doRequest(ctx, http.MethodGet, "/"+strconv.Itoa(id), nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// Add creates a record.
//
// Calls POST {base}/add.
func (s *TodoService) Add(ctx context.Context, todo models.NewTodo) (*models.Todo, error) {
	var created models.Todo
	if err := s.doRequest(ctx, http.MethodPost, "/add", todo, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the title and completed flag of a record.
//
// Calls PUT {base}/{id}.
func (s *TodoService) Update(ctx context.Context, id int, update models.TodoUpdate) (*models.Todo, error) {
	var updated models.Todo
	if err := s.doRequest(ctx, http.MethodPut, "/"+strconv.Itoa(id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a record.
//
// Calls DELETE {base}/{id}. The response body is not read.
func (s *TodoService) Delete(ctx context.Context, id int) error {
	return s.doRequest(ctx, http.MethodDelete, "/"+strconv.Itoa(id), nil, nil)
}
