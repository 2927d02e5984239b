package client

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jpalmerr/todoboard/internal/store"
)

const (
	maxResponseBodySize = 1 << 20 // 1MB
	defaultTimeout      = 10 * time.Second
	schemaURL           = "todos.schema.json"
)

//go:embed todos.schema.json
var todosSchema []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(todosSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// StatusError is returned when the board answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, msg)
}

// SchemaError is returned when a /todos payload does not match the schema.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "invalid todo list: " + e.Message
	}
	return fmt.Sprintf("invalid todo list at %s: %s", e.Path, e.Message)
}

// Client is an HTTP client for a single board.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a [Client] for the board at baseURL, e.g. "http://127.0.0.1:3000".
//
// If httpClient is nil, a client with a 10 second timeout is used.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid board url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("board url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("board url must include a host")
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// List fetches all todos in board order.
func (c *Client) List(ctx context.Context) ([]store.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/todos"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if err := validateTodos(body); err != nil {
		return nil, err
	}

	var todos []store.Todo
	if err := json.Unmarshal(body, &todos); err != nil {
		return nil, fmt.Errorf("failed to decode todo list: %w", err)
	}
	return todos, nil
}

// Create adds a todo with the given title.
func (c *Client) Create(ctx context.Context, title string) error {
	return c.postForm(ctx, "/create", url.Values{"title": {title}})
}

// SetDone marks the todo with the given id as done or not done.
//
// The board ignores unknown ids, so no error is returned for them.
func (c *Client) SetDone(ctx context.Context, id string, done bool) error {
	form := url.Values{"id": {id}}
	if done {
		form.Set("done", "on")
	}
	return c.postForm(ctx, "/update", form)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err = c.do(req)
	return err
}

// do sends the request and returns the body of a 200 response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

// validateTodos checks a raw /todos payload against the embedded schema.
func validateTodos(body []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &SchemaError{Message: fmt.Sprintf("not JSON: %v", err)}
	}

	if err := schema.Validate(doc); err != nil {
		return toSchemaError(err)
	}
	return nil
}

// toSchemaError reduces a jsonschema validation error to its first leaf cause.
func toSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{Path: ve.InstanceLocation, Message: ve.Message}
}
