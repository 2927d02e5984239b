package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jpalmerr/todoboard/internal/store"
)

const (
	// shutdownTimeout bounds how long in-flight requests may run after the
	// server context is cancelled.
	shutdownTimeout = 5 * time.Second

	// maxFormBytes caps the size of a form submission body; larger bodies
	// are answered with 413.
	maxFormBytes = 64 << 10

	// checkboxOn is the value a browser submits for a checked checkbox.
	checkboxOn = "on"
)

// Renderer produces the HTML views of a todo list.
type Renderer interface {
	// Page writes the full HTML document.
	Page(w io.Writer, todos []store.Todo) error

	// Fragment writes the creation form and list for partial replacement.
	Fragment(w io.Writer, todos []store.Todo) error
}

// Options holds the tunable parts of a [Server].
type Options struct {
	// Addr is the TCP address to listen on, e.g. "127.0.0.1:3000".
	Addr string

	// ReadTimeout and WriteTimeout are passed to http.Server.
	// Zero means no timeout.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server handles HTTP requests for the TodoBoard UI and API.
//
// Server provides four routes:
//   - GET /: Full HTML page
//   - GET /todos: All todos as JSON, in creation order
//   - POST /create: Append a todo, respond with the list fragment
//   - POST /update: Set a todo's done flag, respond with the list fragment
//
// Any other path is answered with 404; a known path with the wrong method
// with 405.
type Server struct {
	store      store.Store
	renderer   Renderer
	opts       Options
	httpServer *http.Server
	listener   net.Listener
	stopped    chan struct{}
	logger     *slog.Logger
}

// NewServer creates a new HTTP [Server].
//
// The server is not started until [Server.Start] is called; [Server.Handler]
// can be used without starting it.
func NewServer(st store.Store, renderer Renderer, opts Options, logger *slog.Logger) *Server {
	return &Server{
		store:    st,
		renderer: renderer,
		opts:     opts,
		stopped:  make(chan struct{}),
		logger:   logger,
	}
}

// Handler returns the routing table as an [http.Handler].
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /todos", s.handleList)
	mux.HandleFunc("POST /create", s.handleCreate)
	mux.HandleFunc("POST /update", s.handleUpdate)

	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown with a 5-second
// timeout. Call [Server.Wait] to block until shutdown has finished.
//
// Returns an error if the server fails to bind to the configured address.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify the address synchronously
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.opts.Addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		// request contexts are derived from the server context so that
		// cancelling ctx also cancels in-flight requests
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		defer close(s.stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// Wait blocks until a started server has finished shutting down.
func (s *Server) Wait() {
	<-s.stopped
}

// Addr returns the address the server is listening on, or the configured
// address if it has not been started. Useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.Addr
}

// handlePage serves the full HTML document.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, s.renderer.Page, s.store.List())
}

// handleList returns all todos as a JSON array.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	todos := s.store.List()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(todos); err != nil {
		s.logger.Error("failed to encode todo list", "error", err)
	}
}

// handleCreate appends a todo from the "title" form field.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	form, err := parseCreateForm(w, r)
	if err != nil {
		s.rejectForm(w, r, err)
		return
	}

	todo, err := s.store.Create(form.title)
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("failed to create todo", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.logger.Debug("todo created", "id", todo.ID)
	s.render(w, s.renderer.Fragment, s.store.List())
}

// handleUpdate sets the done flag from the "id" and "done" form fields.
//
// An id that matches no todo is ignored and the current list is returned.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	form, err := parseUpdateForm(w, r)
	if err != nil {
		s.rejectForm(w, r, err)
		return
	}

	if !s.store.SetDone(form.id, form.done) {
		s.logger.Debug("update ignored, no such todo", "id", form.id)
	}

	s.render(w, s.renderer.Fragment, s.store.List())
}

// rejectForm answers a form that failed to parse or lacked a required field.
func (s *Server) rejectForm(w http.ResponseWriter, r *http.Request, err error) {
	status := formErrorStatus(err)
	s.logger.Debug("form rejected", "path", r.URL.Path, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

// render executes a view into a buffer so a template failure never leaves
// a partially written 200 response.
func (s *Server) render(w http.ResponseWriter, view func(io.Writer, []store.Todo) error, todos []store.Todo) {
	var buf bytes.Buffer
	if err := view(&buf, todos); err != nil {
		s.logger.Error("failed to render view", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
