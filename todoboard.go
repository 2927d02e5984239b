package todoboard

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/jpalmerr/todoboard/dashboard"
	"github.com/jpalmerr/todoboard/internal/server"
	"github.com/jpalmerr/todoboard/internal/store"
)

const (
	defaultHost         = "127.0.0.1"
	defaultPort         = 3000
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// TodoBoard serves a server-rendered todo list over HTTP.
//
// TodoBoard owns an in-memory todo store and the HTTP server in front of
// it. It is created using [New] with functional options and started with
// [TodoBoard.Start]. State lives only as long as a Start call: each start
// begins with an empty list plus any [WithTodo] seeds.
//
// The typical lifecycle is:
//
//	tb, err := todoboard.New(todoboard.WithPort(3000))
//	if err != nil {
//	    slog.Error("failed to create todoboard", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	tb.Start(ctx) // blocks until context cancelled
type TodoBoard struct {
	title           string
	host            string
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	logger          *slog.Logger
	seeds           []seedTodo
	changeCallbacks []func(Change)
}

// New creates a new [TodoBoard] instance with the given options.
//
// Defaults:
//   - Host: 127.0.0.1
//   - Port: 3000
//   - Read timeout: 5 seconds
//   - Write timeout: 10 seconds
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*TodoBoard, error) {
	cfg := &tbConfig{
		host:         defaultHost,
		port:         defaultPort,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TodoBoard{
		title:           cfg.title,
		host:            cfg.host,
		port:            cfg.port,
		readTimeout:     cfg.readTimeout,
		writeTimeout:    cfg.writeTimeout,
		logger:          logger,
		seeds:           cfg.seeds,
		changeCallbacks: cfg.changeCallbacks,
	}, nil
}

// Start serves the board until the provided context is cancelled.
//
// Start is a blocking call. Templates are validated and the listener is
// bound before Start begins waiting, so configuration problems are
// returned immediately. On cancellation, in-flight requests get up to 5
// seconds to finish and every pending change callback is delivered before
// Start returns.
//
// Returns nil on graceful shutdown, including when ctx is already cancelled.
func (tb *TodoBoard) Start(ctx context.Context) error {
	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	renderer, err := dashboard.NewRenderer(tb.title)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	todoStore := store.NewMemoryStore()
	if err := tb.seed(todoStore); err != nil {
		return err
	}

	// subscribe after seeding so callbacks only see runtime changes; the
	// subscription is lossless so every change reaches the callbacks
	changes := todoStore.SubscribeLossless()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for change := range changes {
			tb.logger.Debug("todo changed",
				"kind", string(change.Kind),
				"id", change.Todo.ID,
				"done", change.Todo.Done,
			)
			if len(tb.changeCallbacks) > 0 {
				publicChange := storeChangeToPublicChange(change)
				for _, cb := range tb.changeCallbacks {
					invokeCallbackSafe(cb, publicChange, tb.logger)
				}
			}
		}
	}()

	// cleanup closes the subscription and waits for queued changes to drain
	cleanup := func() {
		todoStore.Unsubscribe(changes)
		wg.Wait()
	}

	httpServer := server.NewServer(todoStore, renderer, server.Options{
		Addr:         tb.Addr(),
		ReadTimeout:  tb.readTimeout,
		WriteTimeout: tb.writeTimeout,
	}, tb.logger)
	if err := httpServer.Start(ctx); err != nil {
		cleanup()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	tb.logger.Info("todoboard started",
		"url", "http://"+httpServer.Addr(),
		"seeded", len(tb.seeds),
	)

	<-ctx.Done()
	httpServer.Wait()
	cleanup()
	tb.logger.Info("todoboard stopped", "todos", todoStore.Len())
	return nil
}

// seed creates the configured initial todos.
func (tb *TodoBoard) seed(st *store.MemoryStore) error {
	for i, s := range tb.seeds {
		todo, err := st.Create(s.title)
		if err != nil {
			return fmt.Errorf("failed to seed todo %d: %w", i, err)
		}
		if s.done {
			st.SetDone(todo.ID, true)
		}
	}
	return nil
}

// Addr returns the host:port address the board listens on.
func (tb *TodoBoard) Addr() string {
	return net.JoinHostPort(tb.host, strconv.Itoa(tb.port))
}

// Port returns the configured HTTP port.
func (tb *TodoBoard) Port() int {
	return tb.port
}

// Title returns the configured page title, or the default title if none was set.
func (tb *TodoBoard) Title() string {
	if tb.title == "" {
		return dashboard.DefaultTitle
	}
	return tb.title
}

// storeChangeToPublicChange converts a store change to the public API type.
func storeChangeToPublicChange(c store.Change) Change {
	return Change{
		Kind: ChangeKind(c.Kind),
		Todo: Todo{
			ID:    c.Todo.ID,
			Title: c.Todo.Title,
			Done:  c.Todo.Done,
		},
	}
}

// invokeCallbackSafe calls a change callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(Change), change Change, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("change callback panicked",
				"panic", r,
				"kind", string(change.Kind),
				"id", change.Todo.ID,
			)
		}
	}()
	cb(change)
}
