package todoboard

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// seedTodo is a todo created when the board starts.
type seedTodo struct {
	title string
	done  bool
}

// tbConfig holds mutable state during TodoBoard construction.
type tbConfig struct {
	title           string
	host            string
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	logger          *slog.Logger
	seeds           []seedTodo
	changeCallbacks []func(Change)
}

// Option is a function that configures a [TodoBoard] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*tbConfig) error

// WithTitle sets the page title shown in the browser tab.
//
// If not specified, defaults to "Get things done".
func WithTitle(title string) Option {
	return func(cfg *tbConfig) error {
		cfg.title = title
		return nil
	}
}

// WithHost sets the interface the HTTP server binds to.
//
// Defaults to the loopback address 127.0.0.1.
//
// Returns an error if host is blank.
func WithHost(host string) Option {
	return func(cfg *tbConfig) error {
		if strings.TrimSpace(host) == "" {
			return errors.New("host cannot be empty")
		}
		cfg.host = host
		return nil
	}
}

// WithPort sets the HTTP port for the board.
//
// The board will be available at http://<host>:<port>.
// Defaults to 3000 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *tbConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithReadTimeout sets the maximum duration for reading a request.
// Defaults to 5 seconds.
//
// Returns an error if the duration is zero or negative.
func WithReadTimeout(d time.Duration) Option {
	return func(cfg *tbConfig) error {
		if d <= 0 {
			return errors.New("read timeout must be positive")
		}
		cfg.readTimeout = d
		return nil
	}
}

// WithWriteTimeout sets the maximum duration for writing a response.
// Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithWriteTimeout(d time.Duration) Option {
	return func(cfg *tbConfig) error {
		if d <= 0 {
			return errors.New("write timeout must be positive")
		}
		cfg.writeTimeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the TodoBoard instance.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *tbConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithTodo adds a todo that is created each time the board starts.
//
// Seeded todos appear in the order the options are given, before anything
// created over HTTP. They do not trigger change callbacks.
//
// Example:
//
//	tb, err := todoboard.New(
//	    todoboard.WithTodo("Buy milk", false),
//	    todoboard.WithTodo("Water plants", true),
//	)
//
// Returns an error if title is empty.
func WithTodo(title string, done bool) Option {
	return func(cfg *tbConfig) error {
		if title == "" {
			return errors.New("todo title cannot be empty")
		}
		cfg.seeds = append(cfg.seeds, seedTodo{title: title, done: done})
		return nil
	}
}

// WithChangeCallback registers a function to be called after every change.
//
// Multiple callbacks may be registered; they execute in registration order.
//
// Callbacks run asynchronously from a single goroutine and receive every
// change. They should return quickly: once 100 changes are queued behind a
// slow callback, create and update requests wait for it to catch up.
// Panics within callbacks are recovered and logged.
//
// Example:
//
//	tb, err := todoboard.New(
//	    todoboard.WithChangeCallback(func(c todoboard.Change) {
//	        if c.Kind == todoboard.ChangeUpdated && c.Todo.Done {
//	            log.Printf("done: %s", c.Todo.Title)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithChangeCallback(cb func(Change)) Option {
	return func(cfg *tbConfig) error {
		if cb == nil {
			return nil
		}
		cfg.changeCallbacks = append(cfg.changeCallbacks, cb)
		return nil
	}
}
