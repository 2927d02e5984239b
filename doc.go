// Package todoboard provides a minimal, embeddable, server-rendered todo list.
//
// TodoBoard keeps todos in process memory and serves them through a small
// HTTP surface designed for progressive enhancement: plain HTML forms that
// htmx upgrades to partial-page swaps. Every mutation responds with a full
// re-render of the list fragment, so the client only ever replaces one
// element.
//
// # Quick Start
//
//	tb, _ := todoboard.New(todoboard.WithPort(3000))
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	tb.Start(ctx) // blocks until context is cancelled
//
// # HTTP Surface
//
//	GET  /        full HTML page
//	GET  /todos   JSON array of {id, title, done} in creation order
//	POST /create  form field title (required); responds with the list fragment
//	POST /update  form fields id (required) and done ("on" = true); responds
//	              with the list fragment, even if no todo has that id
//
// Missing required fields yield 400; unknown paths yield 404.
//
// # Configuration
//
// TodoBoard uses the functional options pattern for configuration:
//
//	tb, err := todoboard.New(
//	    todoboard.WithTitle("Chores"),
//	    todoboard.WithHost("127.0.0.1"),
//	    todoboard.WithPort(8080),
//	    todoboard.WithTodo("Buy milk", false),
//	    todoboard.WithChangeCallback(func(c todoboard.Change) { ... }),
//	)
//
// # Architecture
//
// TodoBoard consists of several internal packages (under internal/):
//
//   - internal/store: Ordered in-memory todo storage with change pub/sub
//   - internal/server: HTTP routing, form parsing and rendering
//   - internal/client: HTTP client for a running board, used by the CLI
//   - dashboard: Embedded HTML templates
//
// State is not persisted: every [TodoBoard.Start] begins from the seeds.
package todoboard
