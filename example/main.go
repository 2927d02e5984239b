package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/todoboard"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	done := 0
	tb, err := todoboard.New(
		todoboard.WithTitle("Weekend chores"),
		todoboard.WithPort(8080),
		todoboard.WithLogger(logger),
		todoboard.WithTodo("Buy milk", false),
		todoboard.WithTodo("Water plants", true),
		todoboard.WithTodo("Fix the <blink> tag on the fridge note", false),
		todoboard.WithChangeCallback(func(c todoboard.Change) {
			// callbacks run on a single goroutine, so no locking needed here
			switch {
			case c.Kind == todoboard.ChangeUpdated && c.Todo.Done:
				done++
				fmt.Printf("  ✓ %s (%d checked off this session)\n", c.Todo.Title, done)
			case c.Kind == todoboard.ChangeCreated:
				fmt.Printf("  + %s\n", c.Todo.Title)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create todoboard", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   TodoBoard Demo                                      ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://127.0.0.1:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   • 3 seeded todos, 1 already done                    ║")
	fmt.Println("  ║   • changes are echoed below                          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tb.Start(ctx); err != nil {
		slog.Error("todoboard error", "error", err)
		os.Exit(1)
	}
}
