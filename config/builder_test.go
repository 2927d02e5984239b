package config

import (
	"testing"
	"time"

	"github.com/jpalmerr/todoboard"
)

func TestBuildOptions(t *testing.T) {
	cfg := &Config{
		Title:        "Chores",
		Host:         "127.0.0.1",
		Port:         4100,
		ReadTimeout:  Duration(time.Second),
		WriteTimeout: Duration(2 * time.Second),
		Todos: []TodoConfig{
			{Title: "Buy milk"},
			{Title: "Water plants", Done: true},
		},
	}

	tb, err := todoboard.New(BuildOptions(cfg)...)
	if err != nil {
		t.Fatalf("New(BuildOptions()) error = %v", err)
	}

	if tb.Addr() != "127.0.0.1:4100" {
		t.Errorf("Addr() = %q, want 127.0.0.1:4100", tb.Addr())
	}
	if tb.Title() != "Chores" {
		t.Errorf("Title() = %q, want Chores", tb.Title())
	}
}

func TestBuildOptions_DefaultsAreValid(t *testing.T) {
	if _, err := todoboard.New(BuildOptions(Default())...); err != nil {
		t.Fatalf("New(BuildOptions(Default())) error = %v", err)
	}
}

func TestBuildOptions_OmitsEmptyTitle(t *testing.T) {
	cfg := Default()

	tb, err := todoboard.New(BuildOptions(cfg)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tb.Title() != "Get things done" {
		t.Errorf("Title() = %q, want default title", tb.Title())
	}
}
