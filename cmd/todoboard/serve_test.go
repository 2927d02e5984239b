package main

import (
	"testing"

	"github.com/spf13/cobra"
)

// newServeFlags returns a fresh command mirroring serve's flags, so tests
// do not share flag state through the package-level serveCmd.
func newServeFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().String("host", "", "")
	cmd.Flags().IntP("port", "p", 0, "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return cmd
}

func TestLoadServeConfig_Defaults(t *testing.T) {
	cfg, err := loadServeConfig(newServeFlags(t))
	if err != nil {
		t.Fatalf("loadServeConfig() error = %v", err)
	}
	if got := cfg.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:3000")
	}
	if len(cfg.Todos) != 0 {
		t.Errorf("len(Todos) = %d, want 0", len(cfg.Todos))
	}
}

func TestLoadServeConfig_FlagsOverrideFile(t *testing.T) {
	configPath := writeConfig(t, "board.yaml", `
host: 0.0.0.0
port: 8080
todos:
  - title: Buy milk
`)

	cfg, err := loadServeConfig(newServeFlags(t, "-c", configPath, "--port", "9090"))
	if err != nil {
		t.Fatalf("loadServeConfig() error = %v", err)
	}
	if got := cfg.Addr(); got != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:9090")
	}
	if len(cfg.Todos) != 1 {
		t.Errorf("len(Todos) = %d, want 1", len(cfg.Todos))
	}
}

func TestLoadServeConfig_BadFile(t *testing.T) {
	configPath := writeConfig(t, "board.yaml", "port: 70000\n")

	if _, err := loadServeConfig(newServeFlags(t, "-c", configPath)); err == nil {
		t.Fatal("loadServeConfig() expected error for out-of-range port, got nil")
	}
}
