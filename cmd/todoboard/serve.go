package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/todoboard"
	"github.com/jpalmerr/todoboard/config"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// serveCmd starts the TodoBoard server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the todo board server",
	Long: `Start the TodoBoard server.

The server will:
  - Load configuration from the given YAML or TOML file, if any
  - Create the configured seed todos
  - Serve the board on the configured host and port

State is kept in memory only and is lost when the server stops.
The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  todoboard serve
  todoboard serve -c board.yaml
  todoboard serve --config board.toml --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (.yaml, .yml or .toml)")
	serveCmd.Flags().String("host", "", "override the configured bind host")
	serveCmd.Flags().IntP("port", "p", 0, "override the configured port")
}

// loadServeConfig loads the config file if given and applies flag overrides.
func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Level())
	logger.Info("config loaded",
		"addr", cfg.Addr(),
		"todos", len(cfg.Todos),
		"log_level", cfg.LogLevel,
	)

	opts := append(config.BuildOptions(cfg), todoboard.WithLogger(logger))
	tb, err := todoboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create TodoBoard: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- tb.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
