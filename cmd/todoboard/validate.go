package main

import (
	"fmt"

	"github.com/jpalmerr/todoboard/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a TodoBoard configuration file without starting the server.

This command parses the YAML or TOML, expands environment variables, and
validates all fields. It's useful for CI/CD pipelines or pre-deployment
checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  todoboard validate -c board.yaml
  todoboard validate --config /etc/todoboard/board.toml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	done := 0
	for _, td := range cfg.Todos {
		if td.Done {
			done++
		}
	}

	title := cfg.Title
	if title == "" {
		title = "(default)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Format:        %s\n", config.FormatFromPath(configFile))
	fmt.Fprintf(out, "  Title:         %s\n", title)
	fmt.Fprintf(out, "  Address:       %s\n", cfg.Addr())
	fmt.Fprintf(out, "  Timeouts:      read %s, write %s\n", cfg.ReadTimeout.Duration(), cfg.WriteTimeout.Duration())
	fmt.Fprintf(out, "  Log level:     %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  Seed todos:    %d (%d done)\n", len(cfg.Todos), done)

	return nil
}
