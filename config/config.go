// Package config provides file-based configuration for TodoBoard.
//
// This package enables running TodoBoard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
// YAML and TOML are both accepted; [Load] picks the format from the file
// extension.
//
// Example configuration:
//
//	title: Get things done
//	host: 127.0.0.1
//	port: 3000
//	read_timeout: 5s
//	write_timeout: 10s
//	log_level: info
//
//	todos:
//	  - title: Buy milk
//	  - title: Water plants
//	    done: true
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	defaultHost         = "127.0.0.1"
	defaultPort         = 3000
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultLogLevel     = "info"

	// minTimeout is the smallest accepted read or write timeout.
	minTimeout = 100 * time.Millisecond
)

// Format identifies the syntax of a configuration file.
type Format string

const (
	// FormatYAML is the default format, used for .yaml, .yml and unknown extensions.
	FormatYAML Format = "yaml"

	// FormatTOML is used for .toml files.
	FormatTOML Format = "toml"
)

// Config is the root configuration structure for TodoBoard.
//
// It maps directly to the configuration file structure.
// Use [Load], [Parse] or [ParseTOML] to create a Config.
type Config struct {
	// Title is the page title. Defaults to "Get things done" if not set.
	// Supports environment variable substitution.
	Title string `yaml:"title" toml:"title"`

	// Host is the interface to bind. Defaults to 127.0.0.1.
	// Supports environment variable substitution.
	Host string `yaml:"host" toml:"host"`

	// Port is the HTTP server port. Defaults to 3000.
	Port int `yaml:"port" toml:"port"`

	// ReadTimeout bounds reading a request. Defaults to 5s.
	ReadTimeout Duration `yaml:"read_timeout" toml:"read_timeout"`

	// WriteTimeout bounds writing a response. Defaults to 10s.
	WriteTimeout Duration `yaml:"write_timeout" toml:"write_timeout"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Todos are created, in order, every time the board starts.
	Todos []TodoConfig `yaml:"todos" toml:"todos"`
}

// TodoConfig defines a todo seeded at startup.
type TodoConfig struct {
	// Title is the todo text. Required.
	Title string `yaml:"title" toml:"title"`

	// Done marks the todo as already completed.
	Done bool `yaml:"done" toml:"done"`
}

// Duration wraps time.Duration for YAML and TOML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
// The TOML decoder uses it for string values.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Level returns the configured log level as a [slog.Level].
// Call after validation; unknown values map to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the host:port pair the board will bind.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// FormatFromPath picks the configuration format from a file extension.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses a configuration file.
//
// Files ending in .toml are parsed as TOML, everything else as YAML.
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if FormatFromPath(path) == FormatTOML {
		return ParseTOML(data)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return finish(&cfg)
}

// ParseTOML parses TOML configuration data, applies defaults and validates it.
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return finish(&cfg)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, _ := finish(&Config{})
	return cfg
}

func finish(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = Duration(defaultReadTimeout)
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = Duration(defaultWriteTimeout)
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	title, err := expandEnvVars(c.Title)
	if err != nil {
		return fmt.Errorf("title: %w", err)
	}
	c.Title = title

	host, err := expandEnvVars(c.Host)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	if strings.TrimSpace(host) == "" {
		return errors.New("host cannot be empty")
	}
	c.Host = host

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.ReadTimeout.Duration() < minTimeout {
		return fmt.Errorf("read_timeout must be at least %s, got %s", minTimeout, c.ReadTimeout.Duration())
	}
	if c.WriteTimeout.Duration() < minTimeout {
		return fmt.Errorf("write_timeout must be at least %s, got %s", minTimeout, c.WriteTimeout.Duration())
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	for i, td := range c.Todos {
		if td.Title == "" {
			return fmt.Errorf("todos[%d]: title is required", i)
		}
	}

	return nil
}
