package config

import (
	"github.com/jpalmerr/todoboard"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The logger is not part of the file configuration; callers add
// [todoboard.WithLogger] themselves, typically using [Config.Level].
func BuildOptions(cfg *Config) []todoboard.Option {
	opts := []todoboard.Option{
		todoboard.WithHost(cfg.Host),
		todoboard.WithPort(cfg.Port),
		todoboard.WithReadTimeout(cfg.ReadTimeout.Duration()),
		todoboard.WithWriteTimeout(cfg.WriteTimeout.Duration()),
	}

	if cfg.Title != "" {
		opts = append(opts, todoboard.WithTitle(cfg.Title))
	}

	for _, td := range cfg.Todos {
		opts = append(opts, todoboard.WithTodo(td.Title, td.Done))
	}

	return opts
}
