package serve

import (
	"fmt"

	"github.com/dtnitsch/wiki-outline/models"
	"github.com/urfave/cli/v2"
)

// Overrides holds the flags the user set explicitly. They win over the config
// file, both at startup and on every reload.
type Overrides func(*models.ServerConfig)

// FlagOverrides captures the explicitly set flags of c. Values are read once,
// so the result stays valid after the action returns.
func FlagOverrides(c *cli.Context) Overrides {
	set := map[string]bool{}
	for _, name := range []string{"host", "port", "upstream", "timeout", "log-level", "log-format", "watch"} {
		set[name] = c.IsSet(name)
	}
	host, port, upstream := c.String("host"), c.Int("port"), c.String("upstream")
	timeout := c.Duration("timeout")
	level, format := c.String("log-level"), c.String("log-format")
	watch, quiet := c.Bool("watch"), c.Bool("quiet")

	return func(cfg *models.ServerConfig) {
		if set["host"] {
			cfg.Host = host
		}
		if set["port"] {
			cfg.Port = port
		}
		if set["upstream"] {
			cfg.UpstreamBaseURL = upstream
		}
		if set["timeout"] {
			cfg.FetchTimeout = timeout
		}
		if set["log-level"] {
			cfg.LogLevel = level
		}
		if set["log-format"] {
			cfg.LogFormat = format
		}
		if set["watch"] {
			cfg.Watch = watch
		}
		if quiet {
			cfg.LogLevel = "error"
		}
	}
}

// Apply layers the overrides on cfg and validates the result.
func (o Overrides) Apply(cfg models.ServerConfig) (models.ServerConfig, error) {
	if o != nil {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Loader reads the config file at path (defaults when path is empty) and
// applies overrides on top.
func Loader(path string, overrides Overrides) func() (models.ServerConfig, error) {
	return func() (models.ServerConfig, error) {
		cfg := models.DefaultServerConfig()
		if path != "" {
			loaded, err := models.LoadConfig(path)
			if err != nil {
				return cfg, err
			}
			cfg = loaded
		}
		return overrides.Apply(cfg)
	}
}

// ResolveConfig layers the config file (if any) under flags the user set
// explicitly. Unset flags never override file values.
func ResolveConfig(c *cli.Context) (models.ServerConfig, error) {
	return Loader(c.String("config"), FlagOverrides(c))()
}
