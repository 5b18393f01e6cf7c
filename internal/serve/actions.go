// Package serve implements the serve command.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtnitsch/wiki-outline/internal/server"
	"github.com/dtnitsch/wiki-outline/models"
	"github.com/dtnitsch/wiki-outline/pkg/fetcher"
	"github.com/dtnitsch/wiki-outline/pkg/logging"
	"github.com/dtnitsch/wiki-outline/pkg/outline"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 5 * time.Second

// Flags are shared by the serve command and the app's default action.
func Flags() []cli.Flag {
	defaults := models.DefaultServerConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
		&cli.StringFlag{Name: "host", Value: defaults.Host, Usage: "interface to bind"},
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: defaults.Port, Usage: "port to listen on"},
		&cli.StringFlag{Name: "upstream", Value: defaults.UpstreamBaseURL, Usage: "article base URL"},
		&cli.DurationFlag{Name: "timeout", Value: defaults.FetchTimeout, Usage: "upstream fetch timeout"},
		&cli.StringFlag{Name: "log-level", Value: defaults.LogLevel, Usage: "debug, info, warn or error"},
		&cli.StringFlag{Name: "log-format", Value: defaults.LogFormat, Usage: "text or json"},
		&cli.BoolFlag{Name: "watch", Value: defaults.Watch, Usage: "reload the config file when it changes"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
	}
}

func ServeAction(c *cli.Context) error {
	load := Loader(c.String("config"), FlagOverrides(c))
	cfg, err := load()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	level := new(slog.LevelVar)
	parsed, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	level.Set(parsed)
	logger := logging.New(os.Stderr, logging.Options{Level: level, Format: cfg.LogFormat})

	f := fetcher.NewFetcher(cfg.FetchTimeout)
	svc := outline.NewService(cfg.UpstreamBaseURL, f, logger)
	srv := server.New(svc, logger)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if path := c.String("config"); path != "" && cfg.Watch {
		r := &reloader{last: cfg, level: level, fetcher: f, logger: logger}
		watcher, err := NewConfigWatcher(path, logger, load, r.apply)
		if err != nil {
			logger.Warn("Config watching disabled", "error", err)
		} else {
			go func() { _ = watcher.Run(ctx) }()
			logger.Debug("Watching config for changes", "path", path)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.Addr()) }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped", "error", err)
			return cli.Exit(fmt.Sprintf("server error: %v", err), 2)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return cli.Exit(fmt.Sprintf("shutdown error: %v", err), 2)
	}
	return <-errCh
}

// reloader applies reloaded settings. Only the log level and fetch timeout
// change at runtime; listener, upstream and log format changes need a restart.
type reloader struct {
	last    models.ServerConfig
	level   *slog.LevelVar
	fetcher *fetcher.Fetcher
	logger  *slog.Logger
}

func (r *reloader) apply(next models.ServerConfig) {
	if parsed, err := logging.ParseLevel(next.LogLevel); err == nil {
		r.level.Set(parsed)
	}
	r.fetcher.SetTimeout(next.FetchTimeout)

	if next.Addr() != r.last.Addr() || next.UpstreamBaseURL != r.last.UpstreamBaseURL || next.LogFormat != r.last.LogFormat {
		r.logger.Warn("Listener, upstream and log format changes take effect after restart",
			"addr", next.Addr(), "upstream", next.UpstreamBaseURL, "log_format", next.LogFormat)
	}
	r.last = next
	r.logger.Info("Settings applied", "log_level", next.LogLevel, "fetch_timeout", next.FetchTimeout)
}
