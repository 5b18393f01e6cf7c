package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/wiki-outline/models"
	"github.com/dtnitsch/wiki-outline/pkg/fetcher"
	"github.com/dtnitsch/wiki-outline/pkg/logging"
	"github.com/dtnitsch/wiki-outline/pkg/outline"
	"github.com/urfave/cli/v2"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Flags for the one-shot outline command.
func Flags() []cli.Flag {
	defaults := models.DefaultServerConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "markdown", Usage: "markdown, json, yaml or html"},
		&cli.StringFlag{Name: "scope", Value: string(models.ScopeDocument), Usage: "document or article"},
		&cli.StringFlag{Name: "upstream", Value: defaults.UpstreamBaseURL, Usage: "article base URL"},
		&cli.DurationFlag{Name: "timeout", Value: defaults.FetchTimeout, Usage: "upstream fetch timeout"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every stage to stderr"},
	}
}

// OutlineAction fetches one country outline and prints it to stdout.
// Exit code 1 means bad input, 2 means the upstream or the page failed.
func OutlineAction(c *cli.Context) error {
	timeout := c.Duration("timeout")
	if timeout <= 0 {
		return cli.Exit(fmt.Sprintf("timeout must be positive, got %s", timeout), 1)
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelError)
	if c.Bool("verbose") {
		level.Set(slog.LevelDebug)
	}
	logger := logging.New(os.Stderr, logging.Options{Level: level})

	svc := outline.NewService(c.String("upstream"), fetcher.NewFetcher(timeout), logger)
	req := models.OutlineRequest{
		Country: strings.Join(c.Args().Slice(), " "),
		Scope:   models.Scope(c.String("scope")),
	}

	return Run(c.Context, svc, req, c.String("format"), c.App.Writer)
}

// Run executes a single lookup and writes it in the requested format.
func Run(ctx context.Context, svc *outline.Service, req models.OutlineRequest, format string, w io.Writer) error {
	if _, err := render(&models.OutlineResponse{}, format); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	resp, err := svc.GetOutline(ctx, req)
	if err != nil {
		code := 2
		if outline.IsValidationError(err) {
			code = 1
		}
		return cli.Exit(fmt.Sprintf("Error (%d): %s", outline.StatusCode(err), outline.Detail(err)), code)
	}

	out, err := render(resp, format)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	_, err = w.Write(out)
	return err
}

func render(resp *models.OutlineResponse, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "markdown", "md":
		return []byte(resp.Outline), nil
	case "json":
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return data, nil
	case "html":
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(resp.Outline), &buf); err != nil {
			return nil, fmt.Errorf("failed to render outline: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q (want markdown, json, yaml or html)", format)
}
