package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/wiki-outline/internal/outline"
	"github.com/dtnitsch/wiki-outline/internal/serve"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "wiki-outline",
		Usage:  "Markdown outlines of Wikipedia country articles",
		Flags:  serve.Flags(),
		Action: serve.ServeAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the outline HTTP API (default)",
				Flags:  serve.Flags(),
				Action: serve.ServeAction,
			},
			{
				Name:      "outline",
				Usage:     "Print the outline for one country",
				ArgsUsage: "<country>",
				Flags:     outline.Flags(),
				Action:    outline.OutlineAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
