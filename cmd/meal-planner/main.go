package main

import (
	"context"
	"os"

	"meal-planner/internal/logging"

	"github.com/urfave/cli/v3"
)

func main() {
	logger := logging.New("cli")
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:    "meal-planner",
		Usage:   "Plan the week's meals and build the shopping list",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, logging.SetLevel(cmd.String("log-level"))
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("application error", "err", err)
	}
}
