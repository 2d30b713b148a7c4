package main

import "github.com/urfave/cli/v3"

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (defaults to PORT or 8080)",
			},
		},
		Action: r.Serve,
	}
}

func shoppingListCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "shopping-list",
		Aliases: []string{"list"},
		Usage:   "Print the shopping list of a week",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Planner account",
				Sources: cli.EnvVars("MEAL_PLANNER_USER"),
			},
			&cli.StringFlag{
				Name:  "week",
				Usage: "Any date of the week, YYYY-MM-DD (defaults to this week)",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"q"},
				Usage:   "Only show ingredients whose name contains this text",
			},
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Read the list from a running API instead of the local database",
				Sources: cli.EnvVars("MEAL_PLANNER_SERVER"),
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "Password for --server",
				Sources: cli.EnvVars("MEAL_PLANNER_PASSWORD"),
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.ShoppingList,
	}
}

func seedCatalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed-catalog",
		Usage: "Load units and ingredients into the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "TOML seed file (defaults to the built-in catalog)",
			},
		},
		Action: r.SeedCatalog,
	}
}

func importRecipeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import-recipe",
		Usage:     "Clip recipes from web pages into the database",
		ArgsUsage: "<url> [url...]",
		Action:    r.ImportRecipes,
	}
}

func createUserCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "create-user",
		Usage: "Register a planner account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "Account name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Usage:    "Account password",
				Sources:  cli.EnvVars("MEAL_PLANNER_PASSWORD"),
				Required: true,
			},
		},
		Action: r.CreateUser,
	}
}

func metricsCleanupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "metrics-cleanup",
		Usage: "Remove old LLM usage records",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "days",
				Usage: "Keep records for the last N days",
				Value: 30,
			},
		},
		Action: r.MetricsCleanup,
	}
}
