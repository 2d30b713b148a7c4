package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/client"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/llm"
	"meal-planner/internal/planner"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds the dependencies of the CLI commands and provides one method per command.
type Runner struct {
	loadConfig func() (*config.Config, error)
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	LoadConfig func() (*config.Config, error)
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a Runner, filling unset options with their defaults.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.NewFromEnv
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{
		loadConfig: opts.LoadConfig,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, shoppingListCommand, seedCatalogCommand, importRecipeCommand, createUserCommand, metricsCleanupCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// openApp loads the configuration, opens the database and builds the App. withLLM also
// connects the configured text generator.
func (r *Runner) openApp(ctx context.Context, withLLM bool) (*app.App, func(), error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var textGen llm.TextGenerator
	if withLLM {
		textGen, err = llm.NewTextGenerator(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cleanup := func() {
		if c, ok := textGen.(llm.Closer); ok {
			c.Close()
		}
		db.Close()
	}

	a, err := app.New(cfg, db, textGen)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

// Serve runs the HTTP API until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	a, cleanup, err := r.openApp(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := a.NewServer()
	if err != nil {
		return err
	}

	port := cmd.String("port")
	if port == "" {
		port = a.Config().Port
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(":" + port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	r.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	r.logger.Info("server exited")
	return nil
}

// ShoppingList prints a week's shopping list, read from the local database or from a
// running API when --server is set.
func (r *Runner) ShoppingList(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	if username == "" {
		return errors.New("--user is required")
	}

	var (
		resp *dto.ShoppingListResponse
		err  error
	)
	if server := cmd.String("server"); server != "" {
		resp, err = r.remoteShoppingList(ctx, server, username, cmd.String("password"), cmd.String("week"), cmd.String("filter"))
	} else {
		resp, err = r.localShoppingList(ctx, username, cmd.String("week"), cmd.String("filter"))
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp)
	}
	return r.writePlain("%s", renderShoppingList(resp))
}

func (r *Runner) localShoppingList(ctx context.Context, username, weekArg, filter string) (*dto.ShoppingListResponse, error) {
	a, cleanup, err := r.openApp(ctx, false)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	week, err := planner.ParseWeek(weekArg, time.Now())
	if err != nil {
		return nil, err
	}
	user, err := a.Auth.Lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	list, groups, err := a.ShoppingList(ctx, user.ID, week, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.NewShoppingList(list, groups, filter)
	return &resp, nil
}

func (r *Runner) remoteShoppingList(ctx context.Context, server, username, password, week, filter string) (*dto.ShoppingListResponse, error) {
	if password == "" {
		return nil, errors.New("--password (or MEAL_PLANNER_PASSWORD) is required with --server")
	}
	session, err := client.Login(ctx, server, username, password, client.Options{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(ctx); err != nil {
			r.logger.Warn("failed to log out", "err", err)
		}
	}()
	return session.ShoppingList(ctx, week, filter)
}

// renderShoppingList formats a list response the way shopping.Render formats groups, with a
// heading and a note about skipped meals.
func renderShoppingList(resp *dto.ShoppingListResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Shopping list, week of %s\n\n", resp.WeekStart)

	if len(resp.Categories) == 0 {
		if resp.Query != "" {
			fmt.Fprintf(&sb, "Nothing matches %q.\n", resp.Query)
		} else {
			sb.WriteString("Nothing to buy.\n")
		}
	}
	for i, cat := range resp.Categories {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cat.Label + "\n")
		for _, item := range cat.Items {
			mark := "[ ]"
			if item.Checked {
				mark = "[x]"
			}
			line := item.Name
			if q := strings.TrimSpace(item.Quantity + " " + item.UnitLabel); q != "" {
				line += ": " + q
			}
			fmt.Fprintf(&sb, "%s %s\n", mark, line)
		}
	}

	if resp.Skipped > 0 {
		fmt.Fprintf(&sb, "\n%d planned meal(s) skipped: their recipe no longer exists.\n", resp.Skipped)
	}
	return sb.String()
}

// SeedCatalog loads the built-in catalog, or --file.
func (r *Runner) SeedCatalog(ctx context.Context, cmd *cli.Command) error {
	a, cleanup, err := r.openApp(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := a.SeedCatalog(ctx, cmd.String("file"))
	if err != nil {
		return err
	}
	return r.writePlain("Seeded %d units and %d ingredients.\n", res.Units, res.Ingredients)
}

// ImportRecipes clips every URL argument. Failures are reported after the successes.
func (r *Runner) ImportRecipes(ctx context.Context, cmd *cli.Command) error {
	urls := cmd.Args().Slice()
	if len(urls) == 0 {
		return errors.New("at least one recipe URL is required")
	}

	a, cleanup, err := r.openApp(ctx, true)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := a.ImportRecipes(ctx, urls)
	for _, res := range results {
		r.writePlain("Imported %q (id %d, serves %d)\n", res.Recipe.Name, res.Recipe.ID, res.Recipe.Servings)
		if len(res.CreatedIngredients) > 0 {
			r.writePlain("  new ingredients: %s\n", strings.Join(res.CreatedIngredients, ", "))
		}
		if len(res.CreatedUnits) > 0 {
			r.writePlain("  new units: %s\n", strings.Join(res.CreatedUnits, ", "))
		}
	}
	return err
}

// CreateUser registers a planner account.
func (r *Runner) CreateUser(ctx context.Context, cmd *cli.Command) error {
	a, cleanup, err := r.openApp(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := a.CreateUser(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}
	return r.writePlain("Created user %s (id %d).\n", user.Username, user.ID)
}

// MetricsCleanup removes LLM usage records older than --days.
func (r *Runner) MetricsCleanup(ctx context.Context, cmd *cli.Command) error {
	days := int(cmd.Int("days"))
	if days < 0 {
		return fmt.Errorf("--days must not be negative, got %d", days)
	}

	a, cleanup, err := r.openApp(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := a.CleanupMetrics(ctx, days)
	if err != nil {
		return err
	}
	return r.writePlain("Removed %d old metric records.\n", n)
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
