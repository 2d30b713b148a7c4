package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"meal-planner/internal/config"
	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/logging"

	"github.com/urfave/cli/v3"
)

// newTestRunner returns a function that runs the CLI against a database in the test's temp
// dir. Every call builds a fresh command tree so flag values do not leak between runs.
func newTestRunner(t *testing.T) (func(args ...string) error, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.SessionSecret = "test-secret"
	cfg.DatabasePath = filepath.Join(t.TempDir(), "planner.db")

	out := &bytes.Buffer{}
	r := NewRunner(RunnerOpts{
		LoadConfig: func() (*config.Config, error) { c := *cfg; return &c, nil },
		Logger:     logging.Discard(),
		Output:     out,
	})
	run := func(args ...string) error {
		cmd := &cli.Command{Name: "meal-planner", Commands: r.register()}
		return cmd.Run(context.Background(), append([]string{"meal-planner"}, args...))
	}
	return run, out
}

func TestCommandsAgainstLocalDatabase(t *testing.T) {
	run, out := newTestRunner(t)

	if err := run("seed-catalog"); err != nil {
		t.Fatalf("seed-catalog failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Seeded ") {
		t.Errorf("Unexpected seed output: %q", out.String())
	}

	out.Reset()
	if err := run("create-user", "--username", "alice", "--password", "correct horse"); err != nil {
		t.Fatalf("create-user failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Created user alice") {
		t.Errorf("Unexpected create-user output: %q", out.String())
	}

	out.Reset()
	if err := run("shopping-list", "--user", "alice", "--week", "2026-10-14"); err != nil {
		t.Fatalf("shopping-list failed: %v", err)
	}
	if got := out.String(); got != "Shopping list, week of 2026-10-12\n\nNothing to buy.\n" {
		t.Errorf("Unexpected list: %q", got)
	}

	out.Reset()
	if err := run("list", "--user", "alice", "--week", "2026-10-14", "--json"); err != nil {
		t.Fatalf("shopping-list --json failed: %v", err)
	}
	var resp dto.ShoppingListResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if resp.WeekStart != "2026-10-12" || len(resp.Categories) != 0 {
		t.Errorf("Unexpected JSON list: %+v", resp)
	}

	if err := run("shopping-list", "--user", "bob"); err == nil {
		t.Error("Expected an error for an unknown user")
	}

	out.Reset()
	if err := run("metrics-cleanup", "--days", "7"); err != nil {
		t.Fatalf("metrics-cleanup failed: %v", err)
	}
	if got := out.String(); got != "Removed 0 old metric records.\n" {
		t.Errorf("Unexpected cleanup output: %q", got)
	}
}

func TestImportRecipeNeedsURL(t *testing.T) {
	run, _ := newTestRunner(t)
	if err := run("import-recipe"); err == nil || !strings.Contains(err.Error(), "URL is required") {
		t.Errorf("Expected a missing URL error, got %v", err)
	}
}

func TestRenderShoppingList(t *testing.T) {
	resp := &dto.ShoppingListResponse{
		WeekStart: "2026-10-12",
		Skipped:   1,
		Categories: []dto.ShoppingCategory{
			{Key: "produce", Label: "Vegetables", Items: []dto.ShoppingItem{
				{Name: "lettuce", Quantity: "200", UnitLabel: "g", Checked: true},
				{Name: "salt"},
			}},
			{Key: "grains", Label: "Pasta, rice & grains", Items: []dto.ShoppingItem{
				{Name: "eggs", Quantity: "3"},
			}},
		},
	}

	want := "Shopping list, week of 2026-10-12\n\n" +
		"Vegetables\n[x] lettuce: 200 g\n[ ] salt\n\n" +
		"Pasta, rice & grains\n[ ] eggs: 3\n" +
		"\n1 planned meal(s) skipped: their recipe no longer exists.\n"
	if got := renderShoppingList(resp); got != want {
		t.Errorf("renderShoppingList() =\n%s\nwant:\n%s", got, want)
	}

	empty := &dto.ShoppingListResponse{WeekStart: "2026-10-12", Query: "kale"}
	if got := renderShoppingList(empty); !strings.Contains(got, `Nothing matches "kale".`) {
		t.Errorf("Expected a no-match line, got %q", got)
	}
}
