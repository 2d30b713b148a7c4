package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	chatID  = 42
	adminID = 7
	userID  = 8
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m.Text)
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeSender) last(t *testing.T) string {
	t.Helper()
	msgs := f.messages()
	if len(msgs) == 0 {
		t.Fatal("Expected a reply, got none")
	}
	return msgs[len(msgs)-1]
}

// monday starts the week the test bot lives in; its clock is pinned to that Wednesday.
var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

func newTestBot(t *testing.T) (*Bot, *fakeSender) {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.SessionSecret = "test-secret"
	cfg.TelegramUsername = "alice"
	cfg.AdminTelegramID = adminID
	cfg.TelegramAllowedUserIDs = []int64{userID}

	a, err := app.New(cfg, database.NewTestDB(t), nil)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	if _, err := a.SeedCatalog(ctx, ""); err != nil {
		t.Fatal(err)
	}

	fake := &fakeSender{}
	b := newBot(fake, a)
	b.now = func() time.Time { return monday.AddDate(0, 0, 2) }
	return b, fake
}

// planWeek creates alice with pasta for lunch and a salad for dinner on Monday.
func planWeek(t *testing.T, b *Bot) {
	t.Helper()
	ctx := context.Background()
	a := b.app

	user, err := a.CreateUser(ctx, "alice", "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	pasta, err := a.Catalog.FindIngredient(ctx, "pasta")
	if err != nil {
		t.Fatal(err)
	}
	lettuce, err := a.Catalog.FindIngredient(ctx, "lettuce")
	if err != nil {
		t.Fatal(err)
	}
	gram, err := a.Catalog.FindUnit(ctx, "g")
	if err != nil {
		t.Fatal(err)
	}

	pastaRecipe, err := a.Recipes.Create(ctx, recipe.Recipe{Name: "Pasta", Servings: 2, Ingredients: []recipe.IngredientLine{
		{IngredientID: pasta.ID, Quantity: recipe.Float(200), UnitID: recipe.ID(gram.ID)},
	}})
	if err != nil {
		t.Fatal(err)
	}
	saladRecipe, err := a.Recipes.Create(ctx, recipe.Recipe{Name: "Salad", Servings: 1, Ingredients: []recipe.IngredientLine{
		{IngredientID: lettuce.ID, Quantity: recipe.Float(100), UnitID: recipe.ID(gram.ID)},
	}})
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range []planner.PlannedMeal{
		{UserID: user.ID, WeekStart: monday, Day: planner.Monday, Slot: planner.Lunch, RecipeID: pastaRecipe.ID, Diners: 4},
		{UserID: user.ID, WeekStart: monday, Day: planner.Monday, Slot: planner.Dinner, RecipeID: saladRecipe.ID, Diners: 2},
	} {
		if _, err := a.Plans.Add(ctx, m); err != nil {
			t.Fatal(err)
		}
	}
}

func message(from int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: from},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text, cmd, args string
	}{
		{"/list", "list", ""},
		{"/list  tomato sauce ", "list", "tomato sauce"},
		{"/LIST@planner_bot pasta", "list", "pasta"},
		{"hello", "", "hello"},
	}
	for _, tc := range tests {
		cmd, args := parseCommand(tc.text)
		if cmd != tc.cmd || args != tc.args {
			t.Errorf("parseCommand(%q) = %q, %q; want %q, %q", tc.text, cmd, args, tc.cmd, tc.args)
		}
	}
}

func TestListCommand(t *testing.T) {
	b, fake := newTestBot(t)
	planWeek(t, b)
	ctx := context.Background()

	b.processMessage(ctx, message(userID, "/list"))
	got := fake.last(t)
	want := "🛒 Shopping list, week of 2026-10-12\n\nVegetables\n[ ] lettuce: 200 g\n\nPasta, rice & grains\n[ ] pasta: 400 g\n"
	if got != want {
		t.Errorf("Unexpected list:\n%s\nwant:\n%s", got, want)
	}

	b.processMessage(ctx, message(userID, "/list LETT"))
	got = fake.last(t)
	if !strings.Contains(got, "lettuce: 200 g") || strings.Contains(got, "pasta") {
		t.Errorf("Expected only lettuce after filtering, got:\n%s", got)
	}

	b.processMessage(ctx, message(userID, "/list caviar"))
	if got := fake.last(t); !strings.Contains(got, `Nothing matches "caviar".`) {
		t.Errorf("Expected a no-match reply, got:\n%s", got)
	}

	b.processMessage(ctx, message(userID, "/next"))
	if got := fake.last(t); !strings.Contains(got, "week of 2026-10-19") || !strings.Contains(got, "Nothing to buy") {
		t.Errorf("Expected an empty list for next week, got:\n%s", got)
	}
}

func TestCheckCommand(t *testing.T) {
	b, fake := newTestBot(t)
	planWeek(t, b)
	ctx := context.Background()

	b.processMessage(ctx, message(userID, "/check Lettuce"))
	if got := fake.last(t); got != "[x] lettuce: 200 g" {
		t.Errorf("Unexpected check reply: %q", got)
	}

	b.processMessage(ctx, message(userID, "/list"))
	if got := fake.last(t); !strings.Contains(got, "[x] lettuce: 200 g") || !strings.Contains(got, "[ ] pasta: 400 g") {
		t.Errorf("Expected lettuce checked in the list, got:\n%s", got)
	}

	b.processMessage(ctx, message(userID, "/check lettuce"))
	if got := fake.last(t); got != "[ ] lettuce: 200 g" {
		t.Errorf("Expected lettuce unchecked again, got %q", got)
	}

	b.processMessage(ctx, message(userID, "/check caviar"))
	if got := fake.last(t); got != `"caviar" is not on this week's list.` {
		t.Errorf("Unexpected reply: %q", got)
	}
}

func TestPlanCommand(t *testing.T) {
	b, fake := newTestBot(t)
	planWeek(t, b)

	b.processMessage(context.Background(), message(userID, "/plan"))
	want := "📅 Meal plan, week of 2026-10-12\n\nMonday\n• lunch: Pasta (4 diners)\n• dinner: Salad (2 diners)\n"
	if got := fake.last(t); got != want {
		t.Errorf("Unexpected plan:\n%s\nwant:\n%s", got, want)
	}

	b.processMessage(context.Background(), message(userID, "/plan soon"))
	if got := fake.last(t); got != "Usage: /plan [YYYY-MM-DD]" {
		t.Errorf("Expected usage, got %q", got)
	}
}

func TestMissingPlannerAccount(t *testing.T) {
	b, fake := newTestBot(t)

	b.processMessage(context.Background(), message(userID, "/list"))
	if got := fake.last(t); !strings.HasPrefix(got, "❌ Error loading the planner account") {
		t.Errorf("Expected an account error, got %q", got)
	}
}

func TestMetricsAdminOnly(t *testing.T) {
	b, fake := newTestBot(t)
	ctx := context.Background()

	b.processMessage(ctx, message(userID, "/metrics"))
	if got := fake.last(t); got != "⛔ Access denied: admin only." {
		t.Errorf("Expected access denied, got %q", got)
	}

	err := b.app.Metrics.Record(ctx, metrics.ExecutionMetric{AgentName: "clipper", Model: "m", PromptTokens: 10, CompletionTokens: 5})
	if err != nil {
		t.Fatal(err)
	}
	b.processMessage(ctx, message(adminID, "/metrics"))
	got := fake.last(t)
	if !strings.Contains(got, "15 tokens (1 execs)") || !strings.Contains(got, "Goroutines:") {
		t.Errorf("Unexpected metrics report:\n%s", got)
	}
}

func TestClipWithoutProvider(t *testing.T) {
	b, fake := newTestBot(t)

	b.processMessage(context.Background(), message(userID, "https://example.com/recipe"))
	msgs := fake.messages()
	if len(msgs) != 2 || msgs[0] != "✂️ Clipping recipe..." {
		t.Fatalf("Unexpected replies: %q", msgs)
	}
	if msgs[1] != "Recipe import is not configured on this server." {
		t.Errorf("Unexpected reply: %q", msgs[1])
	}

	b.processMessage(context.Background(), message(userID, "/clip soup"))
	if got := fake.last(t); got != "Usage: /clip <url>" {
		t.Errorf("Expected usage, got %q", got)
	}
}

func TestHelpForUnknownText(t *testing.T) {
	b, fake := newTestBot(t)

	b.processMessage(context.Background(), message(userID, "what's for dinner?"))
	if got := fake.last(t); got != helpText {
		t.Errorf("Expected help text, got %q", got)
	}
}

func TestWebhook(t *testing.T) {
	b, fake := newTestBot(t)
	planWeek(t, b)
	srv := httptest.NewServer(b.Handler())
	defer srv.Close()

	post := func(from int64, text string) int {
		t.Helper()
		body := `{"update_id":1,"message":{"message_id":1,"date":0,"from":{"id":` +
			strconv.FormatInt(from, 10) + `,"is_bot":false,"first_name":"x"},"chat":{"id":42,"type":"private"},"text":"` + text + `"}}`
		resp, err := http.Post(srv.URL+"/webhook", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if code := post(999, "/list"); code != http.StatusOK {
		t.Errorf("Expected 200 for a stranger, got %d", code)
	}
	b.Wait()
	if msgs := fake.messages(); len(msgs) != 0 {
		t.Errorf("Expected strangers to be ignored, got %q", msgs)
	}

	post(userID, "/list")
	b.Wait()
	if got := fake.last(t); !strings.Contains(got, "pasta: 400 g") {
		t.Errorf("Expected the list over the webhook, got:\n%s", got)
	}

	resp, err := http.Post(srv.URL+"/webhook", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for a malformed update, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected healthy, got %d", resp.StatusCode)
	}
}

