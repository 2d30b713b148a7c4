// Package telegram serves the shopping list, the weekly plan and the recipe importer over a
// Telegram bot webhook.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/auth"
	"meal-planner/internal/config"
	"meal-planner/internal/logging"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Commands:
/list [filter] - this week's shopping list
/next [filter] - next week's shopping list
/plan [YYYY-MM-DD] - planned meals of a week
/check <ingredient> - tick or untick an ingredient on this week's list
/clip <url> - import a recipe (or just send the link)`

// sender is the part of tgbotapi.BotAPI the bot talks to.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers chat commands for the planner account named by TelegramUsername.
type Bot struct {
	api    sender
	app    *app.App
	cfg    *config.Config
	logger *log.Logger
	now    func() time.Time

	trackers sync.Map // chat id -> *shopping.RequestTracker
	inflight sync.WaitGroup
}

// NewBot initializes the Telegram API and sets the webhook.
func NewBot(a *app.App) (*Bot, error) {
	cfg := a.Config()
	if cfg.TelegramUsername == "" {
		return nil, fmt.Errorf("TELEGRAM_USERNAME must name the planner account the bot acts for")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	b := newBot(api, a)
	b.logger.Info("authorized on account", "bot", api.Self.UserName)

	if cfg.TelegramWebhookURL != "" {
		wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook url: %w", err)
		}
		resp, err := api.Request(wh)
		if err != nil {
			return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
		}
		b.logger.Info("webhook set", "response", resp.Description)
	}
	return b, nil
}

func newBot(api sender, a *app.App) *Bot {
	return &Bot{
		api:    api,
		app:    a,
		cfg:    a.Config(),
		logger: logging.New("telegram"),
		now:    time.Now,
	}
}

// Handler returns the webhook and health endpoints.
func (b *Bot) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// Wait blocks until every message being processed has been answered.
func (b *Bot) Wait() {
	b.inflight.Wait()
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		b.logger.Error("error parsing update", "err", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !b.isAllowed(msg.From.ID) {
		b.logger.Warn("unauthorized access attempt", "user_id", msg.From.ID, "username", msg.From.UserName)
		return
	}

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		b.processMessage(ctx, msg)
	}()
}

func (b *Bot) isAllowed(userID int64) bool {
	if userID == b.cfg.AdminTelegramID && userID != 0 {
		return true
	}
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if isURL(text) {
		b.handleClip(ctx, msg.Chat.ID, text)
		return
	}

	cmd, args := parseCommand(text)
	switch cmd {
	case "list":
		b.handleList(ctx, msg.Chat.ID, b.now(), args)
	case "next":
		b.handleList(ctx, msg.Chat.ID, planner.GetNextMonday(b.now()), args)
	case "plan":
		b.handlePlan(ctx, msg.Chat.ID, args)
	case "check":
		b.handleCheck(ctx, msg.Chat.ID, args)
	case "clip":
		b.handleClip(ctx, msg.Chat.ID, args)
	case "metrics":
		if msg.From == nil || msg.From.ID != b.cfg.AdminTelegramID {
			b.reply(msg.Chat.ID, "⛔ Access denied: admin only.")
			return
		}
		b.handleMetrics(ctx, msg.Chat.ID)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

// parseCommand splits "/cmd@bot args" into its lowercased name and the trimmed arguments.
// Text that is not a command yields an empty name.
func parseCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	name, args, _ := strings.Cut(text[1:], " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(args)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// plannerUser resolves the account whose plan the bot reads and edits.
func (b *Bot) plannerUser(ctx context.Context) (*auth.User, error) {
	return b.app.Auth.Lookup(ctx, b.cfg.TelegramUsername)
}

func (b *Bot) tracker(chatID int64) *shopping.RequestTracker {
	t, _ := b.trackers.LoadOrStore(chatID, &shopping.RequestTracker{})
	return t.(*shopping.RequestTracker)
}

func (b *Bot) handleList(ctx context.Context, chatID int64, week time.Time, filter string) {
	tracker := b.tracker(chatID)
	reqID := tracker.Next()

	user, err := b.plannerUser(ctx)
	if err != nil {
		b.replyError(chatID, "loading the planner account", err)
		return
	}
	list, groups, err := b.app.ShoppingList(ctx, user.ID, week, filter)
	if err != nil {
		b.replyError(chatID, "building the shopping list", err)
		return
	}
	if !tracker.IsLatest(reqID) {
		b.logger.Debug("dropping superseded shopping list", "chat", chatID, "request", reqID)
		return
	}

	b.reply(chatID, formatList(list, groups, filter))
}

func formatList(list *shopping.List, groups []shopping.CategoryGroup, filter string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 Shopping list, week of %s\n\n", planner.WeekKey(list.WeekStart))

	switch {
	case len(groups) > 0:
		sb.WriteString(shopping.Render(groups))
	case filter != "":
		fmt.Fprintf(&sb, "Nothing matches %q.\n", filter)
	default:
		sb.WriteString("Nothing to buy. Plan some meals first.\n")
	}

	if list.Skipped > 0 {
		fmt.Fprintf(&sb, "\n⚠️ %d planned meal(s) skipped: their recipe no longer exists.\n", list.Skipped)
	}
	return sb.String()
}

func (b *Bot) handlePlan(ctx context.Context, chatID int64, arg string) {
	week, err := planner.ParseWeek(arg, b.now())
	if err != nil {
		b.reply(chatID, "Usage: /plan [YYYY-MM-DD]")
		return
	}
	user, err := b.plannerUser(ctx)
	if err != nil {
		b.replyError(chatID, "loading the planner account", err)
		return
	}

	meals, err := b.app.Plans.ListWeek(ctx, user.ID, week)
	if err != nil {
		b.replyError(chatID, "loading the plan", err)
		return
	}
	ids := make([]int64, 0, len(meals))
	for _, m := range meals {
		ids = append(ids, m.RecipeID)
	}
	recipes, err := b.app.Recipes.GetByIDs(ctx, ids)
	if err != nil {
		b.replyError(chatID, "loading recipes", err)
		return
	}

	b.reply(chatID, formatPlan(week, meals, recipe.Index(recipes)))
}

func formatPlan(week time.Time, meals []planner.PlannedMeal, recipes map[int64]recipe.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Meal plan, week of %s\n", planner.WeekKey(week))
	if len(meals) == 0 {
		sb.WriteString("\nNo meals planned.\n")
		return sb.String()
	}

	lastDay := planner.Day(-1)
	for _, m := range meals {
		if m.Day != lastDay {
			fmt.Fprintf(&sb, "\n%s\n", m.Day)
			lastDay = m.Day
		}
		name := "(deleted recipe)"
		if r, ok := recipes[m.RecipeID]; ok {
			name = r.Name
		}
		fmt.Fprintf(&sb, "• %s: %s (%d diners)\n", m.Slot, name, m.Diners)
	}
	return sb.String()
}

func (b *Bot) handleCheck(ctx context.Context, chatID int64, name string) {
	if name == "" {
		b.reply(chatID, "Usage: /check <ingredient>")
		return
	}
	user, err := b.plannerUser(ctx)
	if err != nil {
		b.replyError(chatID, "loading the planner account", err)
		return
	}
	list, _, err := b.app.ShoppingList(ctx, user.ID, b.now(), "")
	if err != nil {
		b.replyError(chatID, "building the shopping list", err)
		return
	}

	var lines []string
	for _, g := range list.Groups {
		for _, e := range g.Entries {
			if !strings.EqualFold(e.IngredientName, name) {
				continue
			}
			checked, err := b.app.Checked.Toggle(ctx, user.ID, list.WeekStart, e.Key, e.Category)
			if err != nil {
				b.replyError(chatID, "updating the shopping list", err)
				return
			}
			mark := "[ ]"
			if checked {
				mark = "[x]"
			}
			lines = append(lines, mark+" "+shopping.FormatEntry(e))
		}
	}

	if len(lines) == 0 {
		b.reply(chatID, fmt.Sprintf("%q is not on this week's list.", name))
		return
	}
	b.reply(chatID, strings.Join(lines, "\n"))
}

func (b *Bot) handleClip(ctx context.Context, chatID int64, url string) {
	if !isURL(url) {
		b.reply(chatID, "Usage: /clip <url>")
		return
	}
	b.reply(chatID, "✂️ Clipping recipe...")

	results, err := b.app.ImportRecipes(ctx, []string{url})
	if err != nil {
		if errors.Is(err, app.ErrNoImporter) {
			b.reply(chatID, "Recipe import is not configured on this server.")
			return
		}
		b.replyError(chatID, "clipping the recipe", err)
		return
	}

	for _, res := range results {
		var sb strings.Builder
		fmt.Fprintf(&sb, "✅ Recipe saved: %s (id %d, serves %d)\n", res.Recipe.Name, res.Recipe.ID, res.Recipe.Servings)
		if len(res.CreatedIngredients) > 0 {
			fmt.Fprintf(&sb, "New ingredients: %s\n", strings.Join(res.CreatedIngredients, ", "))
		}
		if len(res.CreatedUnits) > 0 {
			fmt.Fprintf(&sb, "New units: %s\n", strings.Join(res.CreatedUnits, ", "))
		}
		b.reply(chatID, sb.String())
	}
}

func (b *Bot) handleMetrics(ctx context.Context, chatID int64) {
	usage, err := b.app.Metrics.GetDailyUsage(ctx, 7)
	if err != nil {
		b.replyError(chatID, "fetching metrics", err)
		return
	}
	b.reply(chatID, formatMetrics(usage, metrics.GetSysHealth(b.cfg.DatabasePath)))
}

func formatMetrics(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 Usage & Health Report\n\n")

	sb.WriteString("🗓 Recent LLM activity\n")
	if len(usage) == 0 {
		sb.WriteString("No data yet\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• %s: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution)
	}

	sb.WriteString("\n🧠 System health\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataDiskSize)
	return sb.String()
}

func (b *Bot) replyError(chatID int64, doing string, err error) {
	b.logger.Error("command failed", "chat", chatID, "doing", doing, "err", err)
	b.reply(chatID, fmt.Sprintf("❌ Error %s: %v", doing, err))
}

// reply sends plain text. Ingredient names are user data, so no parse mode is set.
func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send reply", "chat", chatID, "err", err)
	}
}
