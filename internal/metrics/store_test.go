package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meal-planner/internal/database"
	"meal-planner/internal/llm"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	db := database.NewTestDB(t)
	s := NewStore(db.SQL)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	records := []ExecutionMetric{
		{AgentName: "clipper", Model: "m", PromptTokens: 100, CompletionTokens: 20, Timestamp: now.Add(-time.Hour)},
		{AgentName: "clipper", Model: "m", PromptTokens: 50, CompletionTokens: 10, Timestamp: now.Add(-2 * time.Hour)},
		{AgentName: "clipper", Model: "m", PromptTokens: 7, CompletionTokens: 3, Timestamp: now.AddDate(0, 0, -2)},
		{AgentName: "clipper", Model: "m", PromptTokens: 1, CompletionTokens: 1, Timestamp: now.AddDate(0, 0, -40)},
	}
	for _, r := range records {
		if err := s.Record(ctx, r); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	t.Run("DailyUsage", func(t *testing.T) {
		usage, err := s.GetDailyUsage(ctx, 7)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if len(usage) != 2 {
			t.Fatalf("Expected 2 days of usage, got %d: %+v", len(usage), usage)
		}
		if usage[0].Date != "2026-03-10" || usage[0].TotalPrompt != 150 || usage[0].TotalCompletion != 30 || usage[0].TotalExecution != 2 {
			t.Errorf("Unexpected usage for today: %+v", usage[0])
		}
		if usage[1].Date != "2026-03-08" || usage[1].TotalExecution != 1 {
			t.Errorf("Unexpected usage for 2026-03-08: %+v", usage[1])
		}
	})

	t.Run("RecordUsageSkipsEmpty", func(t *testing.T) {
		if err := s.RecordUsage(ctx, "clipper", llm.Usage{Model: "m"}, time.Second); err != nil {
			t.Fatalf("RecordUsage failed: %v", err)
		}
		usage, _ := s.GetDailyUsage(ctx, 1)
		if len(usage) != 1 || usage[0].TotalExecution != 2 {
			t.Errorf("Expected empty usage to be skipped, got %+v", usage)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		n, err := s.Cleanup(ctx, 30)
		if err != nil {
			t.Fatalf("Cleanup failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 deleted record, got %d", n)
		}
	})
}

func TestMapUsage(t *testing.T) {
	m := MapUsage("clipper", llm.Usage{Model: "llama", PromptTokens: 3, CompletionTokens: 4, TotalTokens: 7}, 1500*time.Millisecond)
	if m.AgentName != "clipper" || m.Model != "llama" || m.PromptTokens != 3 || m.CompletionTokens != 4 || m.LatencyMS != 1500 {
		t.Errorf("Unexpected metric: %+v", m)
	}
}

func TestSysHealth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.db"), make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	h := GetSysHealth(filepath.Join(dir, "data.db"))
	if h.DataDiskSize != "2.0 KB" {
		t.Errorf("Expected 2.0 KB, got %s", h.DataDiskSize)
	}
	if h.Goroutines == 0 {
		t.Error("Expected at least one goroutine")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KB",
		1536:    "1.5 KB",
		1 << 20: "1.0 MB",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
