package content

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage/sqlite"
	"github.com/julianstephens/habitup/internal/tracker"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store, Tracker: tracker.New(store, tracker.WithLocation(time.UTC))}
}

func TestThoughtCommands(t *testing.T) {
	ctx := setupTestContext(t)
	bg := context.Background()

	if err := (&ThoughtTodayCmd{}).Run(ctx); err != nil {
		t.Errorf("today on empty db failed: %v", err)
	}

	today := models.FormatDay(time.Now().UTC())
	if err := (&ThoughtAddCmd{Title: "General", Content: "Keep going", Category: "motivation"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&ThoughtAddCmd{Title: "Scheduled", Content: "Today's pick", Category: "FOCUS", Day: today}).Run(ctx); err != nil {
		t.Fatalf("add scheduled failed: %v", err)
	}
	if err := (&ThoughtAddCmd{Title: "Draft", Content: "Not yet", Inactive: true}).Run(ctx); err != nil {
		t.Fatalf("add inactive failed: %v", err)
	}
	if err := (&ThoughtAddCmd{Title: "Bad", Content: "x", Day: "tomorrow"}).Run(ctx); err == nil {
		t.Error("expected invalid day to be rejected")
	}

	got, err := ctx.Store.GetThoughtForDay(bg, today)
	if err != nil {
		t.Fatalf("scheduled thought not found: %v", err)
	}
	if got.Title != "Scheduled" || got.Category != "FOCUS" {
		t.Errorf("unexpected thought: %+v", got)
	}

	active, err := ctx.Store.ListThoughts(bg, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active thoughts, got %d", len(active))
	}

	if err := (&ThoughtTodayCmd{}).Run(ctx); err != nil {
		t.Errorf("today failed: %v", err)
	}
	if err := (&ThoughtListCmd{All: true}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
