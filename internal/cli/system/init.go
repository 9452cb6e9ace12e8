package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/config"
	"github.com/julianstephens/habitup/internal/storage"
	"github.com/julianstephens/habitup/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite database before initializing."`
	Source string `help:"Database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitup storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(context.Background(), ctx.Store); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println(cli.SuccessStyle.Render("✓ Copy completed successfully!"))
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force only supports SQLite databases")
	}
	dbPath, err := filepath.Abs(ctx.Store.GetConfigPath())
	if err != nil {
		dbPath = ctx.Store.GetConfigPath()
	}
	if c.Source != "" {
		if src, err := filepath.Abs(c.Source); err == nil && src == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func (c *InitCmd) copyFrom(ctx context.Context, dst storage.Provider) error {
	srcCfg := &config.Config{DB: c.Source}
	if err := srcCfg.Resolve(); err != nil {
		return err
	}
	src := srcCfg.OpenStore()
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	stats, err := CopyData(ctx, src, dst)
	if err != nil {
		return err
	}
	fmt.Printf("  Copied %d owners, %d habits, %d records, %d thoughts, %d feedback entries\n",
		stats.Owners, stats.Habits, stats.Records, stats.Thoughts, stats.Feedback)
	return nil
}

type CopyStats struct {
	Owners, Habits, Records, Thoughts, Feedback int
}

// CopyData copies every row from src into dst, keeping ids.
func CopyData(ctx context.Context, src, dst storage.Provider) (CopyStats, error) {
	var stats CopyStats

	owners, err := src.ListOwners(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list owners: %w", err)
	}
	for _, o := range owners {
		if err := dst.AddOwner(ctx, o); err != nil {
			return stats, fmt.Errorf("failed to add owner %s: %w", o.ID, err)
		}
		stats.Owners++

		habits, err := src.ListHabits(ctx, o.ID)
		if err != nil {
			return stats, fmt.Errorf("failed to list habits of %s: %w", o.ID, err)
		}
		for _, h := range habits {
			if err := dst.AddHabit(ctx, h); err != nil {
				return stats, fmt.Errorf("failed to add habit %s: %w", h.ID, err)
			}
			if err := dst.UpdateStreak(ctx, h.ID, h.Streak()); err != nil {
				return stats, fmt.Errorf("failed to copy streak of %s: %w", h.ID, err)
			}
			stats.Habits++

			records, err := src.FetchRecords(ctx, o.ID, h.ID, storage.RecordFilter{})
			if err != nil {
				return stats, fmt.Errorf("failed to fetch records of %s: %w", h.ID, err)
			}
			for _, r := range records {
				if _, err := dst.UpsertRecord(ctx, r); err != nil {
					return stats, fmt.Errorf("failed to add record %s: %w", r.ID, err)
				}
				stats.Records++
			}
		}
	}

	thoughts, err := src.ListThoughts(ctx, false)
	if err != nil {
		return stats, fmt.Errorf("failed to list thoughts: %w", err)
	}
	for _, t := range thoughts {
		if err := dst.AddThought(ctx, t); err != nil {
			return stats, fmt.Errorf("failed to add thought %s: %w", t.ID, err)
		}
		stats.Thoughts++
	}

	feedback, err := src.ListFeedback(ctx, "")
	if err != nil {
		return stats, fmt.Errorf("failed to list feedback: %w", err)
	}
	for _, f := range feedback {
		if err := dst.AddFeedback(ctx, f); err != nil {
			return stats, fmt.Errorf("failed to add feedback %s: %w", f.ID, err)
		}
		stats.Feedback++
	}
	return stats, nil
}
