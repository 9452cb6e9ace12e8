package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

type ThoughtCmd struct {
	Add   ThoughtAddCmd   `cmd:"" help:"Add a daily thought."`
	List  ThoughtListCmd  `cmd:"" help:"List daily thoughts."`
	Today ThoughtTodayCmd `cmd:"" help:"Show today's thought." default:"1"`
}

type ThoughtAddCmd struct {
	Title    string `arg:"" help:"Title."`
	Content  string `arg:"" help:"Text of the thought."`
	Author   string `help:"Who said it."`
	Category string `help:"Free-form category." default:"MOTIVATION"`
	Day      string `help:"Schedule for a day (YYYY-MM-DD)."`
	Inactive bool   `help:"Store without showing it to owners."`
}

func (c *ThoughtAddCmd) Run(ctx *cli.Context) error {
	if c.Day != "" {
		if _, err := models.ParseDay(c.Day); err != nil {
			return fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", c.Day)
		}
	}
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Content) == "" {
		return errors.New("title and content are required")
	}

	t := models.DailyThought{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(c.Title),
		Content:      strings.TrimSpace(c.Content),
		Author:       strings.TrimSpace(c.Author),
		Category:     strings.ToUpper(strings.TrimSpace(c.Category)),
		ScheduledDay: c.Day,
		Active:       !c.Inactive,
		CreatedAt:    time.Now().UTC(),
	}
	if owner, err := ctx.Owner(context.Background()); err == nil {
		t.CreatedBy = owner.ID
	}
	if err := ctx.Store.AddThought(context.Background(), t); err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added thought %q", t.Title)))
	return nil
}

type ThoughtListCmd struct {
	All bool `help:"Include inactive thoughts."`
}

func (c *ThoughtListCmd) Run(ctx *cli.Context) error {
	thoughts, err := ctx.Store.ListThoughts(context.Background(), !c.All)
	if err != nil {
		return err
	}
	if len(thoughts) == 0 {
		fmt.Println("No thoughts found.")
		return nil
	}
	rows := make([][]string, 0, len(thoughts))
	for _, t := range thoughts {
		day := t.ScheduledDay
		if day == "" {
			day = "-"
		}
		title := t.Title
		if !t.Active {
			title += " [INACTIVE]"
		}
		rows = append(rows, []string{day, title, t.Category, t.Author})
	}
	fmt.Println(cli.Table([]string{"Day", "Title", "Category", "Author"}, rows))
	return nil
}

type ThoughtTodayCmd struct{}

func (c *ThoughtTodayCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	t, err := ctx.Store.GetThoughtForDay(bg, models.FormatDay(ctx.Tracker.Today()))
	if errors.Is(err, storage.ErrNotFound) {
		t, err = ctx.Store.GetLatestThought(bg)
	}
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println("No thoughts yet. Add one with 'habitup thought add'.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(t.Title))
	fmt.Println(t.Content)
	if t.Author != "" {
		fmt.Println(cli.MutedStyle.Render("  — " + t.Author))
	}
	return nil
}
