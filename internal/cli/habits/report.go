package habits

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/tracker"
)

type HabitMarkCmd struct {
	Habit  string `arg:"" help:"Habit name or id."`
	Date   string `help:"Day in YYYY-MM-DD format, today or earlier (default: today)."`
	Status string `help:"Status (COMPLETED, PARTIAL, MISSED, SKIPPED)." default:"COMPLETED" enum:"COMPLETED,PARTIAL,MISSED,SKIPPED"`
	Mood   string `help:"Mood (EXCELLENT, GOOD, NEUTRAL, BAD, TERRIBLE)."`
	Effort *int   `help:"Effort from 1 to 10."`
	Note   string `help:"Optional note for this entry."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}
	h, err := ctx.Habit(bg, owner, c.Habit)
	if err != nil {
		return err
	}

	state, err := ctx.Tracker.MarkComplete(bg, owner.ID, h.ID, tracker.MarkInput{
		Day:    c.Date,
		Status: models.CompletionStatus(c.Status),
		Mood:   models.Mood(strings.ToUpper(c.Mood)),
		Effort: c.Effort,
		Notes:  c.Note,
	})
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = "today"
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Marked %q %s for %s", h.Name, strings.ToLower(c.Status), day)))
	fmt.Printf("  Streak: %d day(s), best %d\n", state.Current, state.Longest)
	if constants.IsMilestone(state.Current) {
		fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("  🎉 %d-day milestone!", state.Current)))
	}
	return nil
}

type HabitProgressCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Days  int    `help:"Trailing window in days (1-365)." default:"30"`
}

func (c *HabitProgressCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}
	h, err := ctx.Habit(bg, owner, c.Habit)
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.Progress(bg, owner.ID, h.ID, c.Days)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s: last %d days", h.Name, report.WindowDays)))
	printSummary(report.Counts, report.CompletionRate, report.CurrentStreak, report.LongestStreak)
	if len(report.Records) == 0 {
		fmt.Println(cli.MutedStyle.Render("No records in this window."))
		return nil
	}

	rows := make([][]string, 0, len(report.Records))
	for _, r := range report.Records {
		effort := "-"
		if r.Effort != nil {
			effort = strconv.Itoa(*r.Effort)
		}
		rows = append(rows, []string{r.Day, string(r.Status), orDash(string(r.Mood)), effort, orDash(r.Notes)})
	}
	fmt.Println(cli.Table([]string{"Day", "Status", "Mood", "Effort", "Notes"}, rows))
	return nil
}

type HabitAnalyticsCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Days  int    `help:"Trailing window in days (7-365)." default:"90"`
}

func (c *HabitAnalyticsCmd) Run(ctx *cli.Context) error {
	if c.Days < constants.MinAnalyticsWindowDays {
		return fmt.Errorf("%w: analytics need at least %d days", tracker.ErrInvalidWindow, constants.MinAnalyticsWindowDays)
	}
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}
	h, err := ctx.Habit(bg, owner, c.Habit)
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.Analytics(bg, owner.ID, h.ID, c.Days)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s: analytics for the last %d days", h.Name, report.WindowDays)))
	printSummary(report.Counts, report.CompletionRate, report.CurrentStreak, report.LongestStreak)

	weeks := make([][]string, 0, len(report.WeeklyBreakdown))
	for _, w := range report.WeeklyBreakdown {
		weeks = append(weeks, []string{strconv.Itoa(w.Week), fmt.Sprintf("%d/%d", w.Completed, w.Total), percent(w.Rate)})
	}
	if len(weeks) > 0 {
		fmt.Println(cli.Table([]string{"Week", "Done", "Rate"}, weeks))
	}

	days := make([][]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		s, ok := report.DayOfWeekStats[d.String()]
		if !ok {
			continue
		}
		days = append(days, []string{d.String(), fmt.Sprintf("%d/%d", s.Completed, s.Total), percent(s.Rate)})
	}
	if len(days) > 0 {
		fmt.Println(cli.Table([]string{"Weekday", "Done", "Rate"}, days))
	}

	if len(report.MoodStats) > 0 {
		parts := make([]string, 0, len(models.Moods))
		for _, m := range models.Moods {
			if n := report.MoodStats[m]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", strings.ToLower(string(m)), n))
			}
		}
		fmt.Println("Moods:  " + strings.Join(parts, ", "))
	}
	if len(report.EffortStats) > 0 {
		levels := make([]int, 0, len(report.EffortStats))
		for lvl := range report.EffortStats {
			levels = append(levels, lvl)
		}
		sort.Ints(levels)
		parts := make([]string, 0, len(levels))
		for _, lvl := range levels {
			parts = append(parts, fmt.Sprintf("%d×%d", lvl, report.EffortStats[lvl]))
		}
		fmt.Println("Effort: " + strings.Join(parts, ", "))
	}

	for _, insight := range report.Insights {
		fmt.Println(cli.WarningStyle.Render("💡 " + insight))
	}
	return nil
}

type HabitSuggestCmd struct{}

func (c *HabitSuggestCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.Suggestions(bg, owner.ID)
	if err != nil {
		return err
	}

	fmt.Printf("You track %d habit(s) across %d categor(ies).\n", report.UserHabitCount, len(report.CategoriesCovered))
	rows := make([][]string, 0, len(report.Suggestions))
	for _, s := range report.Suggestions {
		rows = append(rows, []string{string(s.Priority), s.Name, string(s.Category), string(s.Difficulty), s.Description})
	}
	fmt.Println(cli.Table([]string{"Priority", "Habit", "Category", "Difficulty", "Why"}, rows))
	return nil
}

func printSummary(c models.Counts, rate float64, current, longest int) {
	fmt.Printf("Completed %d, partial %d, missed %d, skipped %d (%s)\n", c.Completed, c.Partial, c.Missed, c.Skipped, percent(rate))
	fmt.Printf("Streak: %d day(s), best %d\n", current, longest)
}

func percent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
