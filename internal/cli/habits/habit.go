package habits

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/tracker"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits with their streaks."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit a habit."`
	Mark      HabitMarkCmd      `cmd:"" help:"Record a habit for a day."`
	Progress  HabitProgressCmd  `cmd:"" help:"Show recent progress for a habit."`
	Analytics HabitAnalyticsCmd `cmd:"" help:"Show detailed analytics for a habit."`
	Suggest   HabitSuggestCmd   `cmd:"" help:"Suggest habits to try next."`
	Recompute HabitRecomputeCmd `cmd:"" help:"Recompute a habit's streak from its records."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit and its records."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `help:"Short description."`
	Category    string `help:"Category (HEALTH_FITNESS, PRODUCTIVITY, MINDFULNESS, LEARNING, SOCIAL, PERSONAL_CARE, CREATIVITY, OTHER)." default:"OTHER"`
	Difficulty  string `help:"Difficulty (EASY, MEDIUM, HARD)." default:"MEDIUM"`
	Target      int    `help:"Target number of days." default:"21"`
	Reminder    string `help:"Reminder time (HH:MM). Enables the reminder."`
	Interactive bool   `short:"i" help:"Fill in the habit with a form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}

	if c.Interactive || c.Name == "" {
		if err := c.runForm(); err != nil {
			return err
		}
	}

	in, err := c.input()
	if err != nil {
		return err
	}
	h, err := ctx.Tracker.CreateHabit(bg, owner.ID, in)
	if err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added habit %q", h.Name)) + cli.MutedStyle.Render(" ("+h.ID+")"))
	return nil
}

func (c *HabitAddCmd) input() (tracker.HabitInput, error) {
	cat, err := models.ParseCategory(c.Category)
	if err != nil {
		return tracker.HabitInput{}, err
	}
	diff, err := models.ParseDifficulty(c.Difficulty)
	if err != nil {
		return tracker.HabitInput{}, err
	}
	in := tracker.HabitInput{
		Name:        &c.Name,
		Description: &c.Description,
		Category:    &cat,
		Difficulty:  &diff,
		TargetDays:  &c.Target,
	}
	if c.Reminder != "" {
		enabled := true
		in.ReminderTime = &c.Reminder
		in.ReminderEnabled = &enabled
	}
	return in, nil
}

func (c *HabitAddCmd) runForm() error {
	target := strconv.Itoa(c.Target)
	catOptions := make([]huh.Option[string], 0, len(models.Categories))
	for _, cat := range models.Categories {
		catOptions = append(catOptions, huh.NewOption(string(cat), string(cat)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&c.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOptions...).
				Value(&c.Category),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", string(models.DifficultyEasy)),
					huh.NewOption("Medium", string(models.DifficultyMedium)),
					huh.NewOption("Hard", string(models.DifficultyHard)),
				).
				Value(&c.Difficulty),
			huh.NewInput().
				Title("Target days").
				Value(&target).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if n < 1 || n > constants.MaxTargetDays {
						return fmt.Errorf("target must be between 1 and %d days", constants.MaxTargetDays)
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Description("Leave empty for no reminder").
				Value(&c.Reminder),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	n, err := strconv.Atoi(target)
	if err != nil {
		return err
	}
	c.Target = n
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}
	habits, err := ctx.Tracker.ListHabits(bg, owner.ID)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		if !h.Active && !c.All {
			continue
		}
		rows = append(rows, habitRow(h))
	}
	if len(rows) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	fmt.Println(cli.Table([]string{"Name", "Category", "Difficulty", "Streak", "Best", "Target", "Reminder", "ID"}, rows))
	return nil
}

func habitRow(h models.Habit) []string {
	name := h.Name
	if !h.Active {
		name += " [INACTIVE]"
	}
	reminder := "-"
	if h.ReminderEnabled {
		reminder = h.ReminderTime
	}
	return []string{
		name,
		string(h.Category),
		string(h.Difficulty),
		strconv.Itoa(h.CurrentStreak),
		strconv.Itoa(h.LongestStreak),
		fmt.Sprintf("%d days", h.TargetDays),
		reminder,
		h.ID,
	}
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Category    *string `help:"New category."`
	Difficulty  *string `help:"New difficulty."`
	Target      *int    `help:"New target days."`
	Reminder    *string `help:"Reminder time (HH:MM); empty disables the reminder."`
	Active      *bool   `help:"Set whether the habit is active." negatable:""`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}
	h, err := ctx.Habit(bg, owner, c.Habit)
	if err != nil {
		return err
	}

	in := tracker.HabitInput{
		Name:        c.Name,
		Description: c.Description,
		TargetDays:  c.Target,
		Active:      c.Active,
	}
	if c.Category != nil {
		cat, err := models.ParseCategory(*c.Category)
		if err != nil {
			return err
		}
		in.Category = &cat
	}
	if c.Difficulty != nil {
		d, err := models.ParseDifficulty(*c.Difficulty)
		if err != nil {
			return err
		}
		in.Difficulty = &d
	}
	if c.Reminder != nil {
		enabled := *c.Reminder != ""
		in.ReminderTime = c.Reminder
		in.ReminderEnabled = &enabled
	}

	updated, err := ctx.Tracker.UpdateHabit(bg, owner.ID, h.ID, in)
	if err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated habit %q", updated.Name)))
	return nil
}

type HabitRecomputeCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or id. Recomputes every habit when omitted."`
}

func (c *HabitRecomputeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}

	var targets []models.Habit
	if c.Habit != "" {
		h, err := ctx.Habit(bg, owner, c.Habit)
		if err != nil {
			return err
		}
		targets = []models.Habit{h}
	} else if targets, err = ctx.Tracker.ListHabits(bg, owner.ID); err != nil {
		return err
	}

	for _, h := range targets {
		state, err := ctx.Tracker.RecomputeStreak(bg, owner.ID, h.ID)
		if err != nil {
			return fmt.Errorf("failed to recompute %q: %w", h.Name, err)
		}
		fmt.Printf("%s: current %d, longest %d\n", h.Name, state.Current, state.Longest)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	owner, err := ctx.Owner(bg)
	if err != nil {
		return err
	}
	h, err := ctx.Habit(bg, owner, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and all of its records?", h.Name)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.DeleteHabit(bg, owner.ID, h.ID); err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted habit %q", h.Name)))
	return nil
}
