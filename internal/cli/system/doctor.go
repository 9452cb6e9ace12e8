package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitup/internal/cli"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks report a warning instead of failing the run.
	warnOnly bool
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println(cli.TitleStyle.Render("Running diagnostics..."))
	fmt.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Println("✓ Database reachable: OK")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("⊘ %s: SKIPPED (database not reachable)", c.name)))
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ %s: WARNING", c.name)))
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println(cli.DangerStyle.Render("Diagnostics completed with errors."))
		return errors.New("one or more health checks failed")
	}
	fmt.Println(cli.SuccessStyle.Render("All diagnostics passed!"))
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ctx.Store.Health(pingCtx)
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'habitup migrate'", len(pending))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.Backups()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'habitup backup create'")
	}
	return nil
}

// checkValidation looks for duplicate day records and streaks that
// disagree with the stored records.
func checkValidation(ctx *cli.Context) error {
	bg := context.Background()
	dupes, err := ctx.Store.CountDuplicateRecords(bg)
	if err != nil {
		return fmt.Errorf("failed to count duplicate records: %w", err)
	}
	if dupes > 0 {
		return fmt.Errorf("%d habit day(s) have more than one completion record", dupes)
	}

	owners, err := ctx.Store.ListOwners(bg)
	if err != nil {
		return fmt.Errorf("failed to list owners: %w", err)
	}
	for _, o := range owners {
		habits, err := ctx.Store.ListHabits(bg, o.ID)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		for _, h := range habits {
			if h.CurrentStreak > h.LongestStreak {
				return fmt.Errorf("habit %s has current streak %d above longest %d, run 'habitup habit recompute'", h.ID, h.CurrentStreak, h.LongestStreak)
			}
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	loc := time.Local
	if ctx.Config != nil && ctx.Config.Location != nil {
		loc = ctx.Config.Location
	}
	fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("   Calendar days use %s (today is %s)", loc, now.In(loc).Format("2006-01-02"))))
	return nil
}
