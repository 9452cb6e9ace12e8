package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/cli/backups"
	"github.com/julianstephens/habitup/internal/cli/content"
	"github.com/julianstephens/habitup/internal/cli/habits"
	"github.com/julianstephens/habitup/internal/cli/owners"
	"github.com/julianstephens/habitup/internal/cli/system"
	"github.com/julianstephens/habitup/internal/config"
	apperrors "github.com/julianstephens/habitup/internal/errors"
	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/notifier"
	"github.com/julianstephens/habitup/internal/tracker"
)

var CLI struct {
	Config config.Config `embed:""`

	Version kong.VersionFlag `help:"Print version and exit."`

	Init    system.InitCmd     `cmd:"" help:"Initialize habitup storage."`
	Migrate system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Serve   system.ServeCmd    `cmd:"" help:"Run the HTTP API."`
	Keyring system.KeyringCmd  `cmd:"" help:"Manage secrets in the OS keyring."`
	Owner   owners.OwnerCmd    `cmd:"" help:"Manage owner accounts."`
	Habit   habits.HabitCmd    `cmd:"" help:"Manage habits and habit tracking."`
	Thought content.ThoughtCmd `cmd:"" help:"Manage daily thoughts."`
	Backup  backups.BackupCmd  `cmd:"" help:"Manage database backups."`
}

func main() {
	if err := config.LoadEnv(); err != nil {
		apperrors.Fatal(err)
	}

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracking with streaks, analytics and suggestions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":   "v0.1.0",
			"db":        constants.DefaultConfigPath,
			"addr":      constants.DefaultAddr,
			"token_ttl": constants.DefaultTokenTTL.String(),
		},
	)

	command := kctx.Command()
	// keyring commands must work while HABITUP_DB=keyring has nothing stored yet.
	keyringCmd := strings.HasPrefix(command, "keyring")

	cfg := &CLI.Config
	if err := cfg.Resolve(); err != nil && !keyringCmd {
		kctx.FatalIfErrorf(err)
	}

	serving := command == "serve"
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.Dir(),
		JSON:      serving,
		Stderr:    serving,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store := cfg.OpenStore()
	defer store.Close()

	// init and keyring manage their own storage.
	if command != "init" && !keyringCmd {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Tracker: tracker.New(store,
			tracker.WithLocation(cfg.Location),
			tracker.WithNotifier(notifier.NewTray()),
		),
	}

	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
