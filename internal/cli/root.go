package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitup/internal/backup"
	"github.com/julianstephens/habitup/internal/config"
	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
	"github.com/julianstephens/habitup/internal/storage/sqlite"
	"github.com/julianstephens/habitup/internal/tracker"
)

// ErrNoBackups is returned by backup commands when the store is not a local file.
var ErrNoBackups = errors.New("backups are only supported for SQLite databases")

type Context struct {
	Config  *config.Config
	Store   storage.Provider
	Tracker *tracker.Service
}

// Backups returns a manager for the SQLite database file.
func (c *Context) Backups() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrNoBackups
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup snapshots the database before destructive commands.
// Failures are logged and never block the command.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.Backups()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Owner resolves the --owner flag. With no flag set, the only owner in the
// database is used.
func (c *Context) Owner(ctx context.Context) (models.Owner, error) {
	ref := ""
	if c.Config != nil {
		ref = strings.TrimSpace(c.Config.Owner)
	}
	switch {
	case ref == "":
		owners, err := c.Store.ListOwners(ctx)
		if err != nil {
			return models.Owner{}, err
		}
		switch len(owners) {
		case 0:
			return models.Owner{}, errors.New("no owners yet: run 'habitup owner add' first")
		case 1:
			return owners[0], nil
		default:
			return models.Owner{}, errors.New("several owners exist: pass --owner or set HABITUP_OWNER")
		}
	case strings.Contains(ref, "@"):
		o, err := c.Store.GetOwnerByEmail(ctx, ref)
		if errors.Is(err, storage.ErrNotFound) {
			return models.Owner{}, fmt.Errorf("no owner with email %s", ref)
		}
		return o, err
	default:
		o, err := c.Store.GetOwner(ctx, ref)
		if errors.Is(err, storage.ErrNotFound) {
			return models.Owner{}, fmt.Errorf("no owner with id %s", ref)
		}
		return o, err
	}
}

// Habit finds one of the owner's habits by id or case-insensitive name.
func (c *Context) Habit(ctx context.Context, owner models.Owner, ref string) (models.Habit, error) {
	habits, err := c.Tracker.ListHabits(ctx, owner.ID)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", tracker.ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%d habits are named %q, use the id instead", len(matches), ref)
	}
}
