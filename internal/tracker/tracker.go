// Package tracker wires the completion record store to the streak, analytics
// and suggestion engines, and notifies owners about completions.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitup/internal/analytics"
	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/notifier"
	"github.com/julianstephens/habitup/internal/storage"
	"github.com/julianstephens/habitup/internal/streak"
	"github.com/julianstephens/habitup/internal/suggest"
)

var (
	ErrInvalidWindow = errors.New("invalid window")
	ErrHabitNotFound = errors.New("habit not found")
	ErrOwnerNotFound = errors.New("owner not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// Store is the slice of storage.Provider the tracker needs.
type Store interface {
	GetOwner(ctx context.Context, id string) (models.Owner, error)
	AddHabit(ctx context.Context, habit models.Habit) error
	GetHabit(ctx context.Context, id string) (models.Habit, error)
	ListHabits(ctx context.Context, ownerID string) ([]models.Habit, error)
	ListCategories(ctx context.Context, ownerID string) ([]models.Category, error)
	UpdateHabit(ctx context.Context, habit models.Habit) error
	UpdateStreak(ctx context.Context, habitID string, state models.StreakState) error
	DeleteHabit(ctx context.Context, id string) error
	UpsertRecord(ctx context.Context, record models.CompletionRecord) (models.CompletionRecord, error)
	FetchRecords(ctx context.Context, ownerID, habitID string, filter storage.RecordFilter) ([]models.CompletionRecord, error)
}

type Service struct {
	store    Store
	notifier notifier.Notifier
	now      func() time.Time
	loc      *time.Location
	catalog  []models.HabitTemplate
}

type Option func(*Service)

func WithNotifier(n notifier.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithCatalog(catalog []models.HabitTemplate) Option {
	return func(s *Service) { s.catalog = catalog }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier.Nop{},
		now:      time.Now,
		loc:      time.Local,
		catalog:  suggest.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current instant in the service's location.
func (s *Service) Today() time.Time {
	return s.now().In(s.loc)
}

// MarkInput describes one completion. Zero values default to a COMPLETED
// record for today.
type MarkInput struct {
	Day       string
	Status    models.CompletionStatus
	TimeOfDay string
	Mood      models.Mood
	Effort    *int
	Notes     string
}

// MarkComplete records a completion, recomputes the habit's streak from its most
// recent records and persists it. Notification failures are logged only.
func (s *Service) MarkComplete(ctx context.Context, ownerID, habitID string, in MarkInput) (models.StreakState, error) {
	habit, err := s.ownedHabit(ctx, ownerID, habitID)
	if err != nil {
		return models.StreakState{}, err
	}

	now := s.Today()
	rec := models.CompletionRecord{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		HabitID:   habitID,
		Day:       in.Day,
		Status:    in.Status,
		TimeOfDay: in.TimeOfDay,
		Mood:      in.Mood,
		Effort:    in.Effort,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rec.Day == "" {
		rec.Day = models.FormatDay(now)
	}
	if rec.Status == "" {
		rec.Status = models.StatusCompleted
	}
	if rec.TimeOfDay == "" {
		rec.TimeOfDay = now.Format(constants.TimeOfDayFormat)
	}
	if err := rec.Validate(); err != nil {
		return models.StreakState{}, err
	}
	if today := models.FormatDay(now); rec.Day > today {
		return models.StreakState{}, fmt.Errorf("%w: day %s is after today (%s)", ErrInvalidInput, rec.Day, today)
	}

	if _, err := s.store.UpsertRecord(ctx, rec); err != nil {
		return models.StreakState{}, fmt.Errorf("failed to save completion: %w", err)
	}

	state, err := s.recompute(ctx, habit, now)
	if err != nil {
		return models.StreakState{}, err
	}
	logger.Debug("Marked habit", "habit", habitID, "day", rec.Day, "status", rec.Status, "current", state.Current, "longest", state.Longest)

	if rec.Status == models.StatusCompleted {
		s.notify(ctx, habit, state)
	}
	return state, nil
}

// RecomputeStreak re-derives and persists a habit's streak without adding a record.
func (s *Service) RecomputeStreak(ctx context.Context, ownerID, habitID string) (models.StreakState, error) {
	habit, err := s.ownedHabit(ctx, ownerID, habitID)
	if err != nil {
		return models.StreakState{}, err
	}
	return s.recompute(ctx, habit, s.Today())
}

func (s *Service) recompute(ctx context.Context, habit models.Habit, asOf time.Time) (models.StreakState, error) {
	records, err := s.store.FetchRecords(ctx, habit.OwnerID, habit.ID, storage.RecordFilter{
		Until: models.FormatDay(asOf),
		Limit: streak.Lookback,
	})
	if err != nil {
		return models.StreakState{}, fmt.Errorf("failed to fetch records: %w", err)
	}

	computed, err := streak.Compute(records, asOf)
	if err != nil {
		return models.StreakState{}, err
	}
	state := computed.WithPrior(habit.LongestStreak)

	if err := s.store.UpdateStreak(ctx, habit.ID, state); err != nil {
		return models.StreakState{}, fmt.Errorf("failed to save streak: %w", err)
	}
	return state, nil
}

func (s *Service) notify(ctx context.Context, habit models.Habit, state models.StreakState) {
	ctx, cancel := context.WithTimeout(ctx, constants.NotifyTimeout)
	defer cancel()

	base := notifier.Notification{
		OwnerID:       habit.OwnerID,
		HabitID:       habit.ID,
		HabitName:     habit.Name,
		CurrentStreak: state.Current,
		LongestStreak: state.Longest,
		SentAt:        s.now(),
	}

	done := base
	done.Type = notifier.TypeHabitCompleted
	done.Message = fmt.Sprintf("Great job! You completed %s.", habit.Name)
	s.send(ctx, done)

	if constants.IsMilestone(state.Current) {
		m := base
		m.Type = notifier.TypeStreakMilestone
		m.Message = fmt.Sprintf("Amazing! %d-day streak on %s!", state.Current, habit.Name)
		s.send(ctx, m)
	}
}

// send logs each failed sink on its own so a missing listener does not hide a
// broken webhook.
func (s *Service) send(ctx context.Context, n notifier.Notification) {
	err := s.notifier.Notify(ctx, n.OwnerID, n)
	if err == nil {
		return
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		if errors.Is(e, notifier.ErrOffline) || errors.Is(e, notifier.ErrTrayNotRunning) {
			logger.Debug("No listener, notification skipped", "owner", n.OwnerID, "type", n.Type, "reason", e)
			continue
		}
		logger.Warn("Failed to deliver notification", "owner", n.OwnerID, "type", n.Type, "error", e)
	}
}

// Analytics aggregates the trailing windowDays of a habit's records.
func (s *Service) Analytics(ctx context.Context, ownerID, habitID string, windowDays int) (models.AnalyticsReport, error) {
	if err := validateWindow(windowDays); err != nil {
		return models.AnalyticsReport{}, err
	}
	habit, err := s.ownedHabit(ctx, ownerID, habitID)
	if err != nil {
		return models.AnalyticsReport{}, err
	}

	asOf := s.Today()
	records, err := s.windowRecords(ctx, habit, asOf, windowDays)
	if err != nil {
		return models.AnalyticsReport{}, err
	}
	return analytics.Compute(records, analytics.Options{
		WindowDays:    windowDays,
		AsOf:          asOf,
		CurrentStreak: habit.CurrentStreak,
		LongestStreak: habit.LongestStreak,
	})
}

// Progress summarizes the trailing windowDays of a habit's records.
func (s *Service) Progress(ctx context.Context, ownerID, habitID string, windowDays int) (models.ProgressReport, error) {
	if err := validateWindow(windowDays); err != nil {
		return models.ProgressReport{}, err
	}
	habit, err := s.ownedHabit(ctx, ownerID, habitID)
	if err != nil {
		return models.ProgressReport{}, err
	}

	asOf := s.Today()
	records, err := s.windowRecords(ctx, habit, asOf, windowDays)
	if err != nil {
		return models.ProgressReport{}, err
	}
	return analytics.Progress(records, windowDays, asOf, habit.Streak())
}

func (s *Service) windowRecords(ctx context.Context, habit models.Habit, asOf time.Time, windowDays int) ([]models.CompletionRecord, error) {
	records, err := s.store.FetchRecords(ctx, habit.OwnerID, habit.ID, storage.RecordFilter{
		Since: models.FormatDay(asOf.AddDate(0, 0, -windowDays)),
		Until: models.FormatDay(asOf),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return records, nil
}

// Suggestions ranks catalog templates, favoring categories the owner does not track yet.
func (s *Service) Suggestions(ctx context.Context, ownerID string) (models.SuggestionReport, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return models.SuggestionReport{}, err
	}
	habits, err := s.store.ListHabits(ctx, ownerID)
	if err != nil {
		return models.SuggestionReport{}, fmt.Errorf("failed to list habits: %w", err)
	}
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return models.SuggestionReport{}, fmt.Errorf("failed to list categories: %w", err)
	}

	return models.SuggestionReport{
		Suggestions:       suggest.Rank(suggest.Set(categories), s.catalog),
		UserHabitCount:    len(habits),
		CategoriesCovered: categories,
	}, nil
}

func validateWindow(days int) error {
	if days < 1 || days > constants.MaxWindowDays {
		return fmt.Errorf("%w: %d days (must be 1-%d)", ErrInvalidWindow, days, constants.MaxWindowDays)
	}
	return nil
}

func (s *Service) owner(ctx context.Context, ownerID string) (models.Owner, error) {
	o, err := s.store.GetOwner(ctx, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Owner{}, fmt.Errorf("%w: %s", ErrOwnerNotFound, ownerID)
	}
	return o, err
}

// ownedHabit hides habits of other owners behind ErrHabitNotFound.
func (s *Service) ownedHabit(ctx context.Context, ownerID, habitID string) (models.Habit, error) {
	h, err := s.store.GetHabit(ctx, habitID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && h.OwnerID != ownerID) {
		return models.Habit{}, ErrHabitNotFound
	}
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}
