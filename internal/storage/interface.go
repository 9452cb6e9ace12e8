package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/habitup/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotInitialized is returned by Load when no database exists yet.
var ErrNotInitialized = errors.New("storage not initialized")

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("already exists")

// RecordFilter bounds a completion record query. Zero values mean unbounded.
type RecordFilter struct {
	Since string // inclusive, YYYY-MM-DD
	Until string // inclusive, YYYY-MM-DD
	Limit int
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Health(ctx context.Context) error

	// Owners
	AddOwner(ctx context.Context, owner models.Owner) error
	GetOwner(ctx context.Context, id string) (models.Owner, error)
	GetOwnerByEmail(ctx context.Context, email string) (models.Owner, error)
	ListOwners(ctx context.Context) ([]models.Owner, error)

	// Habits
	AddHabit(ctx context.Context, habit models.Habit) error
	GetHabit(ctx context.Context, id string) (models.Habit, error)
	ListHabits(ctx context.Context, ownerID string) ([]models.Habit, error)
	// ListCategories returns the distinct categories of an owner's habits.
	ListCategories(ctx context.Context, ownerID string) ([]models.Category, error)
	UpdateHabit(ctx context.Context, habit models.Habit) error
	// UpdateStreak overwrites only the streak fields of a habit.
	UpdateStreak(ctx context.Context, habitID string, state models.StreakState) error
	// DeleteHabit removes a habit and its completion records.
	DeleteHabit(ctx context.Context, id string) error

	// Completion records
	// UpsertRecord inserts the record or, when one exists for the same
	// (owner, habit, day), overwrites its mutable fields. Last writer wins.
	UpsertRecord(ctx context.Context, record models.CompletionRecord) (models.CompletionRecord, error)
	// FetchRecords returns records ordered by day, most recent first.
	FetchRecords(ctx context.Context, ownerID, habitID string, filter RecordFilter) ([]models.CompletionRecord, error)
	// CountDuplicateRecords reports (owner, habit, day) groups with more than one row.
	CountDuplicateRecords(ctx context.Context) (int, error)

	// Daily thoughts
	AddThought(ctx context.Context, thought models.DailyThought) error
	ListThoughts(ctx context.Context, activeOnly bool) ([]models.DailyThought, error)
	GetThoughtForDay(ctx context.Context, day string) (models.DailyThought, error)
	GetLatestThought(ctx context.Context) (models.DailyThought, error)

	// Feedback
	AddFeedback(ctx context.Context, feedback models.Feedback) error
	ListFeedback(ctx context.Context, ownerID string) ([]models.Feedback, error)

	// Utils
	GetConfigPath() string
}
