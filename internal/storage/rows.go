package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitup/internal/models"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Column lists shared by the SQL stores. Scan functions below expect this order.
const (
	OwnerColumns    = "id, email, name, password_hash, role, created_at"
	HabitColumns    = "id, owner_id, name, description, category, target_days, current_streak, longest_streak, active, reminder_time, reminder_enabled, difficulty, created_at, updated_at"
	RecordColumns   = "id, owner_id, habit_id, day, status, time_of_day, mood, effort, notes, created_at, updated_at"
	ThoughtColumns  = "id, title, content, author, category, scheduled_day, active, created_by, created_at"
	FeedbackColumns = "id, owner_id, type, target_type, target_id, subject, message, rating, status, anonymous, submitted_at"
)

// FormatTime renders timestamps the way they are stored (RFC3339, UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t, nil
}

// NullString maps "" to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullInt maps nil to NULL.
func NullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// NotFound translates sql.ErrNoRows into ErrNotFound.
func NotFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}

func ScanOwner(row Scanner) (models.Owner, error) {
	var o models.Owner
	var createdAt string
	if err := row.Scan(&o.ID, &o.Email, &o.Name, &o.PasswordHash, &o.Role, &createdAt); err != nil {
		return models.Owner{}, err
	}
	var err error
	if o.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Owner{}, err
	}
	return o, nil
}

func ScanHabit(row Scanner) (models.Habit, error) {
	var h models.Habit
	var description, reminderTime sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &description, &h.Category, &h.TargetDays,
		&h.CurrentStreak, &h.LongestStreak, &h.Active, &reminderTime, &h.ReminderEnabled,
		&h.Difficulty, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Description = description.String
	h.ReminderTime = reminderTime.String
	if h.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Habit{}, err
	}
	if h.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func ScanRecord(row Scanner) (models.CompletionRecord, error) {
	var r models.CompletionRecord
	var timeOfDay, mood, notes sql.NullString
	var effort sql.NullInt64
	var createdAt, updatedAt string

	err := row.Scan(&r.ID, &r.OwnerID, &r.HabitID, &r.Day, &r.Status, &timeOfDay, &mood,
		&effort, &notes, &createdAt, &updatedAt)
	if err != nil {
		return models.CompletionRecord{}, err
	}

	r.TimeOfDay = timeOfDay.String
	r.Mood = models.Mood(mood.String)
	r.Notes = notes.String
	if effort.Valid {
		v := int(effort.Int64)
		r.Effort = &v
	}
	if r.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.CompletionRecord{}, err
	}
	if r.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.CompletionRecord{}, err
	}
	return r, nil
}

func ScanThought(row Scanner) (models.DailyThought, error) {
	var t models.DailyThought
	var author, scheduledDay, createdBy sql.NullString
	var createdAt string

	err := row.Scan(&t.ID, &t.Title, &t.Content, &author, &t.Category, &scheduledDay,
		&t.Active, &createdBy, &createdAt)
	if err != nil {
		return models.DailyThought{}, err
	}

	t.Author = author.String
	t.ScheduledDay = scheduledDay.String
	t.CreatedBy = createdBy.String
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.DailyThought{}, err
	}
	return t, nil
}

func ScanFeedback(row Scanner) (models.Feedback, error) {
	var f models.Feedback
	var ownerID, targetType, targetID sql.NullString
	var rating sql.NullInt64
	var submittedAt string

	err := row.Scan(&f.ID, &ownerID, &f.Type, &targetType, &targetID, &f.Subject, &f.Message,
		&rating, &f.Status, &f.Anonymous, &submittedAt)
	if err != nil {
		return models.Feedback{}, err
	}

	f.OwnerID = ownerID.String
	f.TargetType = models.FeedbackTarget(targetType.String)
	f.TargetID = targetID.String
	if rating.Valid {
		v := int(rating.Int64)
		f.Rating = &v
	}
	if f.SubmittedAt, err = parseTime("submitted_at", submittedAt); err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}
