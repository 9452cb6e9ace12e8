package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitup/internal/constants"
)

// ErrMalformedRecord is returned when a completion record carries a value
// outside its closed set (status, mood, effort) or an unparseable day.
var ErrMalformedRecord = errors.New("malformed completion record")

type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "COMPLETED"
	StatusPartial   CompletionStatus = "PARTIAL"
	StatusMissed    CompletionStatus = "MISSED"
	StatusSkipped   CompletionStatus = "SKIPPED"
)

func (s CompletionStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPartial, StatusMissed, StatusSkipped:
		return true
	}
	return false
}

type Mood string

const (
	MoodExcellent Mood = "EXCELLENT"
	MoodGood      Mood = "GOOD"
	MoodNeutral   Mood = "NEUTRAL"
	MoodBad       Mood = "BAD"
	MoodTerrible  Mood = "TERRIBLE"
)

// Moods is the fixed five-point mood scale, best first.
var Moods = []Mood{MoodExcellent, MoodGood, MoodNeutral, MoodBad, MoodTerrible}

func (m Mood) Valid() bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// CompletionRecord is one logged attempt at a habit for one calendar day.
// At most one exists per (OwnerID, HabitID, Day).
type CompletionRecord struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	HabitID   string           `json:"habit_id"`
	Day       string           `json:"day"` // YYYY-MM-DD format
	Status    CompletionStatus `json:"status"`
	TimeOfDay string           `json:"time_of_day,omitempty"` // HH:MM:SS format
	Mood      Mood             `json:"mood,omitempty"`
	Effort    *int             `json:"effort,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Validate checks the closed-set fields and the day and time formats.
func (r CompletionRecord) Validate() error {
	if !r.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrMalformedRecord, r.Status)
	}
	if r.Mood != "" && !r.Mood.Valid() {
		return fmt.Errorf("%w: mood %q", ErrMalformedRecord, r.Mood)
	}
	if r.Effort != nil && (*r.Effort < constants.MinEffort || *r.Effort > constants.MaxEffort) {
		return fmt.Errorf("%w: effort %d outside 1-10", ErrMalformedRecord, *r.Effort)
	}
	if _, err := ParseDay(r.Day); err != nil {
		return fmt.Errorf("%w: day %q", ErrMalformedRecord, r.Day)
	}
	if r.TimeOfDay != "" {
		if _, err := time.Parse(constants.TimeOfDayFormat, r.TimeOfDay); err != nil {
			return fmt.Errorf("%w: time of day %q must be HH:MM:SS", ErrMalformedRecord, r.TimeOfDay)
		}
	}
	return nil
}

// ParseDay parses a YYYY-MM-DD calendar day as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// FormatDay formats t as its calendar day in t's location.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// CalendarDay returns midnight UTC of t's calendar day in t's location.
// Day arithmetic on the result never crosses a DST boundary.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
