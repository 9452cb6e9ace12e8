package models

import (
	"errors"
	"testing"
	"time"
)

func TestCompletionRecordValidate(t *testing.T) {
	effort := func(v int) *int { return &v }
	tests := []struct {
		name    string
		record  CompletionRecord
		wantErr bool
	}{
		{"minimal", CompletionRecord{Day: "2024-01-01", Status: StatusCompleted}, false},
		{"full", CompletionRecord{Day: "2024-01-01", Status: StatusPartial, Mood: MoodGood, Effort: effort(10)}, false},
		{"lowercase status", CompletionRecord{Day: "2024-01-01", Status: "completed"}, true},
		{"empty status", CompletionRecord{Day: "2024-01-01"}, true},
		{"effort zero", CompletionRecord{Day: "2024-01-01", Status: StatusCompleted, Effort: effort(0)}, true},
		{"mood outside scale", CompletionRecord{Day: "2024-01-01", Status: StatusCompleted, Mood: "OK"}, true},
		{"invalid date", CompletionRecord{Day: "2024-02-30", Status: StatusCompleted}, true},
		{"time of day", CompletionRecord{Day: "2024-01-01", Status: StatusCompleted, TimeOfDay: "07:30:00"}, false},
		{"time of day not a clock", CompletionRecord{Day: "2024-01-01", Status: StatusCompleted, TimeOfDay: "banana"}, true},
		{"time of day without seconds", CompletionRecord{Day: "2024-01-01", Status: StatusCompleted, TimeOfDay: "07:30"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedRecord) {
					t.Errorf("expected ErrMalformedRecord, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestStreakStateWithPrior(t *testing.T) {
	tests := []struct {
		state StreakState
		prior int
		want  StreakState
	}{
		{StreakState{Current: 2, Longest: 3}, 10, StreakState{Current: 2, Longest: 10}},
		{StreakState{Current: 2, Longest: 3}, 1, StreakState{Current: 2, Longest: 3}},
		{StreakState{Current: 5, Longest: 4}, 0, StreakState{Current: 5, Longest: 5}},
	}

	for _, tt := range tests {
		got := tt.state.WithPrior(tt.prior)
		if got != tt.want {
			t.Errorf("WithPrior(%d) on %+v: expected %+v, got %+v", tt.prior, tt.state, tt.want, got)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"health_fitness": CategoryHealthFitness,
		"personal-care":  CategoryPersonalCare,
		" Creativity ":   CategoryCreativity,
	}
	for in, want := range tests {
		got, err := ParseCategory(in)
		if err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseCategory(%q): expected %s, got %s", in, want, got)
		}
	}

	if _, err := ParseCategory("HEALTH"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestDifficultyRank(t *testing.T) {
	if !(DifficultyEasy.Rank() < DifficultyMedium.Rank() && DifficultyMedium.Rank() < DifficultyHard.Rank()) {
		t.Error("expected EASY < MEDIUM < HARD")
	}
}

func TestCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	in := time.Date(2024, time.June, 1, 2, 0, 0, 0, loc)
	got := CalendarDay(in)
	want := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFeedbackValidate(t *testing.T) {
	rating := 6
	fb := Feedback{Type: FeedbackGeneral, Subject: "hi", Message: "there"}
	if err := fb.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	fb.Rating = &rating
	if err := fb.Validate(); err == nil {
		t.Error("expected error for rating out of range")
	}
	fb.Rating = nil
	fb.Type = "PRAISE"
	if err := fb.Validate(); err == nil {
		t.Error("expected error for unknown type")
	}
}
