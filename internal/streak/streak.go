// Package streak derives current and longest completion streaks from a
// habit's completion records.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/models"
)

// Lookback is the number of most recent records a streak is derived from.
const Lookback = constants.LookbackRecords

type dayStatus struct {
	day    int64 // days since the Unix epoch
	status models.CompletionStatus
}

// Compute returns the streak state for one (owner, habit) pair as of asOf.
//
// Records may arrive in any order. Records dated after asOf are ignored and only
// the Lookback most recent remaining records are scanned. A calendar day with no
// record ends a run the same way a non-COMPLETED record does.
func Compute(records []models.CompletionRecord, asOf time.Time) (models.StreakState, error) {
	today := epochDay(models.CalendarDay(asOf))

	days := make([]dayStatus, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return models.StreakState{}, err
		}
		t, err := models.ParseDay(r.Day)
		if err != nil {
			return models.StreakState{}, fmt.Errorf("%w: day %q", models.ErrMalformedRecord, r.Day)
		}
		d := epochDay(t)
		if d > today {
			continue
		}
		days = append(days, dayStatus{day: d, status: r.Status})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].day > days[j].day
	})
	days = dedupe(days)
	if len(days) > Lookback {
		days = days[:Lookback]
	}

	return models.StreakState{
		Current: current(days, today),
		Longest: longest(days),
	}, nil
}

// current walks back from asOf, or from the day before when asOf has no record.
func current(days []dayStatus, today int64) int {
	if len(days) == 0 {
		return 0
	}
	first := days[0]
	if first.status != models.StatusCompleted {
		return 0
	}
	if first.day != today && first.day != today-1 {
		return 0
	}

	count := 1
	expected := first.day - 1
	for _, d := range days[1:] {
		if d.day != expected || d.status != models.StatusCompleted {
			break
		}
		count++
		expected--
	}
	return count
}

func longest(days []dayStatus) int {
	best, run := 0, 0
	var prev int64
	for i, d := range days {
		if d.status != models.StatusCompleted {
			run = 0
			continue
		}
		if run > 0 && i > 0 && prev-d.day == 1 {
			run++
		} else {
			run = 1
		}
		prev = d.day
		if run > best {
			best = run
		}
	}
	return best
}

// dedupe keeps the first record of each day from a day-descending slice.
func dedupe(days []dayStatus) []dayStatus {
	if len(days) < 2 {
		return days
	}
	out := days[:1]
	for _, d := range days[1:] {
		if d.day == out[len(out)-1].day {
			continue
		}
		out = append(out, d)
	}
	return out
}

func epochDay(t time.Time) int64 {
	return t.Unix() / 86400
}
