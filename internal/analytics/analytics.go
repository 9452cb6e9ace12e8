// Package analytics aggregates completion records over a trailing window into
// progress statistics, breakdowns and insight messages.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/models"
)

const daysPerWeek = 7

const (
	insightConsistencyHigh = "Great consistency! You're maintaining excellent habits."
	insightConsistencyMid  = "Good progress! Try to maintain consistency for better results."
	insightConsistencyLow  = "Focus on building consistency. Small daily actions lead to big changes."
)

// Options controls a single aggregation.
type Options struct {
	WindowDays int
	AsOf       time.Time
	// Streak fields are copied into the report and drive the streak insight.
	CurrentStreak int
	LongestStreak int
}

// entry is a validated record positioned relative to AsOf.
type entry struct {
	offset  int // whole days before AsOf
	weekday time.Weekday
	record  models.CompletionRecord
}

// Compute builds the analytics report for records within the window ending at opts.AsOf.
// Records outside [AsOf-WindowDays, AsOf] are ignored. A non-positive window yields a
// zero completion rate and no weekly buckets.
func Compute(records []models.CompletionRecord, opts Options) (models.AnalyticsReport, error) {
	entries, err := window(records, opts.AsOf, opts.WindowDays)
	if err != nil {
		return models.AnalyticsReport{}, err
	}

	counts := count(entries)
	report := models.AnalyticsReport{
		WindowDays:      opts.WindowDays,
		Counts:          counts,
		CompletionRate:  rate(counts.Completed, opts.WindowDays),
		CurrentStreak:   opts.CurrentStreak,
		LongestStreak:   opts.LongestStreak,
		WeeklyBreakdown: weekly(entries, opts.WindowDays),
		DayOfWeekStats:  dayOfWeek(entries),
		MoodStats:       moods(entries),
		EffortStats:     efforts(entries),
	}
	report.Insights = insights(report)
	return report, nil
}

// Progress summarizes records within the window ending at asOf. The returned
// records are ordered most recent first.
func Progress(records []models.CompletionRecord, windowDays int, asOf time.Time, state models.StreakState) (models.ProgressReport, error) {
	entries, err := window(records, asOf, windowDays)
	if err != nil {
		return models.ProgressReport{}, err
	}

	kept := make([]models.CompletionRecord, 0, len(entries))
	for _, e := range entries {
		kept = append(kept, e.record)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Day > kept[j].Day
	})

	counts := count(entries)
	return models.ProgressReport{
		WindowDays:     windowDays,
		Counts:         counts,
		CompletionRate: rate(counts.Completed, windowDays),
		CurrentStreak:  state.Current,
		LongestStreak:  state.Longest,
		Records:        kept,
	}, nil
}

func window(records []models.CompletionRecord, asOf time.Time, windowDays int) ([]entry, error) {
	today := models.CalendarDay(asOf)
	entries := make([]entry, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		day, _ := models.ParseDay(r.Day)
		offset := int(today.Sub(day).Hours() / 24)
		if offset < 0 || offset > windowDays {
			continue
		}
		entries = append(entries, entry{offset: offset, weekday: day.Weekday(), record: r})
	}
	return entries, nil
}

func count(entries []entry) models.Counts {
	var c models.Counts
	for _, e := range entries {
		c.Total++
		switch e.record.Status {
		case models.StatusCompleted:
			c.Completed++
		case models.StatusPartial:
			c.Partial++
		case models.StatusMissed:
			c.Missed++
		case models.StatusSkipped:
			c.Skipped++
		}
	}
	return c
}

// weekly partitions the window into trailing seven-day buckets, oldest first.
func weekly(entries []entry, windowDays int) []models.WeekStat {
	if windowDays <= 0 {
		return []models.WeekStat{}
	}
	buckets := (windowDays + daysPerWeek - 1) / daysPerWeek
	completed := make([]int, buckets)
	for _, e := range entries {
		if e.record.Status != models.StatusCompleted {
			continue
		}
		i := e.offset / daysPerWeek
		if i < buckets {
			completed[i]++
		}
	}

	out := make([]models.WeekStat, buckets)
	for i := 0; i < buckets; i++ {
		out[buckets-1-i] = models.WeekStat{
			Week:      i + 1,
			Completed: completed[i],
			Total:     daysPerWeek,
			Rate:      rate(completed[i], daysPerWeek),
		}
	}
	return out
}

func dayOfWeek(entries []entry) map[string]models.DayStat {
	stats := make(map[string]models.DayStat, daysPerWeek)
	for d := time.Sunday; d <= time.Saturday; d++ {
		stats[d.String()] = models.DayStat{}
	}
	for _, e := range entries {
		s := stats[e.weekday.String()]
		s.Total++
		if e.record.Status == models.StatusCompleted {
			s.Completed++
		}
		stats[e.weekday.String()] = s
	}
	for name, s := range stats {
		s.Rate = rate(s.Completed, s.Total)
		stats[name] = s
	}
	return stats
}

func moods(entries []entry) map[models.Mood]int {
	stats := make(map[models.Mood]int, len(models.Moods))
	for _, m := range models.Moods {
		stats[m] = 0
	}
	for _, e := range entries {
		if e.record.Status == models.StatusCompleted && e.record.Mood != "" {
			stats[e.record.Mood]++
		}
	}
	return stats
}

func efforts(entries []entry) map[int]int {
	stats := make(map[int]int, constants.MaxEffort)
	for i := constants.MinEffort; i <= constants.MaxEffort; i++ {
		stats[i] = 0
	}
	for _, e := range entries {
		if e.record.Status == models.StatusCompleted && e.record.Effort != nil {
			stats[*e.record.Effort]++
		}
	}
	return stats
}

func insights(r models.AnalyticsReport) []string {
	var out []string

	// First maximum in Sunday..Saturday order wins ties.
	bestName, bestRate := "", 0.0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s := r.DayOfWeekStats[d.String()]; s.Rate > bestRate {
			bestName, bestRate = d.String(), s.Rate
		}
	}
	if bestRate > 0 {
		out = append(out, fmt.Sprintf("Your best day is %s with a %.2f%% completion rate", bestName, bestRate))
	}

	switch {
	case r.CompletionRate > 80:
		out = append(out, insightConsistencyHigh)
	case r.CompletionRate > 60:
		out = append(out, insightConsistencyMid)
	default:
		out = append(out, insightConsistencyLow)
	}

	if r.CurrentStreak >= constants.StreakPraiseThreshold {
		out = append(out, fmt.Sprintf("Amazing! You're on a %d-day streak. Keep it up!", r.CurrentStreak))
	}
	return out
}

// rate returns part/whole as a percentage rounded to two decimals, or 0 when whole is not positive.
func rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}
