package models

// StreakState is derived from completion records and never stored on its own.
type StreakState struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// WithPrior raises Longest to the previously stored best, since the lookback
// window may not contain the all-time longest run.
func (s StreakState) WithPrior(prevLongest int) StreakState {
	if prevLongest > s.Longest {
		s.Longest = prevLongest
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	return s
}

// WeekStat is one trailing seven-day bucket of an analytics window.
type WeekStat struct {
	Week      int     `json:"week"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
}

// DayStat aggregates the records that fall on one weekday.
type DayStat struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}

// Counts tallies records by status.
type Counts struct {
	Total     int `json:"total_records"`
	Completed int `json:"completed_days"`
	Partial   int `json:"partial_days"`
	Missed    int `json:"missed_days"`
	Skipped   int `json:"skipped_days"`
}

// AnalyticsReport is computed per request and never persisted.
type AnalyticsReport struct {
	WindowDays      int                `json:"total_days"`
	Counts          Counts             `json:"counts"`
	CompletionRate  float64            `json:"completion_rate"`
	CurrentStreak   int                `json:"current_streak"`
	LongestStreak   int                `json:"longest_streak"`
	WeeklyBreakdown []WeekStat         `json:"weekly_breakdown"`
	DayOfWeekStats  map[string]DayStat `json:"day_of_week_stats"`
	MoodStats       map[Mood]int       `json:"mood_stats"`
	EffortStats     map[int]int        `json:"effort_stats"`
	Insights        []string           `json:"insights"`
}

// ProgressReport summarizes a trailing window without the breakdowns.
type ProgressReport struct {
	WindowDays     int                `json:"total_days"`
	Counts         Counts             `json:"counts"`
	CompletionRate float64            `json:"completion_rate"`
	CurrentStreak  int                `json:"current_streak"`
	LongestStreak  int                `json:"longest_streak"`
	Records        []CompletionRecord `json:"records"`
}

type Priority string

const (
	PriorityHigh Priority = "HIGH"
	PriorityLow  Priority = "LOW"
)

// HabitTemplate is a catalog entry describing a habit an owner may adopt.
type HabitTemplate struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Suggestion is a ranked template.
type Suggestion struct {
	HabitTemplate
	Priority Priority `json:"priority"`
}

// SuggestionReport is returned to owners asking what to try next.
type SuggestionReport struct {
	Suggestions       []Suggestion `json:"suggestions"`
	UserHabitCount    int          `json:"user_habit_count"`
	CategoriesCovered []Category   `json:"categories_covered"`
}
