package constants

const (
	// LookbackRecords bounds how many of the most recent records a streak is derived from.
	LookbackRecords = 365

	// MaxWindowDays is the largest progress or analytics window accepted.
	MaxWindowDays = 365
	// MinAnalyticsWindowDays is the smallest analytics window accepted over HTTP.
	MinAnalyticsWindowDays = 7

	DefaultProgressDays  = 30
	DefaultAnalyticsDays = 90

	DefaultTargetDays = 21
	MaxTargetDays     = 365

	MinEffort = 1
	MaxEffort = 10

	MinRating = 1
	MaxRating = 5

	// MaxSuggestions caps the ranked suggestion list.
	MaxSuggestions = 10

	// StreakPraiseThreshold is the current streak at which analytics adds a praise insight.
	StreakPraiseThreshold = 7
)

// Milestones are the streak lengths that trigger a milestone notification.
var Milestones = []int{7, 21, 30, 50, 100}

// IsMilestone reports whether streak is one of Milestones.
func IsMilestone(streak int) bool {
	for _, m := range Milestones {
		if m == streak {
			return true
		}
	}
	return false
}
