package models

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryHealthFitness Category = "HEALTH_FITNESS"
	CategoryProductivity  Category = "PRODUCTIVITY"
	CategoryMindfulness   Category = "MINDFULNESS"
	CategoryLearning      Category = "LEARNING"
	CategorySocial        Category = "SOCIAL"
	CategoryPersonalCare  Category = "PERSONAL_CARE"
	CategoryCreativity    Category = "CREATIVITY"
	CategoryOther         Category = "OTHER"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryHealthFitness,
	CategoryProductivity,
	CategoryMindfulness,
	CategoryLearning,
	CategorySocial,
	CategoryPersonalCare,
	CategoryCreativity,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ParseCategory accepts any casing and "-" or " " as separators.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s))))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Rank orders difficulties EASY < MEDIUM < HARD. Unknown values sort last.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return 3
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid difficulty: %s", s)
	}
	return d, nil
}

// Habit is a practice an owner tracks day by day
type Habit struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Category        Category   `json:"category"`
	TargetDays      int        `json:"target_days"`
	CurrentStreak   int        `json:"current_streak"`
	LongestStreak   int        `json:"longest_streak"`
	Active          bool       `json:"active"`
	ReminderTime    string     `json:"reminder_time,omitempty"` // HH:MM format
	ReminderEnabled bool       `json:"reminder_enabled"`
	Difficulty      Difficulty `json:"difficulty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Streak returns the habit's stored streak fields.
func (h Habit) Streak() StreakState {
	return StreakState{Current: h.CurrentStreak, Longest: h.LongestStreak}
}
