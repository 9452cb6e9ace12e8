// Package suggest ranks habit templates against the categories an owner already covers.
package suggest

import (
	"sort"

	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/models"
)

// MaxSuggestions caps the ranked output.
const MaxSuggestions = constants.MaxSuggestions

// Rank scores every template HIGH when its category is missing from existing and
// LOW otherwise, then orders by priority and difficulty. Ties keep catalog order.
// The result holds at most MaxSuggestions entries.
func Rank(existing map[models.Category]bool, catalog []models.HabitTemplate) []models.Suggestion {
	out := make([]models.Suggestion, 0, len(catalog))
	for _, t := range catalog {
		p := models.PriorityHigh
		if existing[t.Category] {
			p = models.PriorityLow
		}
		out = append(out, models.Suggestion{HabitTemplate: t, Priority: p})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority == models.PriorityHigh
		}
		return out[i].Difficulty.Rank() < out[j].Difficulty.Rank()
	})

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// Set converts categories to a lookup set.
func Set(categories []models.Category) map[models.Category]bool {
	set := make(map[models.Category]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return set
}
