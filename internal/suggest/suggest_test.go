package suggest

import (
	"reflect"
	"testing"

	"github.com/julianstephens/habitup/internal/models"
)

func names(s []models.Suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Name
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 24 {
		t.Fatalf("expected 24 templates, got %d", len(catalog))
	}
	for _, tpl := range catalog {
		if !tpl.Category.Valid() {
			t.Errorf("template %q has invalid category %q", tpl.Name, tpl.Category)
		}
		if !tpl.Difficulty.Valid() {
			t.Errorf("template %q has invalid difficulty %q", tpl.Name, tpl.Difficulty)
		}
	}
}

func TestRankNoExistingHabits(t *testing.T) {
	got := Rank(nil, DefaultCatalog())

	want := []string{
		"Drink 8 glasses of water",
		"Take vitamins",
		"Stretch for 10 minutes",
		"Plan tomorrow today",
		"Organize workspace",
		"Write in gratitude journal",
		"Practice deep breathing",
		"Learn a new word",
		"Listen to educational podcast",
		"Write in journal",
	}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
	for _, s := range got {
		if s.Priority != models.PriorityHigh {
			t.Errorf("expected HIGH priority for %q, got %s", s.Name, s.Priority)
		}
	}
}

func TestRankMissingCategoryFirst(t *testing.T) {
	existing := Set([]models.Category{
		models.CategoryHealthFitness,
		models.CategoryProductivity,
		models.CategoryMindfulness,
		models.CategoryLearning,
	})
	got := Rank(existing, DefaultCatalog())

	want := []string{
		"Call family/friends",
		"Compliment someone",
		"Practice active listening",
		"Random act of kindness",
		"Drink 8 glasses of water",
		"Take vitamins",
		"Stretch for 10 minutes",
		"Plan tomorrow today",
		"Organize workspace",
		"Write in gratitude journal",
	}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("expected %v, got %v", want, names(got))
	}
	for i, s := range got {
		wantPriority := models.PriorityLow
		if i < 4 {
			wantPriority = models.PriorityHigh
		}
		if s.Priority != wantPriority {
			t.Errorf("position %d: expected %s, got %s", i, wantPriority, s.Priority)
		}
	}
}

func TestRankDeterministic(t *testing.T) {
	existing := Set([]models.Category{models.CategorySocial})
	first := Rank(existing, DefaultCatalog())
	second := Rank(existing, DefaultCatalog())
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
}

func TestRankPriorityOrdering(t *testing.T) {
	existing := Set([]models.Category{models.CategoryLearning})
	got := Rank(existing, DefaultCatalog())

	seenLow := false
	for _, s := range got {
		if s.Priority == models.PriorityLow {
			seenLow = true
			continue
		}
		if seenLow {
			t.Fatalf("HIGH priority %q ranked after a LOW priority template", s.Name)
		}
	}
}

func TestRankTruncation(t *testing.T) {
	tests := []struct {
		name    string
		catalog []models.HabitTemplate
		want    int
	}{
		{"empty", nil, 0},
		{"short", DefaultCatalog()[:3], 3},
		{"exact", DefaultCatalog()[:10], 10},
		{"long", DefaultCatalog(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Rank(nil, tt.catalog)); got != tt.want {
				t.Errorf("expected %d suggestions, got %d", tt.want, got)
			}
		})
	}
}

func TestRankStableOnTies(t *testing.T) {
	catalog := []models.HabitTemplate{
		{Name: "b", Category: models.CategoryOther, Difficulty: models.DifficultyHard},
		{Name: "a", Category: models.CategoryOther, Difficulty: models.DifficultyEasy},
		{Name: "c", Category: models.CategoryOther, Difficulty: models.DifficultyEasy},
	}
	got := names(Rank(nil, catalog))
	want := []string{"a", "c", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
