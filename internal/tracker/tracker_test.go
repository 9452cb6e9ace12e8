package tracker

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/notifier"
	"github.com/julianstephens/habitup/internal/storage"
)

type fakeStore struct {
	mu      sync.Mutex
	owners  map[string]models.Owner
	habits  map[string]models.Habit
	records map[string]models.CompletionRecord // keyed by owner|habit|day
	fetches []storage.RecordFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		owners:  map[string]models.Owner{},
		habits:  map[string]models.Habit{},
		records: map[string]models.CompletionRecord{},
	}
}

func (f *fakeStore) GetOwner(_ context.Context, id string) (models.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.owners[id]
	if !ok {
		return models.Owner{}, storage.ErrNotFound
	}
	return o, nil
}

func (f *fakeStore) AddHabit(_ context.Context, h models.Habit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.habits[h.ID] = h
	return nil
}

func (f *fakeStore) GetHabit(_ context.Context, id string) (models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.habits[id]
	if !ok {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (f *fakeStore) ListHabits(_ context.Context, ownerID string) ([]models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Habit
	for _, h := range f.habits {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	habits, _ := f.ListHabits(ctx, ownerID)
	seen := map[models.Category]bool{}
	var out []models.Category
	for _, h := range habits {
		if !seen[h.Category] {
			seen[h.Category] = true
			out = append(out, h.Category)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateHabit(_ context.Context, h models.Habit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.habits[h.ID]
	if !ok {
		return storage.ErrNotFound
	}
	h.CurrentStreak, h.LongestStreak = cur.CurrentStreak, cur.LongestStreak
	f.habits[h.ID] = h
	return nil
}

func (f *fakeStore) UpdateStreak(_ context.Context, id string, state models.StreakState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.habits[id]
	if !ok {
		return storage.ErrNotFound
	}
	h.CurrentStreak, h.LongestStreak = state.Current, state.Longest
	f.habits[id] = h
	return nil
}

func (f *fakeStore) DeleteHabit(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.habits[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.habits, id)
	for k, r := range f.records {
		if r.HabitID == id {
			delete(f.records, k)
		}
	}
	return nil
}

func (f *fakeStore) UpsertRecord(_ context.Context, r models.CompletionRecord) (models.CompletionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := r.OwnerID + "|" + r.HabitID + "|" + r.Day
	if cur, ok := f.records[key]; ok {
		r.ID, r.CreatedAt = cur.ID, cur.CreatedAt
	}
	f.records[key] = r
	return r, nil
}

func (f *fakeStore) FetchRecords(_ context.Context, ownerID, habitID string, filter storage.RecordFilter) ([]models.CompletionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, filter)
	var out []models.CompletionRecord
	for _, r := range f.records {
		if r.OwnerID != ownerID || r.HabitID != habitID {
			continue
		}
		if filter.Since != "" && r.Day < filter.Since {
			continue
		}
		if filter.Until != "" && r.Day > filter.Until {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeNotifier struct {
	sent []notifier.Notification
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, _ string, note notifier.Notification) error {
	n.sent = append(n.sent, note)
	return n.err
}

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *fakeStore, *fakeNotifier) {
	t.Helper()
	store := newFakeStore()
	store.owners["owner-1"] = models.Owner{ID: "owner-1", Email: "a@example.com", Role: models.RoleUser}
	store.owners["owner-2"] = models.Owner{ID: "owner-2", Email: "b@example.com", Role: models.RoleUser}
	store.habits["habit-1"] = models.Habit{
		ID: "habit-1", OwnerID: "owner-1", Name: "Read", Category: models.CategoryLearning,
		Difficulty: models.DifficultyEasy, TargetDays: 21, Active: true,
	}
	n := &fakeNotifier{}
	svc := New(store,
		WithNotifier(n),
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
	)
	return svc, store, n
}

func seedDays(store *fakeStore, habitID string, status models.CompletionStatus, days ...string) {
	for _, d := range days {
		store.records["owner-1|"+habitID+"|"+d] = models.CompletionRecord{
			ID: d, OwnerID: "owner-1", HabitID: habitID, Day: d, Status: status,
		}
	}
}

func TestMarkCompleteDefaults(t *testing.T) {
	svc, store, n := setup(t)
	seedDays(store, "habit-1", models.StatusCompleted, "2025-03-08", "2025-03-09")

	state, err := svc.MarkComplete(context.Background(), "owner-1", "habit-1", MarkInput{})
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if state.Current != 3 || state.Longest != 3 {
		t.Errorf("expected 3/3, got %d/%d", state.Current, state.Longest)
	}

	rec, ok := store.records["owner-1|habit-1|2025-03-10"]
	if !ok {
		t.Fatal("expected record for today")
	}
	if rec.Status != models.StatusCompleted || rec.TimeOfDay != "12:00:00" {
		t.Errorf("unexpected defaults: %+v", rec)
	}
	if h := store.habits["habit-1"]; h.CurrentStreak != 3 || h.LongestStreak != 3 {
		t.Errorf("streak not persisted: %d/%d", h.CurrentStreak, h.LongestStreak)
	}
	if len(n.sent) != 1 || n.sent[0].Type != notifier.TypeHabitCompleted {
		t.Errorf("expected one habit_completed notification, got %+v", n.sent)
	}

	last := store.fetches[len(store.fetches)-1]
	if last.Limit != 365 || last.Until != "2025-03-10" {
		t.Errorf("expected bounded fetch, got %+v", last)
	}
}

func TestMarkCompleteMilestone(t *testing.T) {
	svc, store, n := setup(t)
	seedDays(store, "habit-1", models.StatusCompleted,
		"2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07", "2025-03-08", "2025-03-09")

	state, err := svc.MarkComplete(context.Background(), "owner-1", "habit-1", MarkInput{})
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if state.Current != 7 {
		t.Fatalf("expected 7-day streak, got %d", state.Current)
	}
	if len(n.sent) != 2 || n.sent[1].Type != notifier.TypeStreakMilestone || n.sent[1].CurrentStreak != 7 {
		t.Errorf("expected milestone notification, got %+v", n.sent)
	}
}

func TestMarkCompleteKeepsPriorLongest(t *testing.T) {
	svc, store, _ := setup(t)
	h := store.habits["habit-1"]
	h.LongestStreak = 40
	store.habits["habit-1"] = h

	state, err := svc.MarkComplete(context.Background(), "owner-1", "habit-1", MarkInput{})
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if state.Current != 1 || state.Longest != 40 {
		t.Errorf("expected 1/40, got %d/%d", state.Current, state.Longest)
	}
}

func TestMarkCompleteNonCompletedToday(t *testing.T) {
	svc, store, n := setup(t)
	seedDays(store, "habit-1", models.StatusCompleted, "2025-03-08", "2025-03-09")

	state, err := svc.MarkComplete(context.Background(), "owner-1", "habit-1", MarkInput{Status: models.StatusPartial})
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if state.Current != 0 || state.Longest != 2 {
		t.Errorf("expected 0/2, got %d/%d", state.Current, state.Longest)
	}
	if len(n.sent) != 0 {
		t.Errorf("expected no notifications for a partial day, got %d", len(n.sent))
	}
}

func TestMarkCompleteOverwritesSameDay(t *testing.T) {
	svc, store, _ := setup(t)
	ctx := context.Background()

	if _, err := svc.MarkComplete(ctx, "owner-1", "habit-1", MarkInput{Status: models.StatusMissed}); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	state, err := svc.MarkComplete(ctx, "owner-1", "habit-1", MarkInput{})
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if state.Current != 1 {
		t.Errorf("expected streak 1 after overwrite, got %d", state.Current)
	}
	if len(store.records) != 1 {
		t.Errorf("expected one record, got %d", len(store.records))
	}
}

func TestMarkCompleteErrors(t *testing.T) {
	svc, store, _ := setup(t)
	ctx := context.Background()
	bad := 11

	tests := []struct {
		name    string
		owner   string
		habit   string
		in      MarkInput
		wantErr error
	}{
		{"unknown habit", "owner-1", "nope", MarkInput{}, ErrHabitNotFound},
		{"other owner's habit", "owner-2", "habit-1", MarkInput{}, ErrHabitNotFound},
		{"effort out of range", "owner-1", "habit-1", MarkInput{Effort: &bad}, models.ErrMalformedRecord},
		{"bad status", "owner-1", "habit-1", MarkInput{Status: "DONE"}, models.ErrMalformedRecord},
		{"bad mood", "owner-1", "habit-1", MarkInput{Mood: "HAPPY"}, models.ErrMalformedRecord},
		{"bad day", "owner-1", "habit-1", MarkInput{Day: "03/10/2025"}, models.ErrMalformedRecord},
		{"future day", "owner-1", "habit-1", MarkInput{Day: "2025-03-11"}, ErrInvalidInput},
		{"bad time of day", "owner-1", "habit-1", MarkInput{TimeOfDay: "banana"}, models.ErrMalformedRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MarkComplete(ctx, tt.owner, tt.habit, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
	if len(store.records) != 0 {
		t.Errorf("expected no records written, got %d", len(store.records))
	}
}

func TestMarkCompleteFutureDayNotBanked(t *testing.T) {
	svc, store, n := setup(t)
	ctx := context.Background()

	for _, day := range []string{"2025-03-11", "2025-03-12", "2025-03-13"} {
		if _, err := svc.MarkComplete(ctx, "owner-1", "habit-1", MarkInput{Day: day}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %s, got %v", day, err)
		}
	}
	if len(store.records) != 0 || len(n.sent) != 0 {
		t.Fatalf("expected nothing stored or sent, got %d records and %d notifications", len(store.records), len(n.sent))
	}

	later := New(store, WithClock(func() time.Time { return fixedNow.AddDate(0, 0, 3) }), WithLocation(time.UTC))
	state, err := later.RecomputeStreak(ctx, "owner-1", "habit-1")
	if err != nil {
		t.Fatalf("RecomputeStreak failed: %v", err)
	}
	if state.Current != 0 {
		t.Errorf("expected no streak without completions, got %d", state.Current)
	}

	// Today in the service location is still accepted.
	if _, err := svc.MarkComplete(ctx, "owner-1", "habit-1", MarkInput{Day: "2025-03-10"}); err != nil {
		t.Errorf("expected today to be accepted, got %v", err)
	}
}

func TestMarkCompleteNotifierFailureIgnored(t *testing.T) {
	svc, _, n := setup(t)
	n.err = errors.New("webhook down")

	if _, err := svc.MarkComplete(context.Background(), "owner-1", "habit-1", MarkInput{}); err != nil {
		t.Errorf("expected notifier failure to be swallowed, got %v", err)
	}
}

func TestMarkCompleteUsesLocation(t *testing.T) {
	store := newFakeStore()
	store.owners["owner-1"] = models.Owner{ID: "owner-1"}
	store.habits["habit-1"] = models.Habit{ID: "habit-1", OwnerID: "owner-1", Name: "Walk"}

	// 03:00 UTC is still the previous evening eight hours west.
	svc := New(store,
		WithClock(func() time.Time { return time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC) }),
		WithLocation(time.FixedZone("UTC-8", -8*3600)),
	)
	if _, err := svc.MarkComplete(context.Background(), "owner-1", "habit-1", MarkInput{}); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if _, ok := store.records["owner-1|habit-1|2025-03-09"]; !ok {
		t.Errorf("expected record on local day 2025-03-09, got %v", store.records)
	}
}

func TestRecomputeStreak(t *testing.T) {
	svc, store, n := setup(t)
	seedDays(store, "habit-1", models.StatusCompleted, "2025-03-07", "2025-03-08", "2025-03-09")

	state, err := svc.RecomputeStreak(context.Background(), "owner-1", "habit-1")
	if err != nil {
		t.Fatalf("RecomputeStreak failed: %v", err)
	}
	if state.Current != 3 || state.Longest != 3 {
		t.Errorf("expected 3/3, got %d/%d", state.Current, state.Longest)
	}
	if len(n.sent) != 0 {
		t.Error("recompute must not notify")
	}
}

func TestAnalyticsWindow(t *testing.T) {
	svc, store, _ := setup(t)
	ctx := context.Background()
	seedDays(store, "habit-1", models.StatusCompleted, "2025-03-09", "2025-03-10", "2024-01-01")

	for _, days := range []int{0, -5, 366} {
		if _, err := svc.Analytics(ctx, "owner-1", "habit-1", days); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %d: expected ErrInvalidWindow, got %v", days, err)
		}
		if _, err := svc.Progress(ctx, "owner-1", "habit-1", days); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %d: expected ErrInvalidWindow from Progress, got %v", days, err)
		}
	}

	report, err := svc.Analytics(ctx, "owner-1", "habit-1", 7)
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if report.Counts.Completed != 2 || report.Counts.Total != 2 {
		t.Errorf("expected 2 completed records in window, got %+v", report.Counts)
	}
	if len(report.WeeklyBreakdown) != 1 {
		t.Errorf("expected 1 weekly bucket, got %d", len(report.WeeklyBreakdown))
	}
	if len(report.DayOfWeekStats) != 7 {
		t.Errorf("expected 7 weekday entries, got %d", len(report.DayOfWeekStats))
	}
}

func TestAnalyticsEmptyHabit(t *testing.T) {
	svc, _, _ := setup(t)
	report, err := svc.Analytics(context.Background(), "owner-1", "habit-1", 30)
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if report.CompletionRate != 0 || report.Counts.Total != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestProgress(t *testing.T) {
	svc, store, _ := setup(t)
	seedDays(store, "habit-1", models.StatusCompleted, "2025-03-09", "2025-03-10")
	seedDays(store, "habit-1", models.StatusMissed, "2025-03-08")

	report, err := svc.Progress(context.Background(), "owner-1", "habit-1", 10)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if report.Counts.Completed != 2 || report.Counts.Missed != 1 {
		t.Errorf("unexpected counts: %+v", report.Counts)
	}
	if report.CompletionRate != 20 {
		t.Errorf("expected 20%% completion, got %v", report.CompletionRate)
	}
	if len(report.Records) != 3 || report.Records[0].Day != "2025-03-10" {
		t.Errorf("unexpected records: %+v", report.Records)
	}
}

func TestSuggestions(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	report, err := svc.Suggestions(ctx, "owner-1")
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if report.UserHabitCount != 1 {
		t.Errorf("expected 1 habit, got %d", report.UserHabitCount)
	}
	if len(report.CategoriesCovered) != 1 || report.CategoriesCovered[0] != models.CategoryLearning {
		t.Errorf("unexpected categories: %v", report.CategoriesCovered)
	}
	if len(report.Suggestions) != 10 {
		t.Fatalf("expected 10 suggestions, got %d", len(report.Suggestions))
	}
	for _, s := range report.Suggestions {
		if s.Category == models.CategoryLearning {
			t.Errorf("did not expect LEARNING suggestion %q ahead of uncovered categories", s.Name)
		}
		if s.Priority != models.PriorityHigh {
			t.Errorf("expected HIGH priority, got %s", s.Priority)
		}
	}

	if _, err := svc.Suggestions(ctx, "ghost"); !errors.Is(err, ErrOwnerNotFound) {
		t.Errorf("expected ErrOwnerNotFound, got %v", err)
	}
}

func TestSuggestionsCustomCatalog(t *testing.T) {
	store := newFakeStore()
	store.owners["owner-1"] = models.Owner{ID: "owner-1", Role: models.RoleUser}
	store.habits["habit-1"] = models.Habit{ID: "habit-1", OwnerID: "owner-1", Name: "Run", Category: models.CategoryHealthFitness, Active: true}

	catalog := []models.HabitTemplate{
		{Name: "Stretch", Category: models.CategoryHealthFitness, Difficulty: models.DifficultyEasy},
		{Name: "Journal", Category: models.CategoryMindfulness, Difficulty: models.DifficultyHard},
		{Name: "Budget", Category: models.CategoryCreativity, Difficulty: models.DifficultyEasy},
	}
	svc := New(store, WithCatalog(catalog))

	report, err := svc.Suggestions(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	var names []string
	for _, s := range report.Suggestions {
		names = append(names, s.Name)
	}
	want := []string{"Budget", "Journal", "Stretch"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected order %v, got %v", want, names)
	}
	if report.Suggestions[2].Priority != models.PriorityLow {
		t.Errorf("expected covered category to rank LOW, got %s", report.Suggestions[2].Priority)
	}
}

func TestHabitCRUD(t *testing.T) {
	svc, store, _ := setup(t)
	ctx := context.Background()
	name := "  Meditate  "
	cat := models.CategoryMindfulness

	h, err := svc.CreateHabit(ctx, "owner-1", HabitInput{Name: &name, Category: &cat})
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if h.Name != "Meditate" || h.Difficulty != models.DifficultyMedium || h.TargetDays != 21 || !h.Active {
		t.Errorf("unexpected defaults: %+v", h)
	}

	reminder := "07:30"
	enabled := true
	updated, err := svc.UpdateHabit(ctx, "owner-1", h.ID, HabitInput{ReminderTime: &reminder, ReminderEnabled: &enabled})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if updated.ReminderTime != "07:30" || !updated.ReminderEnabled || updated.Name != "Meditate" {
		t.Errorf("unexpected update: %+v", updated)
	}

	habits, err := svc.ListHabits(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 2 {
		t.Errorf("expected 2 habits, got %d", len(habits))
	}

	if err := svc.DeleteHabit(ctx, "owner-2", h.ID); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound deleting another owner's habit, got %v", err)
	}
	if err := svc.DeleteHabit(ctx, "owner-1", h.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if _, ok := store.habits[h.ID]; ok {
		t.Error("expected habit to be removed")
	}
}

func TestCreateHabitValidation(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	empty := ""
	name := "Run"
	badCat := models.Category("SPORTS")
	zero := 0
	badTime := "7pm"
	enabled := true

	tests := []struct {
		name    string
		owner   string
		in      HabitInput
		wantErr error
	}{
		{"missing name", "owner-1", HabitInput{Name: &empty}, ErrInvalidInput},
		{"bad category", "owner-1", HabitInput{Name: &name, Category: &badCat}, ErrInvalidInput},
		{"zero target", "owner-1", HabitInput{Name: &name, TargetDays: &zero}, ErrInvalidInput},
		{"bad reminder", "owner-1", HabitInput{Name: &name, ReminderTime: &badTime}, ErrInvalidInput},
		{"reminder without time", "owner-1", HabitInput{Name: &name, ReminderEnabled: &enabled}, ErrInvalidInput},
		{"unknown owner", "ghost", HabitInput{Name: &name}, ErrOwnerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateHabit(ctx, tt.owner, tt.in); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
