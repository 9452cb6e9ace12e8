package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/models"
)

// HabitInput carries the owner-editable habit fields. Nil pointers keep the
// current value on update and take the default on create.
type HabitInput struct {
	Name            *string
	Description     *string
	Category        *models.Category
	Difficulty      *models.Difficulty
	TargetDays      *int
	ReminderTime    *string
	ReminderEnabled *bool
	Active          *bool
}

func (in HabitInput) apply(h *models.Habit) {
	if in.Name != nil {
		h.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		h.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		h.Category = *in.Category
	}
	if in.Difficulty != nil {
		h.Difficulty = *in.Difficulty
	}
	if in.TargetDays != nil {
		h.TargetDays = *in.TargetDays
	}
	if in.ReminderTime != nil {
		h.ReminderTime = strings.TrimSpace(*in.ReminderTime)
	}
	if in.ReminderEnabled != nil {
		h.ReminderEnabled = *in.ReminderEnabled
	}
	if in.Active != nil {
		h.Active = *in.Active
	}
}

func validateHabit(h models.Habit) error {
	if h.Name == "" {
		return fmt.Errorf("%w: habit name is required", ErrInvalidInput)
	}
	if !h.Category.Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidInput, h.Category)
	}
	if !h.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty %q", ErrInvalidInput, h.Difficulty)
	}
	if h.TargetDays < 1 || h.TargetDays > constants.MaxTargetDays {
		return fmt.Errorf("%w: target days must be 1-%d, got %d", ErrInvalidInput, constants.MaxTargetDays, h.TargetDays)
	}
	if h.ReminderTime != "" {
		if _, err := time.Parse(constants.TimeFormat, h.ReminderTime); err != nil {
			return fmt.Errorf("%w: reminder time %q must be HH:MM", ErrInvalidInput, h.ReminderTime)
		}
	}
	if h.ReminderEnabled && h.ReminderTime == "" {
		return fmt.Errorf("%w: reminder enabled without a reminder time", ErrInvalidInput)
	}
	return nil
}

func (s *Service) CreateHabit(ctx context.Context, ownerID string, in HabitInput) (models.Habit, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return models.Habit{}, err
	}

	now := s.now()
	h := models.Habit{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Category:   models.CategoryOther,
		Difficulty: models.DifficultyMedium,
		TargetDays: constants.DefaultTargetDays,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	in.apply(&h)
	if err := validateHabit(h); err != nil {
		return models.Habit{}, err
	}

	if err := s.store.AddHabit(ctx, h); err != nil {
		return models.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}
	logger.Info("Created habit", "habit", h.ID, "owner", ownerID, "category", h.Category)
	return h, nil
}

func (s *Service) GetHabit(ctx context.Context, ownerID, habitID string) (models.Habit, error) {
	return s.ownedHabit(ctx, ownerID, habitID)
}

func (s *Service) ListHabits(ctx context.Context, ownerID string) ([]models.Habit, error) {
	if _, err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.store.ListHabits(ctx, ownerID)
}

func (s *Service) UpdateHabit(ctx context.Context, ownerID, habitID string, in HabitInput) (models.Habit, error) {
	h, err := s.ownedHabit(ctx, ownerID, habitID)
	if err != nil {
		return models.Habit{}, err
	}
	in.apply(&h)
	if err := validateHabit(h); err != nil {
		return models.Habit{}, err
	}
	h.UpdatedAt = s.now()

	if err := s.store.UpdateHabit(ctx, h); err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit: %w", err)
	}
	return h, nil
}

// DeleteHabit removes the habit together with its completion records.
func (s *Service) DeleteHabit(ctx context.Context, ownerID, habitID string) error {
	if _, err := s.ownedHabit(ctx, ownerID, habitID); err != nil {
		return err
	}
	if err := s.store.DeleteHabit(ctx, habitID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	logger.Info("Deleted habit", "habit", habitID, "owner", ownerID)
	return nil
}
