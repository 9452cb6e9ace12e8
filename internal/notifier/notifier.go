package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/julianstephens/habitup/internal/constants"
)

type Type string

const (
	TypeHabitCompleted  Type = "habit_completed"
	TypeStreakMilestone Type = "streak_milestone"
)

// Notification is the payload pushed to an owner after a habit event.
type Notification struct {
	Type          Type      `json:"type"`
	OwnerID       string    `json:"owner_id"`
	HabitID       string    `json:"habit_id"`
	HabitName     string    `json:"habit_name"`
	Message       string    `json:"message"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	SentAt        time.Time `json:"sent_at"`
}

// Notifier delivers notifications to one owner. Implementations must not block
// longer than the context allows.
type Notifier interface {
	Notify(ctx context.Context, ownerID string, n Notification) error
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ownerID string, n Notification) error {
	var errs []error
	for _, target := range m {
		if target == nil {
			continue
		}
		if err := target.Notify(ctx, ownerID, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, Notification) error { return nil }

var httpClient = &http.Client{Timeout: constants.NotifyTimeout}

func postJSON(ctx context.Context, url, secret string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(constants.SecretHeader, secret)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
