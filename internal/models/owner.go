package models

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Owner is the account habits and completion records belong to
type Owner struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// DailyThought is a short motivational note shown to owners
type DailyThought struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       string    `json:"author,omitempty"`
	Category     string    `json:"category"`
	ScheduledDay string    `json:"scheduled_day,omitempty"` // YYYY-MM-DD format
	Active       bool      `json:"active"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type FeedbackType string

const (
	FeedbackGeneral        FeedbackType = "GENERAL"
	FeedbackBugReport      FeedbackType = "BUG_REPORT"
	FeedbackFeatureRequest FeedbackType = "FEATURE_REQUEST"
	FeedbackAppReview      FeedbackType = "APP_REVIEW"
)

func (f FeedbackType) Valid() bool {
	switch f {
	case FeedbackGeneral, FeedbackBugReport, FeedbackFeatureRequest, FeedbackAppReview:
		return true
	}
	return false
}

type FeedbackTarget string

const (
	TargetHabit   FeedbackTarget = "HABIT"
	TargetApp     FeedbackTarget = "APP"
	TargetSupport FeedbackTarget = "SUPPORT"
)

func (t FeedbackTarget) Valid() bool {
	switch t {
	case TargetHabit, TargetApp, TargetSupport:
		return true
	}
	return false
}

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "PENDING"
	FeedbackReviewed FeedbackStatus = "REVIEWED"
	FeedbackResolved FeedbackStatus = "RESOLVED"
)

// Feedback is a message an owner submits about a habit or the app
type Feedback struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id,omitempty"`
	Type        FeedbackType   `json:"type"`
	TargetType  FeedbackTarget `json:"target_type,omitempty"`
	TargetID    string         `json:"target_id,omitempty"`
	Subject     string         `json:"subject"`
	Message     string         `json:"message"`
	Rating      *int           `json:"rating,omitempty"`
	Status      FeedbackStatus `json:"status"`
	Anonymous   bool           `json:"anonymous"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// Validate checks the closed-set fields and the rating range.
func (f Feedback) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("invalid feedback type: %s", f.Type)
	}
	if f.TargetType != "" && !f.TargetType.Valid() {
		return fmt.Errorf("invalid feedback target: %s", f.TargetType)
	}
	if strings.TrimSpace(f.Subject) == "" || strings.TrimSpace(f.Message) == "" {
		return fmt.Errorf("feedback subject and message are required")
	}
	if f.Rating != nil && (*f.Rating < 1 || *f.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5, got %d", *f.Rating)
	}
	return nil
}
