package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

type thoughtRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Content      string `json:"content" validate:"required,max=2000"`
	Author       string `json:"author" validate:"max=100"`
	Category     string `json:"category" validate:"omitempty,max=50"`
	ScheduledDay string `json:"scheduled_day" validate:"omitempty,day"`
	Active       *bool  `json:"active"`
}

type feedbackRequest struct {
	Type       string `json:"type" validate:"required,oneof=GENERAL BUG_REPORT FEATURE_REQUEST APP_REVIEW"`
	TargetType string `json:"target_type" validate:"omitempty,oneof=HABIT APP SUPPORT"`
	TargetID   string `json:"target_id" validate:"max=64"`
	Subject    string `json:"subject" validate:"required,max=200"`
	Message    string `json:"message" validate:"required,max=2000"`
	Rating     *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Anonymous  bool   `json:"anonymous"`
}

// todaysThought prefers a thought scheduled for today and falls back to the
// most recent active one.
func (s *Server) todaysThought(c *gin.Context) {
	ctx := c.Request.Context()
	t, err := s.store.GetThoughtForDay(ctx, models.FormatDay(s.tracker.Today()))
	if errors.Is(err, storage.ErrNotFound) {
		t, err = s.store.GetLatestThought(ctx)
	}
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", t)
}

func (s *Server) randomThought(c *gin.Context) {
	t, err := s.store.GetLatestThought(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", t)
}

// listThoughts shows inactive thoughts to admins only.
func (s *Server) listThoughts(c *gin.Context) {
	activeOnly := claimsFrom(c).Role != models.RoleAdmin
	thoughts, err := s.store.ListThoughts(c.Request.Context(), activeOnly)
	if err != nil {
		abort(c, err)
		return
	}
	if thoughts == nil {
		thoughts = []models.DailyThought{}
	}
	ok(c, http.StatusOK, "", thoughts)
}

func (s *Server) createThought(c *gin.Context) {
	var req thoughtRequest
	if err := s.bind(c, &req, false); err != nil {
		abort(c, err)
		return
	}
	t := models.DailyThought{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Content:      strings.TrimSpace(req.Content),
		Author:       strings.TrimSpace(req.Author),
		Category:     strings.ToUpper(strings.TrimSpace(req.Category)),
		ScheduledDay: req.ScheduledDay,
		Active:       req.Active == nil || *req.Active,
		CreatedBy:    ownerID(c),
		CreatedAt:    time.Now().UTC(),
	}
	if t.Category == "" {
		t.Category = "MOTIVATION"
	}
	if err := s.store.AddThought(c.Request.Context(), t); err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusCreated, "thought created", t)
}

func (s *Server) submitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := s.bind(c, &req, false); err != nil {
		abort(c, err)
		return
	}
	fb := models.Feedback{
		ID:          uuid.NewString(),
		Type:        models.FeedbackType(req.Type),
		TargetType:  models.FeedbackTarget(req.TargetType),
		TargetID:    req.TargetID,
		Subject:     strings.TrimSpace(req.Subject),
		Message:     strings.TrimSpace(req.Message),
		Rating:      req.Rating,
		Status:      models.FeedbackPending,
		Anonymous:   req.Anonymous,
		SubmittedAt: time.Now().UTC(),
	}
	if !req.Anonymous {
		fb.OwnerID = ownerID(c)
	}
	if err := fb.Validate(); err != nil {
		abort(c, badRequestf("%v", err))
		return
	}
	if err := s.store.AddFeedback(c.Request.Context(), fb); err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusCreated, "thank you for your feedback", fb)
}

// listFeedback returns the caller's own feedback, or everything for admins.
func (s *Server) listFeedback(c *gin.Context) {
	claims := claimsFrom(c)
	filter := claims.OwnerID
	if claims.Role == models.RoleAdmin {
		filter = ""
	}
	items, err := s.store.ListFeedback(c.Request.Context(), filter)
	if err != nil {
		abort(c, err)
		return
	}
	if items == nil {
		items = []models.Feedback{}
	}
	ok(c, http.StatusOK, "", items)
}
