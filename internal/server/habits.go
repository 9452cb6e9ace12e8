package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/tracker"
)

type habitRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
	Category        *string `json:"category" validate:"omitempty,category"`
	Difficulty      *string `json:"difficulty" validate:"omitempty,difficulty"`
	TargetDays      *int    `json:"target_days" validate:"omitempty,min=1,max=365"`
	ReminderTime    *string `json:"reminder_time" validate:"omitempty,hhmm"`
	ReminderEnabled *bool   `json:"reminder_enabled"`
	Active          *bool   `json:"active"`
}

func (r habitRequest) input() tracker.HabitInput {
	in := tracker.HabitInput{
		Name:            r.Name,
		Description:     r.Description,
		TargetDays:      r.TargetDays,
		ReminderTime:    r.ReminderTime,
		ReminderEnabled: r.ReminderEnabled,
		Active:          r.Active,
	}
	// Both were checked by the validator.
	if r.Category != nil {
		cat, _ := models.ParseCategory(*r.Category)
		in.Category = &cat
	}
	if r.Difficulty != nil {
		d, _ := models.ParseDifficulty(*r.Difficulty)
		in.Difficulty = &d
	}
	return in
}

type completeRequest struct {
	Day       string `json:"day" validate:"omitempty,day"`
	Status    string `json:"status" validate:"omitempty,oneof=COMPLETED PARTIAL MISSED SKIPPED"`
	TimeOfDay string `json:"time_of_day" validate:"omitempty,hhmmss"`
	Mood      string `json:"mood" validate:"omitempty,oneof=EXCELLENT GOOD NEUTRAL BAD TERRIBLE"`
	Effort    *int   `json:"effort" validate:"omitempty,min=1,max=10"`
	Notes     string `json:"notes" validate:"max=1000"`
}

type completeResponse struct {
	Streak    models.StreakState `json:"streak"`
	Milestone bool               `json:"milestone"`
}

func (s *Server) listHabits(c *gin.Context) {
	habits, err := s.tracker.ListHabits(c.Request.Context(), ownerID(c))
	if err != nil {
		abort(c, err)
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	ok(c, http.StatusOK, "", habits)
}

func (s *Server) createHabit(c *gin.Context) {
	var req habitRequest
	if err := s.bind(c, &req, false); err != nil {
		abort(c, err)
		return
	}
	if req.Name == nil {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}
	h, err := s.tracker.CreateHabit(c.Request.Context(), ownerID(c), req.input())
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusCreated, "habit created", h)
}

func (s *Server) getHabit(c *gin.Context) {
	h, err := s.tracker.GetHabit(c.Request.Context(), ownerID(c), c.Param("habitId"))
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", h)
}

func (s *Server) updateHabit(c *gin.Context) {
	var req habitRequest
	if err := s.bind(c, &req, false); err != nil {
		abort(c, err)
		return
	}
	h, err := s.tracker.UpdateHabit(c.Request.Context(), ownerID(c), c.Param("habitId"), req.input())
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "habit updated", h)
}

func (s *Server) deleteHabit(c *gin.Context) {
	if err := s.tracker.DeleteHabit(c.Request.Context(), ownerID(c), c.Param("habitId")); err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "habit deleted", nil)
}

func (s *Server) markComplete(c *gin.Context) {
	var req completeRequest
	if err := s.bind(c, &req, true); err != nil {
		abort(c, err)
		return
	}
	state, err := s.tracker.MarkComplete(c.Request.Context(), ownerID(c), c.Param("habitId"), tracker.MarkInput{
		Day:       req.Day,
		Status:    models.CompletionStatus(req.Status),
		TimeOfDay: req.TimeOfDay,
		Mood:      models.Mood(req.Mood),
		Effort:    req.Effort,
		Notes:     req.Notes,
	})
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "completion recorded", completeResponse{
		Streak:    state,
		Milestone: constants.IsMilestone(state.Current),
	})
}

func (s *Server) progress(c *gin.Context) {
	days, err := queryInt(c, "days", constants.DefaultProgressDays, 1)
	if err != nil {
		abort(c, err)
		return
	}
	report, err := s.tracker.Progress(c.Request.Context(), ownerID(c), c.Param("habitId"), days)
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", report)
}

func (s *Server) analytics(c *gin.Context) {
	days, err := queryInt(c, "timeRange", constants.DefaultAnalyticsDays, constants.MinAnalyticsWindowDays)
	if err != nil {
		abort(c, err)
		return
	}
	report, err := s.tracker.Analytics(c.Request.Context(), ownerID(c), c.Param("habitId"), days)
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", report)
}

func (s *Server) suggestions(c *gin.Context) {
	report, err := s.tracker.Suggestions(c.Request.Context(), ownerID(c))
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", report)
}

// queryInt reads an integer query parameter bounded to [floor, MaxWindowDays].
func queryInt(c *gin.Context, key string, def, floor int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < floor || n > constants.MaxWindowDays {
		return 0, badRequestf("%s must be an integer between %d and %d", key, floor, constants.MaxWindowDays)
	}
	return n, nil
}
