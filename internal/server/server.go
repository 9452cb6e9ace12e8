// Package server exposes the tracker over a JSON HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitup/internal/auth"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/notifier"
	"github.com/julianstephens/habitup/internal/storage"
	"github.com/julianstephens/habitup/internal/tracker"
)

// Deps are the collaborators a Server needs. All are required.
type Deps struct {
	Tracker  *tracker.Service
	Store    storage.Provider
	Issuer   *auth.Issuer
	Registry *notifier.Registry
}

type Server struct {
	tracker  *tracker.Service
	store    storage.Provider
	issuer   *auth.Issuer
	registry *notifier.Registry
	validate *validator.Validate
	engine   *gin.Engine

	// heartbeat is the idle interval between SSE keep-alives.
	heartbeat time.Duration
}

func New(d Deps) *Server {
	s := &Server{
		tracker:   d.Tracker,
		store:     d.Store,
		issuer:    d.Issuer,
		registry:  d.Registry,
		validate:  newValidator(),
		heartbeat: 25 * time.Second,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// HTTPServer wraps the handler with conservative timeouts. WriteTimeout is left
// unset so event streams stay open.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.POST("/signup", s.signup)
	api.POST("/login", s.login)

	protected := api.Group("/")
	protected.Use(s.authenticate())
	{
		protected.GET("/me", s.me)

		protected.GET("/habits", s.listHabits)
		protected.POST("/habits", s.createHabit)
		protected.GET("/habits/:habitId", s.getHabit)
		protected.PUT("/habits/:habitId", s.updateHabit)
		protected.DELETE("/habits/:habitId", s.deleteHabit)
		protected.POST("/habits/:habitId/complete", s.markComplete)
		protected.GET("/habits/:habitId/progress", s.progress)
		protected.GET("/habits/:habitId/analytics", s.analytics)

		protected.GET("/suggestions", s.suggestions)
		protected.GET("/events", s.events)

		protected.GET("/thoughts/today", s.todaysThought)
		protected.GET("/thoughts/random", s.randomThought)
		protected.GET("/thoughts", s.listThoughts)
		protected.POST("/thoughts", authorize(models.RoleAdmin), s.createThought)

		protected.POST("/feedback", s.submitFeedback)
		protected.GET("/feedback", s.listFeedback)
	}
	return r
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.Health(c.Request.Context()); err != nil {
		fail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"status": "ok", "online": s.registry.Count()})
}
