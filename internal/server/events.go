package server

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitup/internal/logger"
)

// events streams the caller's notifications as server-sent events until the
// client disconnects or a newer connection for the same owner replaces it.
func (s *Server) events(c *gin.Context) {
	owner := ownerID(c)
	sub, cancel := s.registry.Subscribe(owner)
	defer cancel()
	logger.Debug("Event stream opened", "owner", owner, "online", s.registry.Count())

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("connected", gin.H{"owner_id": owner})
	c.Writer.Flush()

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case n, open := <-sub.C:
			if !open {
				return false
			}
			c.SSEvent(string(n.Type), n)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})
	logger.Debug("Event stream closed", "owner", owner)
}
