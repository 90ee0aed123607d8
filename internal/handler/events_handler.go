package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/aventureros/clubsync-api/internal/repository"
)

// EventsHandler streams local store change notifications as server-sent
// events. The dashboard re-queries whichever table it hears about instead
// of polling.
type EventsHandler struct {
	notifier *repository.Notifier
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(notifier *repository.Notifier) *EventsHandler {
	return &EventsHandler{notifier: notifier}
}

// Stream godoc
// @Summary Table-change feed for reactive dashboard reads
// @Tags Events
// @Produce text/event-stream
// @Success 200 {string} string
// @Router /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	events, cancel := h.notifier.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	done := c.Request.Context().Done()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-done:
			return false
		case table, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", gin.H{"table": table})
			return true
		}
	})
}
