package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/revenue_split_app/internal/events"
	"github.com/SscSPs/revenue_split_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const eventStreamBuffer = 16

type eventsHandler struct {
	broker *events.Broker
}

func registerEventRoutes(rg *gin.RouterGroup, broker *events.Broker) {
	h := &eventsHandler{broker: broker}
	rg.GET("/events", h.stream)
}

// stream pushes broadcast events to the caller as server-sent events.
// Currency changes are only delivered to the subject that made them.
func (h *eventsHandler) stream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ch, cancel := h.broker.Subscribe(eventStreamBuffer)
	defer cancel()
	logger.Info("Event stream opened",
		slog.String("user_id", userID),
		slog.Int("subscribers", h.broker.SubscriberCount()))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-ch:
			if !open {
				return false
			}
			if ev.Type == events.CurrencyChanged && ev.Subject != userID {
				return true
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	cancel()
	logger.Info("Event stream closed",
		slog.String("user_id", userID),
		slog.Int("subscribers", h.broker.SubscriberCount()))
}
