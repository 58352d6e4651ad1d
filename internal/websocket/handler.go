// Package websocket streams live page updates to browsers. Pages connect with
// the htmx ws extension; every message is a set of out-of-band swaps.
package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/hub"
	"github.com/nfrund/folio/internal/middleware"
)

const (
	defaultSendBuffer   = 16
	defaultWriteTimeout = 10 * time.Second
)

// Handler upgrades requests to websocket connections subscribed to a hub.
type Handler struct {
	hub            *hub.Hub
	originPatterns []string
	sendBuffer     int
	writeTimeout   time.Duration
}

// NewHandler creates a Handler. originPatterns lists the hosts allowed to
// connect cross-origin; same-origin pages are always accepted.
func NewHandler(h *hub.Hub, originPatterns ...string) *Handler {
	return &Handler{
		hub:            h,
		originPatterns: originPatterns,
		sendBuffer:     defaultSendBuffer,
		writeTimeout:   defaultWriteTimeout,
	}
}

// Serve is the echo handler for GET /ws. It blocks for the lifetime of the
// connection. Client messages are ignored.
func (h *Handler) Serve(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		logger.Warn("Failed to upgrade connection to WebSocket", "error", err)
		// Accept has already written the HTTP error response.
		return nil
	}

	cl := &client{
		id:           uuid.NewString(),
		conn:         conn,
		sub:          hub.NewSubscriber(h.sendBuffer),
		writeTimeout: h.writeTimeout,
		logger:       logger,
	}
	if !h.hub.Join(cl.sub) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return nil
	}
	cl.logger.Info("Live page connected", "client_id", cl.id)

	// CloseRead discards client frames and cancels ctx when the peer goes away.
	ctx := conn.CloseRead(c.Request().Context())
	err = cl.writePump(ctx)
	h.hub.Leave(cl.sub)

	switch {
	case err == nil:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	case errors.Is(err, context.Canceled),
		websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
		conn.CloseNow()
	default:
		cl.logger.Warn("WebSocket write error", "client_id", cl.id, "error", err)
		conn.Close(websocket.StatusInternalError, "write failed")
	}
	cl.logger.Info("Live page disconnected", "client_id", cl.id)
	return nil
}

// Count returns the number of live pages connected through the hub.
func (h *Handler) Count() int {
	return h.hub.Count()
}
