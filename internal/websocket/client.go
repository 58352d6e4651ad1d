package websocket

import (
	"context"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/nfrund/folio/internal/hub"
)

// client couples one websocket connection with its hub subscription.
type client struct {
	id           string
	conn         *websocket.Conn
	sub          *hub.Subscriber
	writeTimeout time.Duration
	logger       *slog.Logger
}

// writePump copies fragments from the hub to the connection until the hub
// closes the subscription, ctx ends or a write fails.
func (c *client) writePump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case message, ok := <-c.sub.Send:
			if !ok {
				return nil
			}
			writeCtx, cancel := context.WithTimeout(ctx, c.writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}
