// Package transport is the event source: it holds the websocket connection
// to the chat server, decodes inbound frames, and feeds them to the
// reconciler one at a time. Reconnection, buffering, and redelivery live
// here; the engine itself never blocks or performs I/O.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat-sync/contract"
	"chat-sync/wire"
)

type Client struct {
	url            string
	token          string
	engine         contract.Reconciler
	log            *slog.Logger
	dialer         *websocket.Dialer
	reconnectDelay time.Duration
}

func NewClient(url, token string, engine contract.Reconciler, log *slog.Logger,
	reconnectDelay time.Duration) *Client {
	return &Client{
		url:            url,
		token:          token,
		engine:         engine,
		log:            log,
		dialer:         websocket.DefaultDialer,
		reconnectDelay: reconnectDelay,
	}
}

// Run keeps one session alive at a time, reconnecting after the delay.
// Events are applied in arrival order within a session; across sessions the
// server redelivers, which the engine's idempotent handlers absorb.
func (c *Client) Run(ctx context.Context) error {
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			c.log.Debug("Context done, stopping transport")
			return nil
		}
		c.log.Warn("Connection lost, reconnecting", "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.reconnectDelay):
		}
	}
}

func (c *Client) session(ctx context.Context) error {
	connID := uuid.New()

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() {
		_ = conn.Close()
	}()

	// Unblock ReadMessage when the context is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	c.log.Info("Connected to chat server", "url", c.url, "connection", connID.String())

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		c.handleFrame(ctx, raw)
	}
}

// handleFrame contains every failure at the single-event boundary: an
// unknown tag, a malformed payload, or a rejected event is logged and
// dropped, and the read loop carries on with the projection intact.
func (c *Client) handleFrame(ctx context.Context, raw []byte) {
	env, err := wire.ParseEnvelope(raw)
	if err != nil {
		c.log.Warn("Dropping unreadable frame", "error", err)
		return
	}

	if env.Handler == wire.WsHandler && env.Action == wire.ActionSetWsID {
		c.bootstrap(ctx, raw)
		return
	}

	evt, err := wire.Decode(raw)
	if err != nil {
		c.log.Warn("Dropping frame", "handler", env.Handler, "action", env.Action, "error", err)
		return
	}
	if err := c.engine.Apply(ctx, evt); err != nil {
		c.log.Warn("Event rejected", "kind", evt.Kind(), "error", err)
	}
}

// bootstrap feeds the connect-time frame to the bulk sync operations:
// the server's full room, user, and presence view.
func (c *Client) bootstrap(ctx context.Context, raw []byte) {
	dto, err := wire.DecodeBootstrap(raw)
	if err != nil {
		c.log.Warn("Dropping bootstrap frame", "error", err)
		return
	}
	c.engine.SetUsers(ctx, dto.Users)
	c.engine.SetRooms(ctx, dto.Rooms)
	c.engine.SetOnline(ctx, wire.ToUserIDs(dto.Online))
	c.log.Info(fmt.Sprintf("Synced %d rooms, %d users, %d online",
		len(dto.Rooms), len(dto.Users), len(dto.Online)))
}
