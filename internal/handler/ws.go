package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"tradesim/internal/domain"
	"tradesim/internal/engine"
	"tradesim/internal/service"
)

const (
	// writeWait is the deadline for a single WebSocket write.
	writeWait = 10 * time.Second
	// pingPeriod must be shorter than the client's pong timeout.
	pingPeriod = 54 * time.Second
	// sendBufferSize bounds the outbound frame queue per client.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is handled at the router level; accept any origin here.
		return true
	},
}

var (
	errClientGone     = errors.New("client connection closed")
	errSendBufferFull = errors.New("client send buffer full")
)

// actionMessage is the inbound WebSocket message format.
type actionMessage struct {
	Type string `json:"type"`
	Data struct {
		UUID string `json:"uuid"`
	} `json:"data"`
}

// SocketHandler serves the per-session duplex channel at /trader/{uuid}.
type SocketHandler struct {
	registry *service.Registry
	logger   *slog.Logger
}

// NewSocketHandler creates a new SocketHandler.
func NewSocketHandler(registry *service.Registry, logger *slog.Logger) *SocketHandler {
	return &SocketHandler{registry: registry, logger: logger}
}

// Serve upgrades the connection and runs the session channel: an immediate
// success frame with the current snapshot, then a read loop dispatching
// inbound actions until the client disconnects. Connecting starts the
// session's liquidity generator; disconnecting stops it.
func (h *SocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "trader_uuid")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	sess, err := h.registry.Get(sessionID)
	if err != nil {
		// The original contract: accept the upgrade, then report the
		// unknown id as an error frame and close.
		_ = conn.WriteJSON(envelope{Status: "error", Message: "Trader not found", Data: struct{}{}})
		conn.Close()
		return
	}

	client := newWSClient(conn)
	go client.writePump()

	defer func() {
		sess.StopUpdates()
		client.close()
	}()

	sess.StartUpdates(r.Context(), client)

	h.logger.Info("trader connected", slog.String("session_id", sess.ID))

	if err := client.sendFrame(snapshotFrame(frameSuccess, "Connected to trader", sess.Engine.Snapshot(),
		map[string]string{"trader_uuid": sess.ID})); err != nil {
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", slog.String("error", err.Error()))
			}
			h.logger.Info("trader disconnected", slog.String("session_id", sess.ID))
			return
		}
		h.handleMessage(sess, client, raw)
	}
}

// handleMessage dispatches one inbound action. Malformed messages and
// unknown order ids are reported back on the channel and never terminate
// the session.
func (h *SocketHandler) handleMessage(sess *service.Session, client *wsClient, raw []byte) {
	var msg actionMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.logger.Warn("malformed message", slog.String("session_id", sess.ID), slog.String("error", err.Error()))
		h.reply(sess, client, frameError, "invalid message format")
		return
	}

	if strategy, ok := engine.ParseStrategy(msg.Type); ok {
		if _, placed := sess.Engine.PlaceStrategic(strategy); !placed {
			// Aggressive action against an empty counter-side: dropped by
			// policy, no error surfaced.
			h.logger.Debug("strategy dropped", slog.String("session_id", sess.ID), slog.String("strategy", msg.Type))
		}
		h.reply(sess, client, frameUpdate, "")
		return
	}

	switch msg.Type {
	case "cancel":
		if err := sess.Engine.Cancel(msg.Data.UUID); err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				h.reply(sess, client, frameError, "Order not found")
				return
			}
		}
		h.reply(sess, client, frameUpdate, "")
	default:
		h.logger.Warn("unknown action type", slog.String("session_id", sess.ID), slog.String("type", msg.Type))
		h.reply(sess, client, frameError, "unknown action type")
	}
}

// reply sends a snapshot-bearing frame of the given type to the client.
func (h *SocketHandler) reply(sess *service.Session, client *wsClient, typ, message string) {
	if err := client.sendFrame(snapshotFrame(typ, message, sess.Engine.Snapshot(), nil)); err != nil {
		h.logger.Warn("send frame failed", slog.String("session_id", sess.ID), slog.String("error", err.Error()))
	}
}

// wsClient is the write side of one WebSocket connection. A single
// writePump goroutine serializes frames from the read loop and the
// liquidity generator.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		closed: make(chan struct{}),
	}
}

// BroadcastUpdate implements engine.Broadcaster: the generator pushes
// snapshots through the same outbound queue as action replies.
func (c *wsClient) BroadcastUpdate(snap engine.Snapshot) error {
	return c.sendFrame(snapshotFrame(frameUpdate, "", snap, nil))
}

// sendFrame marshals a frame and enqueues it for the write pump. Returns
// an error when the client is gone or its queue is full, so callers (the
// generator in particular) can stop instead of writing into the void.
func (c *wsClient) sendFrame(frame wsFrame) error {
	msg, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	select {
	case <-c.closed:
		return errClientGone
	case c.send <- msg:
		return nil
	default:
		return errSendBufferFull
	}
}

// writePump drains the send queue onto the connection and keeps the
// connection alive with pings. It owns all writes to the socket.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.closed:
			_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

// close marks the client gone. Idempotent; safe from any goroutine.
func (c *wsClient) close() {
	c.closeOnce.Do(func() { close(c.closed) })
}
