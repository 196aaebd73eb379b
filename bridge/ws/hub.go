// Package ws forwards input events to browser UI glue over WebSocket.
//
// Messages are JSON text frames with an envelope: {type, ts, data}. The
// first frame on every connection is "hello", carrying the active device. Slow clients are disconnected when their send buffer fills;
// the input loop never waits on the network.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/user-none/padnav/input"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 20 * time.Second
)

// envelope is the wire format envelope for WS messages.
type envelope struct {
	Type string `json:"type"`
	Ts   *int64 `json:"ts,omitempty"` // frame timestamp in ms
	Data any    `json:"data,omitempty"`
}

type navData struct {
	Dir    string `json:"dir"`
	Mode   string `json:"mode"`
	Source string `json:"source"`
}

type sourceData struct {
	Source string `json:"source"`
}

type helloData struct {
	Active string `json:"active"`
}

// Subscriber is the part of input.Coordinator the hub listens on.
type Subscriber interface {
	Subscribe(kind input.EventKind, h input.Handler) (unsubscribe func())
}

// HubConfig sizes the hub queues. Zero values use conservative defaults.
type HubConfig struct {
	// SendBuf is the per-client outbound queue size.
	SendBuf int
	// BroadcastBuf is the hub inbound broadcast queue size.
	BroadcastBuf int
	// CheckOrigin is passed to the upgrader. nil allows same-origin only.
	CheckOrigin func(r *http.Request) bool
	// Active reports the authoritative device for the hello frame. It is
	// called from HTTP handler goroutines. nil uses the source of the last
	// published event.
	Active func() input.Source
}

// Hub tracks connected clients and fans events out to them.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	broadcast chan []byte

	mu      sync.Mutex
	clients map[*client]struct{}

	sendBuf  int
	activeFn func() input.Source
	last     atomic.Int32 // input.Source of the last published event
}

// NewHub constructs a hub. Call Run(ctx) to start it.
func NewHub(logger *slog.Logger, cfg HubConfig) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sendBuf := cfg.SendBuf
	if sendBuf <= 0 {
		sendBuf = 32
	}
	bcastBuf := cfg.BroadcastBuf
	if bcastBuf <= 0 {
		bcastBuf = 128
	}
	return &Hub{
		logger:    logger,
		upgrader:  websocket.Upgrader{CheckOrigin: cfg.CheckOrigin},
		broadcast: make(chan []byte, bcastBuf),
		clients:   make(map[*client]struct{}),
		sendBuf:   sendBuf,
		activeFn:  cfg.Active,
	}
}

// Attach subscribes the hub to every event kind. The returned func detaches.
func (h *Hub) Attach(sub Subscriber) (detach func()) {
	unsubs := []func(){
		sub.Subscribe(input.EventNav, h.Publish),
		sub.Subscribe(input.EventSelect, h.Publish),
		sub.Subscribe(input.EventBack, h.Publish),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Publish queues e for every client. It never blocks; when the hub is
// backed up the event is dropped.
func (h *Hub) Publish(e input.Event) {
	h.last.Store(int32(e.Source))

	msg, err := encodeEvent(e)
	if err != nil {
		h.logger.Warn("ws encode failed", "event", e.Kind, "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Debug("ws broadcast queue full, dropping event", "event", e.Kind)
	}
}

func encodeEvent(e input.Event) ([]byte, error) {
	ts := e.At.Milliseconds()
	env := envelope{Type: e.Kind.String(), Ts: &ts}
	switch e.Kind {
	case input.EventNav:
		env.Data = navData{Dir: e.Dir.String(), Mode: e.Mode.String(), Source: e.Source.String()}
	default:
		env.Data = sourceData{Source: e.Source.String()}
	}
	return json.Marshal(env)
}

// Run fans queued messages out until ctx is done, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				h.dropLocked(c)
			}
			h.mu.Unlock()
			return

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Info("ws client too slow, disconnecting", "remote_addr", c.remoteAddr)
					h.dropLocked(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and starts the client's pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Info("ws upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, h.sendBuf),
		remoteAddr: r.RemoteAddr,
	}

	hello, err := json.Marshal(envelope{
		Type: "hello",
		Data: helloData{Active: h.activeSource().String()},
	})
	if err != nil {
		conn.Close()
		return
	}
	// Register before queueing hello so a client that has read hello is
	// guaranteed to receive every later broadcast.
	h.mu.Lock()
	h.clients[c] = struct{}{}
	c.send <- hello
	h.mu.Unlock()

	h.logger.Info("ws client connected", "remote_addr", c.remoteAddr)
	go c.writePump()
	go c.readPump()
}

func (h *Hub) activeSource() input.Source {
	if h.activeFn != nil {
		return h.activeFn()
	}
	return input.Source(h.last.Load())
}

type client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
}

// closeStatus extracts a websocket close code / text when possible.
func closeStatus(err error) (code int, text string, ok bool) {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Code, ce.Text, true
	}
	return 0, "", false
}

// writePump writes queued messages and pings. It exits on write error or
// when send is closed by the hub.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed: hub is disconnecting us.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logExit("write error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logExit("ping error", err)
				return
			}
		}
	}
}

// readPump discards inbound messages to detect disconnects and handle
// control frames, then unregisters the client.
func (c *client) readPump() {
	defer c.hub.drop(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logExit("read error", err)
			}
			return
		}
	}
}

func (c *client) logExit(reason string, err error) {
	if errors.Is(err, websocket.ErrCloseSent) {
		return
	}
	if code, text, ok := closeStatus(err); ok {
		c.hub.logger.Info("ws client closed", "remote_addr", c.remoteAddr, "code", code, "reason", text)
		return
	}
	c.hub.logger.Info("ws client exiting", "remote_addr", c.remoteAddr, "reason", reason, "error", err)
}
