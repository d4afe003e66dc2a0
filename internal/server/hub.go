package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bust-studio/internal/controls"
	"bust-studio/internal/logger"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the panel may be opened from a file or another port
	},
}

// Hub fans panel state out to every connected control panel and forwards their messages.
// All socket writes happen with mu held, so each connection has one writer at a time.
type Hub struct {
	send func(controls.Message) bool
	log  *logger.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn][]byte // last state written to each client
	latest  []byte
	notify  chan struct{}
}

// NewHub returns a hub that hands inbound messages to send (typically Binder.Send).
func NewHub(send func(controls.Message) bool, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.New("")
	}
	return &Hub{
		send:    send,
		log:     log,
		clients: make(map[*websocket.Conn][]byte),
		notify:  make(chan struct{}, 1),
	}
}

// Publish records st as the latest state. Only the newest state is kept; Run broadcasts it.
func (h *Hub) Publish(st controls.PanelState) {
	data, err := json.Marshal(st)
	if err != nil {
		h.log.Errorf("hub: marshal state: %v", err)
		return
	}
	h.mu.Lock()
	same := bytes.Equal(data, h.latest)
	if !same {
		h.latest = data
	}
	h.mu.Unlock()
	if same {
		return
	}
	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// Run broadcasts published state until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil
		case <-h.notify:
			h.broadcast()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return
	}
	for c, last := range h.clients {
		if bytes.Equal(last, h.latest) {
			continue
		}
		if err := h.write(c, h.latest); err != nil {
			h.log.Debugf("hub: write: %v", err)
			c.Close()
			delete(h.clients, c)
			continue
		}
		h.clients[c] = h.latest
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		c.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) write(c *websocket.Conn, data []byte) error {
	c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteMessage(websocket.TextMessage, data)
}

// ServeWS upgrades the request, sends the current state and reads control messages until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("hub: upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = nil
	if h.latest != nil {
		if err := h.write(conn, h.latest); err != nil {
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
			return
		}
		h.clients[conn] = h.latest
	}
	h.mu.Unlock()
	h.log.Debugf("hub: client connected from %s (%d connected)", r.RemoteAddr, h.Clients())

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
		h.log.Debugf("hub: client disconnected (%d connected)", h.Clients())
	}()

	conn.SetReadLimit(4096)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg controls.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debugf("hub: bad message %q: %v", data, err)
			continue
		}
		if msg.Control == "" && msg.Action == "" {
			continue
		}
		if h.send != nil {
			h.send(msg)
		}
	}
}
