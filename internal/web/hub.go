package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is an event sent by a WebSocket client.
type clientMessage struct {
	Type       string `json:"type"` // "move", "difficulty", "restart" or "state"
	Direction  string `json:"direction,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// serverMessage is pushed to every client watching a session.
type serverMessage struct {
	Type   string           `json:"type"` // "state", "error" or "closed"
	ID     string           `json:"id,omitempty"`
	State  *maze.Snapshot   `json:"state,omitempty"`
	Result *maze.MoveResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// client is one WebSocket connection bound to a session.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub tracks WebSocket clients per session so state changes made over HTTP
// reach every open socket for that session.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*client]struct{}
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*client]struct{}),
		logger:   logger,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[c.sessionID] == nil {
		h.sessions[c.sessionID] = make(map[*client]struct{})
	}
	h.sessions[c.sessionID][c] = struct{}{}
	h.logger.Debug("websocket client registered", "session", c.sessionID, "clients", len(h.sessions[c.sessionID]))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	clients, ok := h.sessions[c.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}
	h.logger.Debug("websocket client unregistered", "session", c.sessionID, "clients", len(clients))
}

// Broadcast sends msg to every client of the session. Clients whose send
// buffer is full are dropped.
func (h *Hub) Broadcast(sessionID string, msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot marshal websocket message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.sessions[sessionID] {
		select {
		case c.send <- data:
		default:
			h.removeLocked(c)
		}
	}
}

// CloseSession notifies and disconnects every client of a session.
func (h *Hub) CloseSession(sessionID string) {
	h.Broadcast(sessionID, serverMessage{Type: "closed", ID: sessionID})

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.sessions[sessionID] {
		h.removeLocked(c)
	}
}

// Clients returns the number of sockets open for a session.
func (h *Hub) Clients(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}

// readPump reads client events until the connection closes. Each event is
// handed to handle, which applies it and broadcasts the new state.
func (c *client) readPump(handle func(clientMessage)) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read failed", "session", c.sessionID, "error", err)
			}
			return
		}
		handle(msg)
	}
}

// writePump forwards queued messages to the connection and keeps it alive
// with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendTo queues a message for one client only.
func (h *Hub) sendTo(c *client, msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[c.sessionID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		h.removeLocked(c)
	}
}
