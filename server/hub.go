package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sporadisk/selfcare/journal"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024
	sendBufferSize = 16
)

const TypeRefresh = "refresh"

// Message is what travels over the refresh channel.
type Message struct {
	Type      string        `json:"type"`
	Topic     journal.Topic `json:"topic,omitempty"`
	Timestamp string        `json:"timestamp,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is meant for a local browser UI.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient is one connected browser.
type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub tells every connected browser when a list should be refetched.
type Hub struct {
	logger *slog.Logger

	mu         sync.RWMutex
	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	started    chan struct{}
	done       chan struct{}
	startOnce  sync.Once
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		started:    make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start runs the hub in the background until ctx is done, then disconnects
// everyone. Connections are refused until Start is called. Later calls do
// nothing.
func (h *Hub) Start(ctx context.Context) {
	h.startOnce.Do(func() {
		close(h.started)
		go h.run(ctx)
	})
}

func (h *Hub) run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("ws client connected", "total", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("ws client disconnected", "total", h.ClientCount())

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client buffer is full, drop the connection.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Refresh announces that topic changed.
func (h *Hub) Refresh(topic journal.Topic) {
	h.send(Message{
		Type:      TypeRefresh,
		Topic:     topic,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("ws marshal", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("ws broadcast buffer full, dropping message", "type", msg.Type)
	}
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.running() {
		http.Error(w, "refresh channel is not running", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade", "error", err)
		return
	}

	client := &wsClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) running() bool {
	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case <-h.started:
		return true
	default:
		return false
	}
}

// readPump only keeps the connection alive; browsers have nothing to say.
func (c *wsClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("ws read", "error", err)
			}
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			err := c.conn.WriteMessage(websocket.TextMessage, message)
			if err != nil {
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
