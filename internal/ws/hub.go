package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go-ferreteria-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
)

const broadcastBuffer = 64

// Event is the envelope every websocket client receives.
type Event struct {
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Hub struct {
	Clients    map[Conn]bool
	Register   chan Conn
	Unregister chan Conn
	Broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	logg       *logger.Logger
}

func NewHub(logg *logger.Logger) *Hub {
	return &Hub{
		Clients:    make(map[Conn]bool),
		Register:   make(chan Conn),
		Unregister: make(chan Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		logg:       logg,
	}
}

// Run pumps registrations and broadcasts until ctx is cancelled, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for conn := range h.Clients {
				_ = conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.logg.Debug(ctx, "ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// ClientCount reports the connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish queues an event for every client. It never blocks: when the
// buffer is full the event is dropped and logged. A nil hub is a no-op.
func (h *Hub) Publish(eventType, action string, data any) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(Event{
		Type:      eventType,
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logg.Error(context.Background(), "ws event marshal failed", err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.logg.Warn(context.Background(), "ws broadcast buffer full, dropping event")
	}
}

// Serve keeps a websocket connection registered until the client goes away.
// Clients only listen; anything they send is discarded.
func (h *Hub) Serve(c *websocket.Conn) {
	select {
	case h.Register <- c:
	case <-h.done:
		return
	}
	defer func() {
		select {
		case h.Unregister <- c:
		case <-h.done:
		}
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
