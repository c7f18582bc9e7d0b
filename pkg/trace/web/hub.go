// Package web broadcasts execution traces to websocket clients.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// sendBuffer is the number of messages queued per client before
	// the client is considered too slow and dropped.
	sendBuffer = 256
	writeWait  = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub accepts websocket connections and broadcasts every trace written
// to it as a JSON object. It implements trace.Sink and http.Handler.
type Hub struct {
	clients map[*client]bool
	mu      sync.RWMutex

	broadcast            chan []byte
	register, unregister chan *client
	done                 chan struct{}
	closeOnce            sync.Once

	log log.Logger
}

// NewHub returns a Hub. Run must be called for it to deliver traces.
func NewHub(l log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        l,
	}
}

// ServeHTTP upgrades the request to a websocket connection and
// subscribes it to the broadcast.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	h.log.Debugf("web: %s connected", r.RemoteAddr)

	go c.readPump()
	go c.writePump()
}

// Run delivers broadcasts until ctx is cancelled, then disconnects
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeOnce.Do(func() { close(h.done) })

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// too slow to keep up
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Write queues t for every connected client. Traces are dropped rather
// than blocking the emulation when the queue is full.
func (h *Hub) Write(t cpu.Trace) error {
	b, err := json.Marshal(t.Fields())
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- b:
	default:
	}
	return nil
}

// Close is a no-op, the hub is stopped by cancelling the context
// passed to Run.
func (h *Hub) Close() error {
	return nil
}
