// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package preview

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is pushed to connected preview surfaces whenever the current
// resource rotates. Kind is "refresh" (Token carries the new resource) or
// "empty" (all buffers were cleared).
type Event struct {
	Kind  string `json:"kind"`
	Token string `json:"token,omitempty"`
}

// hubConn pairs a websocket connection with its write lock. Gorilla
// supports at most one concurrent writer per connection, and rotation
// events for one client can arrive from concurrent requests.
type hubConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *hubConn) write(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteJSON(ev)
}

// Hub tracks the websocket connections of open preview surfaces, grouped
// by client, and fans rotation events out to them.
type Hub struct {
	mu       sync.Mutex
	conns    map[uuid.UUID]map[*hubConn]struct{}
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[uuid.UUID]map[*hubConn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The preview page is served by this same host; cross-origin
			// websocket access is not needed.
			CheckOrigin: func(r *http.Request) bool { return r.Header.Get("Origin") == "" || sameHost(r) },
		},
	}
}

func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// Serve upgrades the request and keeps the connection registered until the
// peer goes away. The read loop only consumes control frames; the preview
// surface never sends data messages.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("preview websocket upgrade failed", "error", err)
		return
	}

	hc := &hubConn{conn: conn}

	h.mu.Lock()
	if h.conns[clientID] == nil {
		h.conns[clientID] = make(map[*hubConn]struct{})
	}
	h.conns[clientID][hc] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns[clientID], hc)
		if len(h.conns[clientID]) == 0 {
			delete(h.conns, clientID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// NotifyRefresh implements Notifier.
func (h *Hub) NotifyRefresh(clientID uuid.UUID, token string) {
	h.broadcast(clientID, Event{Kind: "refresh", Token: token})
}

// NotifyEmpty implements Notifier.
func (h *Hub) NotifyEmpty(clientID uuid.UUID) {
	h.broadcast(clientID, Event{Kind: "empty"})
}

func (h *Hub) broadcast(clientID uuid.UUID, ev Event) {
	h.mu.Lock()
	conns := make([]*hubConn, 0, len(h.conns[clientID]))
	for hc := range h.conns[clientID] {
		conns = append(conns, hc)
	}
	h.mu.Unlock()

	for _, hc := range conns {
		if err := hc.write(ev); err != nil {
			slog.Debug("preview websocket write failed", "error", err)
			hc.conn.Close()
		}
	}
}
