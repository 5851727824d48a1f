/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mfreeman451/datalogger/pkg/models"
)

const (
	defaultClientBuffer = 16
	writeWait           = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub pushes every logged record to the connected stream clients. A client
// that falls behind by more than its buffer is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	buffer  int
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub returns a Hub that queues up to buffer records per client.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}

	return &Hub{
		clients: make(map[*client]struct{}),
		buffer:  buffer,
	}
}

// OnRecord queues rec for every client.
func (h *Hub) OnRecord(_ context.Context, rec *models.LogRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("Dropping slow stream client %s", c.conn.RemoteAddr())
			h.removeLocked(c)
		}
	}

	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// ServeHTTP upgrades the request and streams records until the client
// goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading stream connection: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.buffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.readPump(c)

	h.writePump(c)
}

// readPump discards client messages and notices disconnects.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer func() {
		h.remove(c)

		if err := c.conn.Close(); err != nil {
			log.Printf("Error closing stream connection: %v", err)
		}
	}()

	for msg := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("Error writing to stream client: %v", err)
			return
		}
	}

	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")

	if err := c.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		log.Printf("Error sending close to stream client: %v", err)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.removeLocked(c)
	}
}
