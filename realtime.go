package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	wsPingInterval = 25 * time.Second
	wsWriteWait    = 10 * time.Second
	wsSendBuffer   = 16
)

// dailyUpdate is pushed to subscribers whenever a daily record changes.
type dailyUpdate struct {
	Type  string      `json:"type"`
	Date  string      `json:"date"`
	Daily dailyRecord `json:"daily"`
}

// dailyClient is one websocket subscriber. Only its writer goroutine touches
// conn for writes; send is closed by the hub on unregister.
type dailyClient struct {
	conn *websocket.Conn
	send chan []byte
}

// dailyHub fans daily-record updates out to websocket subscribers.
// A nil *dailyHub is valid and drops every update.
type dailyHub struct {
	mu      sync.RWMutex
	clients map[*dailyClient]struct{}
}

func newDailyHub() *dailyHub {
	return &dailyHub{clients: make(map[*dailyClient]struct{})}
}

func (h *dailyHub) register(c *dailyClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *dailyHub) unregister(c *dailyClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// count returns the number of connected subscribers.
func (h *dailyHub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// publish sends r to every subscriber. Subscribers whose buffer is full are
// disconnected rather than blocking the request that changed the record.
func (h *dailyHub) publish(r dailyRecord) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(dailyUpdate{Type: "daily", Date: r.Date, Daily: r})
	if err != nil {
		log.Error().Err(err).Str("date", r.Date).Msg("encode daily update")
		return
	}

	var slow []*dailyClient
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Msg("dropping slow websocket subscriber")
		h.unregister(c)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveDailyUpdates upgrades to a websocket and streams dailyUpdate messages.
// GET /api/ws/daily. Incoming messages are read only to detect disconnects.
func (h *Handler) serveDailyUpdates(c *gin.Context) {
	if h.hub == nil {
		apiError(c, http.StatusServiceUnavailable, "realtime updates are disabled")
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &dailyClient{conn: conn, send: make(chan []byte, wsSendBuffer)}
	h.hub.register(client)
	log.Debug().Int("subscribers", h.hub.count()).Msg("websocket subscriber connected")

	go writeLoop(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.hub.unregister(client)
			return
		}
	}
}

// writeLoop owns all writes to the connection and closes it when send is
// closed or a write fails.
func writeLoop(c *dailyClient) {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
