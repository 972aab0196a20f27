package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	sendBuffer = 16
)

// Client is one websocket connection observing a session. Only the write
// pump writes to conn.
type Client struct {
	key  string
	conn *websocket.Conn
	send chan []byte
}

// NewClient wraps an upgraded connection.
func NewClient(key string, conn *websocket.Conn) *Client {
	return &Client{key: key, conn: conn, send: make(chan []byte, sendBuffer)}
}

// Upgrader builds the websocket upgrader for the allowed origins. An empty
// list accepts any origin.
func Upgrader(allowedOrigins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowed) == 0 || allowed[origin]
		},
	}
}

// Serve registers the client and pumps messages until the peer goes away.
// initial, when non-nil, is sent before any event.
func (h *Hub) Serve(c *Client, initial any) {
	if initial != nil {
		if msg, err := json.Marshal(initial); err == nil {
			// The queue is empty, so this cannot block.
			c.send <- msg
		}
	}
	h.Register(c)

	done := make(chan struct{})
	go func() {
		c.writePump(h.log)
		close(done)
	}()
	c.readPump()

	h.Unregister(c)
	<-done
	c.conn.Close()
}

// readPump discards inbound messages and returns on close or error.
func (c *Client) readPump() {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump(log *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				c.conn.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug("Realtime write failed", zap.String("session", c.key), zap.Error(err))
				c.conn.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}
