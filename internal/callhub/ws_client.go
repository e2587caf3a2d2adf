package callhub

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// SDP offers run to several kilobytes; leave generous headroom.
	maxMessageSize = 64 * 1024

	outboundBuffer = 256
)

// WebSocketClient is the gorilla/websocket implementation of Client.
type WebSocketClient struct {
	id   string
	conn *websocket.Conn
	hub  *Hub

	send chan models.Outbound
	done chan struct{}
	once sync.Once
}

// NewWebSocketClient wraps an upgraded connection. The connection id is
// assigned here and lives only as long as the socket.
func NewWebSocketClient(hub *Hub, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		id:   uuid.New().String(),
		conn: conn,
		hub:  hub,
		send: make(chan models.Outbound, outboundBuffer),
		done: make(chan struct{}),
	}
}

func (c *WebSocketClient) ID() string                       { return c.id }
func (c *WebSocketClient) Outbound() chan<- models.Outbound { return c.send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close stops the write pump; delivery already queued for other
// connections is unaffected.
func (c *WebSocketClient) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.HandleDisconnect(c)
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from client %s: %v", c.id, err)
			}
			break
		}
		// Events from one connection are handled in order, one at a
		// time, which is all the ordering WebRTC negotiation needs.
		c.hub.HandleRaw(context.Background(), c, message)
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case out := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(out); err != nil {
				log.Printf("error writing to client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
