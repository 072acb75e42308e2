package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// Client is one WebSocket connection. Outbound frames go through a bounded
// buffer drained by a single writer goroutine.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once

	// rooms is guarded by Hub.mu.
	rooms map[string]struct{}

	logger logging.Logger
}

func newClient(id string, conn *websocket.Conn, buffer int, logger logging.Logger) *Client {
	if buffer <= 0 {
		buffer = 64
	}
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, buffer),
		done:   make(chan struct{}),
		rooms:  make(map[string]struct{}),
		logger: logger.With("client_id", id),
	}
}

func (c *Client) ID() string { return c.id }

// Send queues a frame without blocking. It reports false when the client is
// closed or its buffer is full, in which case the frame is dropped.
func (c *Client) Send(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn(context.Background(), "send buffer full, frame dropped", "buffered", len(c.send))
		return false
	}
}

func (c *Client) close() {
	c.once.Do(func() { close(c.done) })
}

// readPump delivers inbound text frames to handle until the connection
// fails or is closed.
func (c *Client) readPump(handle func([]byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Warn(context.Background(), "connection read failed", "error", err)
			}
			return
		}
		handle(data)
	}
}

// writePump is the only writer on the connection. It closes the connection
// when it returns.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug(context.Background(), "write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
