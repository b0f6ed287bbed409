package hub

import (
	"sync"

	"github.com/lxzan/gws"
)

// Conn is the write side of a WebSocket connection. *gws.Conn satisfies it.
type Conn interface {
	WriteMessage(opcode gws.Opcode, payload []byte) error
	WriteClose(code uint16, reason []byte)
}

// Client represents a connected monitor.
type Client struct {
	hub  *Hub
	conn Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Send queues a message for this client only. It never blocks; a full
// buffer drops the message.
func (c *Client) Send(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// WritePump sends messages from the send channel to the WebSocket connection
// until the hub closes the channel or a write fails.
func (c *Client) WritePump() {
	defer c.conn.WriteClose(1000, nil)

	for msg := range c.send {
		if err := c.conn.WriteMessage(gws.OpcodeText, msg); err != nil {
			c.hub.Unregister(c)
			// drain until the hub closes the channel
			for range c.send {
			}
			return
		}
	}
}
