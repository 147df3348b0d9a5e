package hub

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/lxzan/gws"

	"github.com/soar/virtualinput/internal/vinput"
)

// Conn is the write side of a websocket connection.
type Conn interface {
	WriteMessage(opcode gws.Opcode, payload []byte) error
}

// Actions is what clients are allowed to do to the input model.
type Actions interface {
	SetKey(source string, key vinput.Key, down bool)
	ReleaseKeys(source string)
	SetMode(joystick int, mode vinput.Mode) error
	AddJoystick() error
	ClearJoysticks() error
	SaveDefaults(joystick int) error
	RestoreDefaults(joystick int) error
}

var clientSeq atomic.Int64

// Client represents a connected WebSocket client.
type Client struct {
	id   string
	hub  *Hub
	conn Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn Conn) *Client {
	return &Client{
		id:   fmt.Sprintf("client-%d", clientSeq.Add(1)),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// ID identifies the client as a key source.
func (c *Client) ID() string {
	return c.id
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(gws.OpcodeText, msg); err != nil {
			break
		}
	}
}

// trySend queues data without blocking. It reports false only when the
// send buffer is full; data for a closed client is discarded.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close ends WritePump. Safe to call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Reply queues a message for this client only.
func (c *Client) Reply(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling reply: %v", err)
		return
	}
	c.trySend(data)
}

// HandleMessage parses one client command and applies it through actions.
func (c *Client) HandleMessage(message []byte, actions Actions) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error parsing client message: %v", err)
		c.Reply(NewErrorMessage("", err))
		return
	}

	var err error
	switch msg.Type {
	case "key":
		// key events are high rate and not acknowledged
		actions.SetKey(c.id, vinput.Key(msg.Code), msg.Down)
		return
	case "set_mode":
		var mode vinput.Mode
		if mode, err = vinput.ParseMode(msg.Mode); err == nil {
			err = actions.SetMode(msg.Joystick, mode)
		}
	case "add_joystick":
		err = actions.AddJoystick()
	case "clear_joysticks":
		err = actions.ClearJoysticks()
	case "save_defaults":
		err = actions.SaveDefaults(msg.Joystick)
	case "restore_defaults":
		err = actions.RestoreDefaults(msg.Joystick)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	if err != nil {
		log.Printf("Client %s %s failed: %v", c.id, msg.Type, err)
		c.Reply(NewErrorMessage(msg.Type, err))
		return
	}
	c.Reply(NewAckMessage(msg.Type))
}
