package hub

import (
	"time"

	"github.com/soar/virtualinput/internal/vinput"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string               `json:"type"`              // Message type: "full", "delta", "ack", "error"
	Seq       int64                `json:"seq"`               // Sequence number for ordering
	Timestamp int64                `json:"timestamp"`         // Unix timestamp in milliseconds
	Data      *vinput.RegistryInfo `json:"data,omitempty"`    // Full registry state for type "full"
	Changes   *DeltaChanges        `json:"changes,omitempty"` // Changed joysticks for type "delta"
	Command   string               `json:"command,omitempty"` // Client command for "ack" and "error"
	Error     string               `json:"error,omitempty"`
}

// NewFullMessage creates a "full" type message containing the complete registry state.
func NewFullMessage(seq int64, state *vinput.RegistryInfo) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed joysticks.
func NewDeltaMessage(seq int64, changes *DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

func NewAckMessage(command string) *WSMessage {
	return &WSMessage{
		Type:      "ack",
		Timestamp: time.Now().UnixMilli(),
		Command:   command,
	}
}

func NewErrorMessage(command string, err error) *WSMessage {
	return &WSMessage{
		Type:      "error",
		Timestamp: time.Now().UnixMilli(),
		Command:   command,
		Error:     err.Error(),
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type     string `json:"type"`
	Code     string `json:"code,omitempty"` // key name for "key"
	Down     bool   `json:"down,omitempty"`
	Joystick int    `json:"joystick,omitempty"`
	Mode     string `json:"mode,omitempty"`
}
