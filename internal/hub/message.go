package hub

import (
	"time"

	"github.com/soar/padbridge/internal/gamepad"
)

// Message types sent to monitor clients.
const (
	TypeFull           = "full"
	TypeDelta          = "delta"
	TypeEvent          = "event"
	TypeDeviceSelected = "device_selected"
)

// EventMenu is sent when the host menu is opened from the controller.
const EventMenu = "menu"

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string                `json:"type"`
	Seq       int64                 `json:"seq"`
	Timestamp int64                 `json:"timestamp"` // Unix milliseconds
	Event     string                `json:"event,omitempty"`
	Data      *gamepad.ConsoleState `json:"data,omitempty"`    // "full" and "event"
	Changes   *gamepad.DeltaChanges `json:"changes,omitempty"` // "delta"
	Device    *int                  `json:"device,omitempty"`  // "device_selected"
}

// NewFullMessage creates a "full" type message containing the complete console state.
func NewFullMessage(seq int64, state *gamepad.ConsoleState) *WSMessage {
	return &WSMessage{
		Type:      TypeFull,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed fields.
func NewDeltaMessage(seq int64, changes *gamepad.DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      TypeDelta,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewEventMessage creates an "event" type message for special events.
func NewEventMessage(seq int64, event string, state *gamepad.ConsoleState) *WSMessage {
	return &WSMessage{
		Type:      TypeEvent,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Event:     event,
		Data:      state,
	}
}

// NewDeviceSelectedMessage confirms a select_device request.
func NewDeviceSelectedMessage(index int) *WSMessage {
	return &WSMessage{
		Type:      TypeDeviceSelected,
		Timestamp: time.Now().UnixMilli(),
		Device:    &index,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}
