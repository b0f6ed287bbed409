package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/soar/padbridge/internal/gamepad"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for console state changes and broadcasts them to the hub.
type Broadcaster struct {
	hub     *Hub
	changes <-chan gamepad.ConsoleState
	events  chan string

	mu        sync.Mutex // guards lastState and seq
	lastState gamepad.ConsoleState
	seq       int64
}

func NewBroadcaster(h *Hub, changes <-chan gamepad.ConsoleState) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
		events:  make(chan string, 16),
	}
}

// Notify queues a discrete event for every client. Events are dropped when
// the queue is full.
func (b *Broadcaster) Notify(event string) {
	select {
	case b.events <- event:
	default:
	}
}

// OpenMenu reports the host menu being opened to monitors.
func (b *Broadcaster) OpenMenu() {
	b.Notify(EventMenu)
}

// Run starts the broadcaster loop. Should be run in a goroutine. It returns
// when ctx is done or the change channel is closed.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int

	for {
		select {
		case <-ctx.Done():
			return

		case state, ok := <-b.changes:
			if !ok {
				return
			}

			b.mu.Lock()
			delta := gamepad.ComputeDelta(b.lastState, state)
			b.lastState = state
			if delta.IsEmpty() {
				b.mu.Unlock()
				continue
			}
			b.seq++
			deltaCount++

			// Send full sync periodically
			var msg *WSMessage
			if deltaCount >= deltaCountSync {
				msg = NewFullMessage(b.seq, &state)
				deltaCount = 0
			} else {
				msg = NewDeltaMessage(b.seq, delta)
			}
			b.mu.Unlock()
			b.broadcast(msg)

		case event := <-b.events:
			b.mu.Lock()
			b.seq++
			state := b.lastState
			msg := NewEventMessage(b.seq, event, &state)
			b.mu.Unlock()
			b.broadcast(msg)

		case <-ticker.C:
			b.mu.Lock()
			if !b.lastState.Connected {
				b.mu.Unlock()
				continue
			}
			b.seq++
			state := b.lastState
			msg := NewFullMessage(b.seq, &state)
			b.mu.Unlock()
			b.broadcast(msg)
		}
	}
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	b.seq++
	state := b.lastState
	msg := NewFullMessage(b.seq, &state)
	b.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	c.Send(data)
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
