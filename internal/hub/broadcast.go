package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/soar/virtualinput/internal/vinput"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for registry changes and broadcasts them to the hub.
type Broadcaster struct {
	hub     *Hub
	changes <-chan vinput.RegistryInfo

	mu        sync.Mutex
	lastState vinput.RegistryInfo
	seq       int64
}

func NewBroadcaster(h *Hub, changes <-chan vinput.RegistryInfo) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case state, ok := <-b.changes:
			if !ok {
				return
			}

			b.mu.Lock()
			delta := ComputeDelta(b.lastState, state)
			b.lastState = state
			if delta.IsEmpty() {
				b.mu.Unlock()
				continue
			}
			b.seq++
			seq := b.seq
			b.mu.Unlock()

			deltaCount++

			// Send full sync periodically
			if deltaCount >= deltaCountSync {
				b.sendFull(seq, state)
				deltaCount = 0
			} else {
				b.sendDelta(seq, delta)
			}

		case <-ticker.C:
			b.mu.Lock()
			b.seq++
			seq, state := b.seq, b.lastState
			b.mu.Unlock()
			b.sendFull(seq, state)
		}
	}
}

// CurrentState returns the last state seen by the broadcaster.
func (b *Broadcaster) CurrentState() vinput.RegistryInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastState
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	b.seq++
	msg := NewFullMessage(b.seq, &b.lastState)
	data, err := json.Marshal(msg)
	b.mu.Unlock()

	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	c.trySend(data)
}

func (b *Broadcaster) sendFull(seq int64, state vinput.RegistryInfo) {
	msg := NewFullMessage(seq, &state)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling full message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) sendDelta(seq int64, delta *DeltaChanges) {
	msg := NewDeltaMessage(seq, delta)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling delta message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
