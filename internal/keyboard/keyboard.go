// Package keyboard tracks which keys are held, fed by remote clients.
package keyboard

import (
	"sync"

	"github.com/soar/virtualinput/internal/vinput"
)

// State is the set of held keys. Each key remembers which sources hold it,
// so one client releasing a key does not release it for another.
type State struct {
	mu   sync.RWMutex
	held map[vinput.Key]map[string]struct{}
}

func NewState() *State {
	return &State{held: make(map[vinput.Key]map[string]struct{})}
}

// Set records a key transition from source.
func (s *State) Set(source string, k vinput.Key, down bool) {
	if k == vinput.KeyNone {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owners := s.held[k]
	if down {
		if owners == nil {
			owners = make(map[string]struct{})
			s.held[k] = owners
		}
		owners[source] = struct{}{}
		return
	}

	delete(owners, source)
	if len(owners) == 0 {
		delete(s.held, k)
	}
}

// ReleaseAll drops every key held by source.
func (s *State) ReleaseAll(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, owners := range s.held {
		delete(owners, source)
		if len(owners) == 0 {
			delete(s.held, k)
		}
	}
}

func (s *State) Down(k vinput.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.held[k]) > 0
}

// Snapshot returns a copy of the held keys.
func (s *State) Snapshot() map[vinput.Key]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[vinput.Key]bool, len(s.held))
	for k := range s.held {
		out[k] = true
	}
	return out
}
