package binding

import (
	"fmt"
	"strings"
	"sync"

	"github.com/soar/padbridge/internal/gamepad"
)

// Store is a read-only view of stored bindings.
type Store interface {
	// GetString returns the value stored under key and whether it exists.
	GetString(key string) (string, bool)
}

// KeyName is the store key of the override for a host key code.
func KeyName(code gamepad.KeyCode) string {
	return fmt.Sprintf("key_%d", int(code))
}

// AxisName is the store key of the binding for a host axis.
func AxisName(axis gamepad.AxisID) string {
	return fmt.Sprintf("axis_%d", int(axis))
}

// MapStore is an in-memory Store. Keys are case-insensitive to match the
// file backed store.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMapStore(values map[string]string) *MapStore {
	s := &MapStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[strings.ToLower(k)] = v
	}
	return s
}

func (s *MapStore) GetString(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[strings.ToLower(key)]
	return v, ok
}

// Set stores a value. Rebinding happens outside the translator; this exists
// for those writers.
func (s *MapStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[strings.ToLower(key)] = value
}
