package storage

import (
	"context"
	"sync"

	"github.com/etnz/bondbook"
)

// Memory keeps the slot in memory, encoded like any other backend.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an empty in-memory slot.
func NewMemory() *Memory { return &Memory{} }

// Load decodes the slot.
func (m *Memory) Load(ctx context.Context) ([]bondbook.Instrument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bondbook.UnmarshalInstruments(m.data)
}

// Save replaces the slot content.
func (m *Memory) Save(ctx context.Context, instruments []bondbook.Instrument) error {
	data, err := bondbook.MarshalInstruments(instruments)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

// Bytes returns the current slot content.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
