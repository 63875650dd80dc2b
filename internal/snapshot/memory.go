// Package snapshot provides key-value slots for serialized carts.
package snapshot

import (
	"context"
	"slices"
	"sync"

	"github.com/nikolayk812/figurestore/internal/port"
)

// Memory keeps snapshots for the lifetime of the process.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

var _ port.SnapshotRepository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) GetSnapshot(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(payload), true, nil
}

func (m *Memory) SaveSnapshot(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = slices.Clone(payload)
	return nil
}
