package storage

import (
	"context"
	"sync"
	"time"
)

// Memory keeps the anchor in process memory.
type Memory struct {
	mu     sync.Mutex
	anchor time.Time
	ok     bool
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

func (memory *Memory) LoadAnchor(ctx context.Context) (time.Time, bool, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return memory.anchor, memory.ok, nil
}

func (memory *Memory) SaveAnchor(ctx context.Context, anchor time.Time) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	memory.anchor = anchor
	memory.ok = true
	return nil
}

func (memory *Memory) Close() error { return nil }
