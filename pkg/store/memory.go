package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"hotelledger/pkg/model"
)

// MemoryStore keeps the encoded snapshot in memory. Every Load decodes a
// fresh copy, so callers never share state with the store.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := model.NewSnapshot()
	if s.data == nil {
		return snapshot, nil
	}
	if err := json.Unmarshal(s.data, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (s *MemoryStore) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode ledger snapshot: %w", err)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
