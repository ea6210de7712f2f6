package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"hotelledger/pkg/model"
)

const fileIndent = "    "

// FileStore keeps the snapshot as one pretty-printed JSON document. Save
// truncates and rewrites the file in place, so a crash mid-write can leave
// it unreadable; the next Load then reports ErrCorrupt.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read ledger file %s: %w", s.path, err)
	}

	snapshot := model.NewSnapshot()
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (s *FileStore) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", fileIndent)
	if err != nil {
		return fmt.Errorf("failed to encode ledger snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger file %s: %w", s.path, err)
	}
	return nil
}

// Remove deletes the ledger file. A missing file is not an error.
func (s *FileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove ledger file %s: %w", s.path, err)
	}
	return nil
}
