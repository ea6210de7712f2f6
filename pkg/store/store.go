// Package store persists the ledger snapshot and serializes every
// load-mutate-save cycle against it.
package store

import (
	"context"
	"errors"

	"hotelledger/pkg/model"
)

// ErrCorrupt is wrapped by backends when the stored snapshot exists but
// cannot be decoded.
var ErrCorrupt = errors.New("ledger snapshot is corrupt")

// Store loads and saves the whole ledger snapshot. Load returns an empty
// snapshot when nothing has been stored yet; Save overwrites the stored
// snapshot in full.
type Store interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snapshot *model.Snapshot) error
}
