package store

import (
	"context"
	"errors"
	"sync"

	apperrors "hotelledger/pkg/errors"
	"hotelledger/pkg/logger"
	"hotelledger/pkg/model"
)

// Ledger runs each operation as one load-mutate-save cycle against a Store.
// A single mutex guards the whole cycle, so operations within one process
// never interleave. Nothing is cached between cycles.
type Ledger struct {
	store Store
	log   *logger.Logger
	mu    sync.Mutex
}

func NewLedger(store Store, log *logger.Logger) *Ledger {
	if log == nil {
		log = logger.Discard()
	}
	return &Ledger{
		store: store,
		log:   log,
	}
}

// View loads the snapshot and passes it to fn. Nothing is saved.
func (l *Ledger) View(ctx context.Context, fn func(s *model.Snapshot) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot, err := l.load(ctx)
	if err != nil {
		return err
	}
	return fn(snapshot)
}

// Update loads the snapshot, lets fn mutate it and saves the result. When fn
// returns an error the snapshot is discarded and the store is left as it was.
func (l *Ledger) Update(ctx context.Context, fn func(s *model.Snapshot) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot, err := l.load(ctx)
	if err != nil {
		return err
	}

	if err := fn(snapshot); err != nil {
		return err
	}

	if err := l.store.Save(ctx, snapshot); err != nil {
		l.log.Error("Failed to save ledger snapshot", "error", err)
		if isContextErr(err) {
			return apperrors.Timeout("Saving the ledger timed out")
		}
		return apperrors.IOFailure("Failed to save ledger", err)
	}
	return nil
}

// Snapshot returns a freshly loaded copy of the whole ledger.
func (l *Ledger) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *Ledger) load(ctx context.Context) (*model.Snapshot, error) {
	snapshot, err := l.store.Load(ctx)
	if err != nil {
		l.log.Error("Failed to load ledger snapshot", "error", err)
		if isContextErr(err) {
			return nil, apperrors.Timeout("Loading the ledger timed out")
		}
		if errors.Is(err, ErrCorrupt) {
			return nil, apperrors.IOFailure("Ledger snapshot is corrupt", err)
		}
		return nil, apperrors.IOFailure("Failed to load ledger", err)
	}
	return snapshot, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
