package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelledger/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type snapshotDocument struct {
	ID             string    `bson:"_id"`
	model.Snapshot `bson:",inline"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// snapshotCollection is the part of *mongo.Collection the store uses.
type snapshotCollection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// MongoStore keeps the snapshot as a single document. ReplaceOne on one
// document is atomic on the server, so a Save is never observed half-written.
type MongoStore struct {
	collection   snapshotCollection
	snapshotID   string
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type MongoStoreConfig struct {
	Database     *mongo.Database
	Collection   string
	SnapshotID   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewMongoStore(cfg MongoStoreConfig) *MongoStore {
	return newMongoStore(cfg.Database.Collection(cfg.Collection), cfg)
}

func newMongoStore(collection snapshotCollection, cfg MongoStoreConfig) *MongoStore {
	return &MongoStore{
		collection:   collection,
		snapshotID:   cfg.SnapshotID,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

func (s *MongoStore) Load(ctx context.Context) (*model.Snapshot, error) {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()

	var doc snapshotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": s.snapshotID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to load ledger snapshot %s: %w", s.snapshotID, err)
	}

	snapshot := doc.Snapshot
	snapshot.Normalize()
	return &snapshot, nil
}

func (s *MongoStore) Save(ctx context.Context, snapshot *model.Snapshot) error {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := snapshotDocument{
		ID:        s.snapshotID,
		Snapshot:  *snapshot,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": s.snapshotID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save ledger snapshot %s: %w", s.snapshotID, err)
	}
	return nil
}

// withTimeout bounds ctx by timeout unless ctx already expires sooner.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}
