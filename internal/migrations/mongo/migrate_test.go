package mongo

import (
	"context"
	"errors"
	"slices"
	"testing"

	"hotelledger/internal/migrations/mongo/validators"
	"hotelledger/pkg/logger"
	"hotelledger/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeDatabase struct {
	existing   []string
	listErr    error
	createErr  error
	created    []string
	commands   []bson.D
	commandErr error
}

func (f *fakeDatabase) Name() string { return "hotel_ledger" }

func (f *fakeDatabase) ListCollectionNames(ctx context.Context, filter any, opts ...*options.ListCollectionsOptions) ([]string, error) {
	return f.existing, f.listErr
}

func (f *fakeDatabase) CreateCollection(ctx context.Context, name string, opts ...*options.CreateCollectionOptions) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, name)
	return nil
}

func (f *fakeDatabase) RunCommand(ctx context.Context, runCommand any, opts ...*options.RunCmdOptions) *mongo.SingleResult {
	f.commands = append(f.commands, runCommand.(bson.D))
	return mongo.NewSingleResultFromDocument(bson.D{{Key: "ok", Value: 1}}, f.commandErr, nil)
}

func TestRunMigration_CreatesMissingCollection(t *testing.T) {
	db := &fakeDatabase{}

	if err := RunMigration(context.Background(), db, "Ledger", logger.Discard()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(db.created, []string{"Ledger"}) {
		t.Errorf("created = %v", db.created)
	}
	if len(db.commands) != 0 {
		t.Errorf("expected no collMod for a new collection, got %v", db.commands)
	}
}

func TestRunMigration_UpdatesExistingValidator(t *testing.T) {
	db := &fakeDatabase{existing: []string{"Ledger"}}

	if err := RunMigration(context.Background(), db, "Ledger", logger.Discard()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.created) != 0 {
		t.Errorf("existing collection must not be recreated")
	}
	if len(db.commands) != 1 || db.commands[0][0].Key != "collMod" || db.commands[0][0].Value != "Ledger" {
		t.Errorf("expected one collMod command, got %v", db.commands)
	}
}

func TestRunMigration_CollModFailureIsOnlyAWarning(t *testing.T) {
	db := &fakeDatabase{existing: []string{"Ledger"}, commandErr: errors.New("unauthorized")}

	if err := RunMigration(context.Background(), db, "Ledger", logger.Discard()); err != nil {
		t.Errorf("collMod failure should not fail the migration: %v", err)
	}
}

func TestRunMigration_Errors(t *testing.T) {
	tests := []struct {
		name string
		db   *fakeDatabase
	}{
		{"list fails", &fakeDatabase{listErr: errors.New("no connection")}},
		{"create fails", &fakeDatabase{createErr: errors.New("not allowed")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RunMigration(context.Background(), tt.db, "Ledger", logger.Discard()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// The schema must name the same fields the store writes.
func TestLedgerValidator_MatchesModelFields(t *testing.T) {
	snapshot := model.NewSnapshot()
	snapshot.Hotels["H1"] = &model.HotelRecord{Name: "Grand", TotalRooms: 10, ReservedRooms: []int{1}}
	snapshot.Customers["C1"] = &model.CustomerRecord{Name: "Alice", Email: "alice@x.com"}
	snapshot.Reservations["R1"] = &model.ReservationRecord{CustomerID: "C1", HotelID: "H1", Rooms: []int{1}}

	raw, err := bson.Marshal(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}

	schema := validators.LedgerValidator["$jsonSchema"].(bson.M)
	for _, field := range schema["required"].([]string) {
		if field == "_id" || field == "updated_at" {
			continue
		}
		if _, ok := doc[field]; !ok {
			t.Errorf("required field %q missing from marshalled snapshot", field)
		}
	}

	checks := []struct {
		collection string
		id         string
		schema     bson.M
	}{
		{"hotels", "H1", validators.HotelRecordSchema},
		{"customers", "C1", validators.CustomerRecordSchema},
		{"reservations", "R1", validators.ReservationRecordSchema},
	}
	for _, c := range checks {
		entry := asMap(asMap(doc[c.collection])[c.id])
		for _, field := range c.schema["required"].([]string) {
			if _, ok := entry[field]; !ok {
				t.Errorf("%s entry is missing required field %q", c.collection, field)
			}
		}
	}
}

// asMap accepts both nested document shapes the decoder may produce.
func asMap(v any) bson.M {
	switch doc := v.(type) {
	case bson.M:
		return doc
	case bson.D:
		return doc.Map()
	default:
		return bson.M{}
	}
}
