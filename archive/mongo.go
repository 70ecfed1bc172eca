package archive

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recordCollection = "musics"

// MongoIndex implements Index on a MongoDB collection.
type MongoIndex struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoIndex connects to the document store at uri and binds the record
// collection in the named database.
func NewMongoIndex(ctx context.Context, uri, database string) (*MongoIndex, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("archive: connect document store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("archive: ping document store: %w", err)
	}

	return &MongoIndex{
		client: client,
		coll:   client.Database(database).Collection(recordCollection),
	}, nil
}

// EnsureIndexes creates the unique index on the item ID. With it in place a
// second concurrent run can at worst duplicate downloads, never records.
func (m *MongoIndex) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return &StoreError{Op: "create", Entity: "index", Err: err}
	}
	return nil
}

// FindByItemID returns the record for the given item ID, or ErrNotFound.
// Only the ID field is projected; the lookup is an existence check.
func (m *MongoIndex) FindByItemID(ctx context.Context, itemID string) (*Record, error) {
	var rec Record
	err := m.coll.FindOne(ctx,
		bson.M{"id": itemID},
		options.FindOne().SetProjection(bson.M{"id": 1}),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "find", Entity: "record", Key: itemID, Err: err}
	}
	return &rec, nil
}

// Create persists a new record. A duplicate item ID is reported as
// ErrAlreadyExists so callers can treat it as a benign already-archived.
func (m *MongoIndex) Create(ctx context.Context, rec *Record) error {
	_, err := m.coll.InsertOne(ctx, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, rec.ItemID)
		}
		return &StoreError{Op: "create", Entity: "record", Key: rec.ItemID, Err: err}
	}
	return nil
}

// Close disconnects from the document store.
func (m *MongoIndex) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
