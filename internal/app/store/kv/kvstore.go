// internal/app/store/kv/kvstore.go

// Package kvstore is the persistence port for per-user configuration
// documents. Stores above it (dashboard, goals) do whole-document
// read-modify-write against this interface, which keeps their logic
// testable against the in-memory implementation.
package kvstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is a per-user key-value surface for JSON document strings.
type Store interface {
	// Get returns the stored value and whether a document exists for
	// (userID, key).
	Get(ctx context.Context, userID, key string) (string, bool, error)
	// Set stores value under (userID, key), replacing any existing document.
	Set(ctx context.Context, userID, key, value string) error
	// Delete removes the document under (userID, key). Deleting an absent
	// key is not an error.
	Delete(ctx context.Context, userID, key string) error
}

// CollectionName is the MongoDB collection backing the Mongo store.
const CollectionName = "config_documents"

// Mongo persists documents in the config_documents collection, one document
// per (user_id, key) pair, guarded by a unique index.
type Mongo struct {
	c *mongo.Collection
}

// NewMongo creates a Mongo-backed store.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection(CollectionName)}
}

type configDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Key       string             `bson:"key"`
	Data      string             `bson:"data"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Get implements Store.
func (s *Mongo) Get(ctx context.Context, userID, key string) (string, bool, error) {
	var doc configDocument
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "key": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Data, true, nil
}

// Set implements Store with a single upsert, so each whole-document write is
// atomic on the server.
func (s *Mongo) Set(ctx context.Context, userID, key, value string) error {
	filter := bson.M{"user_id": userID, "key": key}
	update := bson.M{
		"$set": bson.M{
			"data":       value,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"user_id": userID,
			"key":     key,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Delete implements Store.
func (s *Mongo) Delete(ctx context.Context, userID, key string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "key": key})
	return err
}
