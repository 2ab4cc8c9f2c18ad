// internal/app/system/indexes/indexes.go

// Package indexes creates the MongoDB indexes this app relies on. EnsureAll
// is called from the EnsureSchema lifecycle hook, before any requests are
// served.
package indexes

import (
	"context"

	activitystore "github.com/dalemusser/stridedash/internal/app/store/activity"
	kvstore "github.com/dalemusser/stridedash/internal/app/store/kv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates every index the app needs. Index creation is idempotent;
// existing identical indexes are left alone by the server.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	// One configuration document per (user, logical key).
	_, err := db.Collection(kvstore.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "key", Value: 1},
		},
		Options: options.Index().
			SetName("idx_user_key").
			SetUnique(true),
	})
	if err != nil {
		return err
	}

	// One record per (user, provider activity id); start_date serves the
	// window queries.
	_, err = db.Collection(activitystore.CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "provider_id", Value: 1},
			},
			Options: options.Index().
				SetName("idx_user_provider").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "start_date", Value: -1},
			},
			Options: options.Index().SetName("idx_user_start_date"),
		},
	})
	return err
}
