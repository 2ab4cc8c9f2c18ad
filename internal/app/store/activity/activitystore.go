// internal/app/store/activity/activitystore.go
package activitystore

import (
	"context"
	"time"

	"github.com/dalemusser/stridedash/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for imported activity records.
const CollectionName = "activities"

// Store provides imported activity persistence. Records arrive already
// fetched and authenticated from the provider; this store only lands and
// lists them.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Import upserts records keyed by (user_id, provider_id), so re-importing an
// overlapping page of provider data is idempotent. Returns the number of
// records written (inserted or replaced).
func (s *Store) Import(ctx context.Context, userID string, records []models.ActivityRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		rec.UserID = userID
		rec.StartDate = rec.StartDate.UTC()
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"user_id": userID, "provider_id": rec.ProviderID}).
			SetReplacement(rec).
			SetUpsert(true))
	}

	res, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

// ListByUser returns all of a user's records, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.ActivityRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []models.ActivityRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListSince returns a user's records with start_date on or after since,
// newest first. The sync job uses this to check what already landed without
// paging all-time history.
func (s *Store) ListSince(ctx context.Context, userID string, since time.Time) ([]models.ActivityRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	filter := bson.M{
		"user_id":    userID,
		"start_date": bson.M{"$gte": since.UTC()},
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []models.ActivityRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
