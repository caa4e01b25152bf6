package report

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/fieldshape/mlca/pkg/errors"
)

// MongoStore persists run reports to a MongoDB collection, one document per
// run keyed by run ID.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to the given MongoDB URI and targets
// database/collection for report documents.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Save inserts the report as one document.
func (s *MongoStore) Save(ctx context.Context, r *Report) error {
	if _, err := s.collection.InsertOne(ctx, r); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "insert report %s", r.RunID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
