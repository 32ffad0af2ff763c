package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/squarify/pkg/layout"
)

// Collection is the MongoDB collection layouts are stored in.
const Collection = "layouts"

// MongoStore stores layouts in MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects to uri and uses the layouts collection of database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewMongoStoreWithCollection(client.Database(database).Collection(Collection))
	s.client = client
	return s, nil
}

// NewMongoStoreWithCollection wraps an existing collection. Close does not
// disconnect its client.
func NewMongoStoreWithCollection(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: time.Now}
}

func (s *MongoStore) Save(ctx context.Context, l *layout.Layout) error {
	stamp(l, s.now())
	if _, err := s.coll.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("insert layout: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (layout.Layout, error) {
	var l layout.Layout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return layout.Layout{}, notFound(id)
	}
	if err != nil {
		return layout.Layout{}, fmt.Errorf("find layout %s: %w", id, err)
	}
	return l, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]layout.Layout, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	out := []layout.Layout{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode layouts: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
