package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "snapshots"

type mongoSnapshot struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores one document per application key in the snapshots collection.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoBackend connects to MongoDB and verifies the connection.
func NewMongoBackend(ctx context.Context, uri, dbName string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &MongoBackend{client: client, coll: client.Database(dbName).Collection(mongoCollection)}, nil
}

func (m *MongoBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var rec mongoSnapshot
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Payload), nil
}

func (m *MongoBackend) Put(ctx context.Context, key string, payload []byte) error {
	rec := mongoSnapshot{Key: key, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, rec, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoBackend) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
