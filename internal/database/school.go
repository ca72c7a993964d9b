package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"netivim/internal/store"
)

type blobDocument struct {
	Key       string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Load reads the schools blob stored under the configured key.
func (m *MongoDB) Load(ctx context.Context) ([]byte, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(blobsCollection)

	var doc blobDocument
	err = collection.FindOne(ctx, bson.D{{"_id", m.key}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	return []byte(doc.Data), nil
}

// Save overwrites the schools blob.
func (m *MongoDB) Save(ctx context.Context, blob []byte) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(blobsCollection)

	filter := bson.D{{"_id", m.key}}
	update := bson.D{{"$set", bson.D{
		{"data", string(blob)},
		{"updated_at", time.Now()},
	}}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}
