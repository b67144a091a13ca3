package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Open connects to MongoDB and verifies the connection.  The returned
// database handle is scoped to name; callers own the client and must
// Disconnect it on shutdown.
func Open(ctx context.Context, url, name string) (*mongo.Client, *mongo.Database, error) {
	if url == "" || name == "" {
		return nil, nil, fmt.Errorf("database url and name are required")
	}

	// Pool settings
	opts := options.Client().
		ApplyURI(url).
		SetMaxPoolSize(25).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Minute).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping: %w", err)
	}
	return client, client.Database(name), nil
}
