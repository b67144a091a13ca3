// This file defines the lead repository backed by a MongoDB collection.
// Leads are inserted as submitted apart from the id and timestamps, which
// the repository assigns.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/luxury-estate-api/internal/model"
)

// LeadCollection is the collection name leads are stored in.
const LeadCollection = "lead"

// LeadRepo encapsulates all database calls related to leads. A nil database
// is allowed: every call then fails with ErrNoDatabase, which lets the
// server run its static routes while the database is unavailable.
type LeadRepo struct {
	db  *mongo.Database
	now func() time.Time
}

// NewLeadRepo constructs a LeadRepo over the given database handle.
func NewLeadRepo(db *mongo.Database) *LeadRepo {
	return &LeadRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *LeadRepo) coll() (*mongo.Collection, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}
	return r.db.Collection(LeadCollection), nil
}

// Create inserts a new lead. On success the lead's ID, CreatedAt and
// UpdatedAt fields are populated and the hex form of the id is returned.
func (r *LeadRepo) Create(ctx context.Context, l *model.Lead) (string, error) {
	c, err := r.coll()
	if err != nil {
		return "", err
	}
	ts := r.now()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = ts
	l.UpdatedAt = ts
	if _, err := c.InsertOne(ctx, l); err != nil {
		return "", fmt.Errorf("insert lead: %w", err)
	}
	return l.ID.Hex(), nil
}

// List returns at most limit leads, newest first.
func (r *LeadRepo) List(ctx context.Context, limit int) ([]model.Lead, error) {
	c, err := r.coll()
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]model.Lead, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return out, nil
}

// DatabaseName returns the configured database name, or "" when the
// repository runs without a database.
func (r *LeadRepo) DatabaseName() string {
	if r.db == nil {
		return ""
	}
	return r.db.Name()
}

// CollectionNames lists the collections of the database.
func (r *LeadRepo) CollectionNames(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}
	names, err := r.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// Available reports whether a database handle is attached.
func (r *LeadRepo) Available() bool { return r.db != nil }
