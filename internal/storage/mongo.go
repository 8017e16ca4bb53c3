package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names, matching the ones the frontend-era API used.
const (
	ContactsCollection = "contacts"
	ProjectsCollection = "projects"
	SkillsCollection   = "skills"
)

// Options configures the MongoDB connection.
type Options struct {
	URI      string
	Database string
	// Timeout bounds server selection, connection setup and every store operation.
	Timeout time.Duration
}

// DB owns the MongoDB client for the lifetime of the process.
type DB struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect creates a client for opts.URI. The driver connects lazily, so an
// unreachable server is reported by Ping rather than here.
func Connect(ctx context.Context, opts Options) (*DB, error) {
	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetServerSelectionTimeout(opts.Timeout).
		SetConnectTimeout(opts.Timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}
	return NewDB(client.Database(opts.Database), opts.Timeout), nil
}

// NewDB wraps an existing database handle.
func NewDB(db *mongo.Database, timeout time.Duration) *DB {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DB{client: db.Client(), db: db, timeout: timeout}
}

// Ping checks that the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique contact fingerprint index and the project listing index.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if _, err := d.db.Collection(ContactsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "fingerprint", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("fingerprint_unique"),
	}); err != nil {
		return fmt.Errorf("storage: contact index: %w", err)
	}

	if _, err := d.db.Collection(ProjectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("featured_created"),
	}); err != nil {
		return fmt.Errorf("storage: project index: %w", err)
	}
	return nil
}

// Contacts returns the contact store.
func (d *DB) Contacts() *ContactStore {
	return NewContactStore(d.db, d.timeout)
}

// Projects returns the project store.
func (d *DB) Projects() *ProjectStore {
	return NewProjectStore(d.db, d.timeout)
}

// Skills returns the skill store.
func (d *DB) Skills() *SkillStore {
	return NewSkillStore(d.db, d.timeout)
}

// listAll decodes every document of coll into a non-nil slice.
func listAll[T any](ctx context.Context, coll *mongo.Collection, timeout time.Duration, opts *options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cur, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, persistenceErr("find "+coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, persistenceErr("decode "+coll.Name(), err)
	}
	return out, nil
}

// replaceAll clears coll and inserts docs. It is not atomic.
func replaceAll[T any](ctx context.Context, coll *mongo.Collection, timeout time.Duration, docs []T) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return persistenceErr("clear "+coll.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}
	items := make([]any, len(docs))
	for i := range docs {
		items[i] = docs[i]
	}
	if _, err := coll.InsertMany(ctx, items); err != nil {
		return persistenceErr("insert "+coll.Name(), err)
	}
	return nil
}
