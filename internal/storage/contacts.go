package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/starford/portfolio/internal/apperr"
	"github.com/starford/portfolio/internal/models"
)

// ContactStore implements ContactRepository on the contacts collection.
type ContactStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ ContactRepository = (*ContactStore)(nil)

// NewContactStore creates a ContactStore on db.
func NewContactStore(db *mongo.Database, timeout time.Duration) *ContactStore {
	return &ContactStore{coll: db.Collection(ContactsCollection), timeout: timeout}
}

// Create inserts msg, assigning an ObjectID when it has none.
func (s *ContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, msg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert contact: %w", apperr.ErrDuplicateSubmission)
		}
		return persistenceErr("insert contact", err)
	}
	return nil
}

// CountByEmail counts stored submissions from email.
func (s *ContactStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return 0, persistenceErr("count contacts", err)
	}
	return n, nil
}

func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrPersistence, err)
}
