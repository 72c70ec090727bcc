package contactstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tanneryworkspace/website/internal/domain/models"
)

// Store provides access to the contact_messages collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new contact message store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contact_messages")}
}

// Insert saves a submitted contact message.
func (s *Store) Insert(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, msg); err != nil {
		return models.ContactMessage{}, err
	}
	return msg, nil
}

// GetByReference returns the message with the given reference code.
func (s *Store) GetByReference(ctx context.Context, reference string) (models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := s.c.FindOne(ctx, bson.M{"reference": reference}).Decode(&msg); err != nil {
		return models.ContactMessage{}, err
	}
	return msg, nil
}

// DeleteOlderThan removes messages created before the cutoff and reports
// how many were deleted.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.c.DeleteMany(ctx, bson.M{
		"created_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
