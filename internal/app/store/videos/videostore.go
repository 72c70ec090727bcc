package videostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tanneryworkspace/website/internal/domain/models"
)

// Store provides access to the videos collection. Each record describes
// one blob in file storage; the blob itself lives behind storage.Store.
type Store struct {
	c *mongo.Collection
}

// New creates a new video store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("videos")}
}

// Create records an uploaded video.
func (s *Store) Create(ctx context.Context, video models.Video) (models.Video, error) {
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}
	if video.UploadedAt.IsZero() {
		video.UploadedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, video); err != nil {
		return models.Video{}, err
	}
	return video, nil
}

// List returns all videos, newest upload first.
func (s *Store) List(ctx context.Context) ([]models.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var videos []models.Video
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetByURL returns the video whose public URL matches.
func (s *Store) GetByURL(ctx context.Context, url string) (models.Video, error) {
	var video models.Video
	if err := s.c.FindOne(ctx, bson.M{"url": url}).Decode(&video); err != nil {
		return models.Video{}, err
	}
	return video, nil
}

// Delete removes the record for a blob path. Returns mongo.ErrNoDocuments
// when no record matches.
func (s *Store) Delete(ctx context.Context, pathname string) error {
	result, err := s.c.DeleteOne(ctx, bson.M{"pathname": pathname})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
