// internal/domain/models/video.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is the database record for an uploaded hero/gallery video. The
// bytes live in blob storage under Pathname; this record is what listings
// and deletions operate on.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Pathname    string             `bson:"pathname" json:"pathname"` // storage key, e.g. videos/1718000000000-tour.mp4
	URL         string             `bson:"url" json:"url"`           // public URL resolved from storage at upload time
	Size        int64              `bson:"size" json:"size"`
	ContentType string             `bson:"content_type" json:"contentType"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploadedAt"`
}
