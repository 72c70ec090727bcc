// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tanneryworkspace/website/internal/app/content"
	"github.com/tanneryworkspace/website/internal/app/system/mailer"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. It serves as
// the central place to store all database clients and backend connections
// that the application needs.
//
// The Shutdown hook is responsible for closing these connections gracefully
// when the application terminates.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// FileStorage holds uploaded video blobs
	FileStorage storage.Store

	// Mailer for contact-form notifications
	Mailer *mailer.Mailer

	// Content is the CMS gateway; disabled (empty results) when no Notion
	// token is configured
	Content *content.Service
}
