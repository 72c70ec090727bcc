package tasks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/app/content"
)

// ContactCleanupJob removes contact messages older than the retention
// window. Messages are kept only long enough to follow up.
func ContactCleanupJob(db *mongo.Database, logger *zap.Logger, retention time.Duration) Job {
	return Job{
		Name:     "contact-cleanup",
		Interval: 6 * time.Hour,
		Run: func(ctx context.Context) error {
			coll := db.Collection("contact_messages")
			cutoff := time.Now().UTC().Add(-retention)
			result, err := coll.DeleteMany(ctx, bson.M{
				"created_at": bson.M{"$lt": cutoff},
			})
			if err != nil {
				return err
			}
			if result.DeletedCount > 0 {
				logger.Info("purged old contact messages",
					zap.Int64("deleted", result.DeletedCount),
					zap.Duration("retention", retention))
			}
			return nil
		},
	}
}

// ContentStatsJob periodically logs the CMS gateway counters so fetch
// failures show up in the logs even though pages render normally.
func ContentStatsJob(svc *content.Service, logger *zap.Logger) Job {
	return Job{
		Name:     "content-stats",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			snap := svc.StatsSnapshot()
			if snap.FetchFailures > 0 || snap.NotFound > 0 {
				logger.Info("content gateway counters",
					zap.Int64("fetch_failures", snap.FetchFailures),
					zap.Int64("not_found", snap.NotFound),
					zap.Bool("enabled", svc.Enabled()))
			}
			return nil
		},
	}
}
