package worker

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/internal/registrations"
)

// Watcher tails the registrations change stream and dispatches every
// inserted document to the notifier. Catches inserts that reached the
// collection without going through the intake handler (manual imports,
// other deployments sharing the database).
type Watcher struct {
	db       *mongo.Database
	dispatch func(reg models.Registration)
	logger   *zap.Logger
}

// NewWatcher creates a change-stream watcher.
func NewWatcher(db *mongo.Database, dispatch func(reg models.Registration), logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{db: db, dispatch: dispatch, logger: logger}
}

// Run blocks tailing the change stream until ctx is done. Change streams
// need a replica set; on standalone deployments the watch fails and the
// watcher disables itself with a warning.
func (w *Watcher) Run(ctx context.Context) {
	col := w.db.Collection(registrations.CollectionName)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": "insert"}}},
	}
	stream, err := col.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		w.logger.Warn("change stream unavailable, watcher disabled", zap.Error(err))
		return
	}
	defer stream.Close(ctx)

	w.logger.Info("change stream watcher started")
	for stream.Next(ctx) {
		var event struct {
			FullDocument models.Registration `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			w.logger.Warn("decode change event", zap.Error(err))
			continue
		}
		w.logger.Info("new registration detected",
			zap.String("registration_id", event.FullDocument.RegistrationID))
		w.dispatch(event.FullDocument)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		w.logger.Error("change stream closed", zap.Error(err))
	}
}
