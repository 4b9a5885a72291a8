package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/pkg/database"
)

// CollectionName is the audit log collection.
const CollectionName = "audit_logs"

// RecentLimit caps how many entries the read endpoint returns.
const RecentLimit = 100

// Repository persists audit entries. Append-only; the core never reads
// them back except through ListRecent.
type Repository struct {
	manager *database.Manager
}

// NewRepository creates an audit repository.
func NewRepository(manager *database.Manager) *Repository {
	return &Repository{manager: manager}
}

func (r *Repository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.manager.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(CollectionName), nil
}

// Record appends one audit entry, defaulting the timestamp.
func (r *Repository) Record(ctx context.Context, entry models.AuditLog) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if _, err := col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first, at most RecentLimit.
func (r *Repository) ListRecent(ctx context.Context) ([]models.AuditLog, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(RecentLimit).
		SetProjection(bson.M{"_id": 0})
	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.AuditLog
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode audit logs: %w", err)
	}
	return out, nil
}
