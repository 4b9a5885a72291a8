package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions.
const (
	AuditActionSheetSync = "sheet_sync"
)

// AuditLog records one privileged read (sheet sync/export). Append-only.
type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Action    string             `bson:"action" json:"action"`
	Records   int                `bson:"records" json:"records"`
	Actor     string             `bson:"actor" json:"actor"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
