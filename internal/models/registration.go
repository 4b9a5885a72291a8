package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration statuses.
const (
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	// StatusUnknown is reported for legacy documents that predate the
	// status field; it is never written.
	StatusUnknown = "Unknown"
)

// Registration is a single event registration document. Field names are
// camelCase in both BSON and JSON because the spreadsheet automation
// reads them verbatim.
type Registration struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RegistrationID string             `bson:"registrationId" json:"registrationId"`
	FullName       string             `bson:"fullName" json:"fullName"`
	Email          string             `bson:"email" json:"email"`
	Contact        string             `bson:"contact" json:"contact"`
	Program        string             `bson:"program" json:"program"`
	Semester       string             `bson:"semester" json:"semester"`
	ProfileLink    string             `bson:"profileLink" json:"profileLink"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
