package registrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/pkg/database"
)

// CollectionName is the registrations collection.
const CollectionName = "registrations"

// Index names; duplicate-key errors are mapped back to fields by name.
const (
	idxRegistrationID = "registrationId_unique"
	idxEmail          = "email_unique"
	idxContact        = "contact_unique"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Status    string
	Program   string
	StartDate time.Time
	EndDate   time.Time
}

// Repository persists registrations. The database handle is acquired
// lazily per operation through the manager.
type Repository struct {
	manager *database.Manager
}

// NewRepository creates a registrations repository.
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

// EnsureIndexes creates the unique and secondary indexes. The unique
// indexes are the real uniqueness guarantee; application pre-checks are
// advisory only.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registrationId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idxRegistrationID),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idxEmail),
		},
		{
			Keys:    bson.D{{Key: "contact", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idxContact),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
	})
	if err != nil {
		return fmt.Errorf("registrations indexes: %w", err)
	}
	return nil
}

// Exists reports whether any registration matches email or contact
// (logical OR; empty arguments are skipped). Advisory pre-check: a
// concurrent insert can still win between this call and Insert.
func (r *Repository) Exists(ctx context.Context, email, contact string) (bool, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return false, err
	}

	var or bson.A
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if contact != "" {
		or = append(or, bson.M{"contact": contact})
	}
	if len(or) == 0 {
		return false, nil
	}

	err = col.FindOne(ctx, bson.M{"$or": or}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}

// Insert persists reg as a single atomic document write, defaulting
// Status and CreatedAt. Duplicate-key violations come back as
// ErrDuplicateEmail, ErrDuplicateContact or ErrDuplicateID.
func (r *Repository) Insert(ctx context.Context, reg *models.Registration) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if reg.Status == "" {
		reg.Status = models.StatusSubmitted
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}

	res, err := col.InsertOne(ctx, reg)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reg.ID = oid
	}
	return nil
}

// List returns registrations matching the filter, newest first, with the
// internal _id excluded.
func (r *Repository) List(ctx context.Context, f Filter) ([]models.Registration, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Program != "" {
		query["program"] = f.Program
	}
	created := bson.M{}
	if !f.StartDate.IsZero() {
		created["$gte"] = f.StartDate
	}
	if !f.EndDate.IsZero() {
		created["$lte"] = f.EndDate
	}
	if len(created) > 0 {
		query["createdAt"] = created
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"_id": 0})
	cur, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return out, nil
}

// FindByRegistrationID returns one registration or nil when absent.
func (r *Repository) FindByRegistrationID(ctx context.Context, registrationID string) (*models.Registration, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var reg models.Registration
	err = col.FindOne(ctx, bson.M{"registrationId": registrationID}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

// duplicateError maps a Mongo duplicate-key error (code 11000) to the
// colliding field by index name, or returns nil if err is not one.
func duplicateError(err error) error {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return nil
	}
	for _, e := range we.WriteErrors {
		if e.Code != 11000 {
			continue
		}
		switch {
		case strings.Contains(e.Message, idxEmail):
			return ErrDuplicateEmail
		case strings.Contains(e.Message, idxContact):
			return ErrDuplicateContact
		case strings.Contains(e.Message, idxRegistrationID):
			return ErrDuplicateID
		default:
			return ErrDuplicateID
		}
	}
	return nil
}
