package registrations

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/pkg/database"
)

// Integration test against a real MongoDB. Set APEX_MONGO_URI to run,
// e.g. APEX_MONGO_URI=mongodb://127.0.0.1:27017 go test ./...
func newIntegrationRepo(t *testing.T) (*Repository, context.Context) {
	t.Helper()
	uri := os.Getenv("APEX_MONGO_URI")
	if uri == "" {
		t.Skip("APEX_MONGO_URI not set")
	}

	ctx := context.Background()
	manager := database.NewManager(uri, "apex_reels_test", nil)
	db, err := manager.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	t.Cleanup(func() { _ = manager.Close(context.Background()) })

	if err := db.Collection(CollectionName).Drop(ctx); err != nil {
		t.Fatalf("drop collection: %v", err)
	}

	repo := NewRepository(manager)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	return repo, ctx
}

func newReg(id, email, contact string, createdAt time.Time) models.Registration {
	return models.Registration{
		RegistrationID: id,
		FullName:       "Test User",
		Email:          email,
		Contact:        contact,
		Program:        "BBA",
		Semester:       "1",
		ProfileLink:    "https://www.instagram.com/reel/x/",
		Status:         models.StatusSubmitted,
		CreatedAt:      createdAt,
	}
}

func TestRepositoryInsertAndFind(t *testing.T) {
	repo, ctx := newIntegrationRepo(t)

	reg := newReg("REEL-0307-1111", "a@x.com", "1112223333", time.Now().UTC().Truncate(time.Millisecond))
	if err := repo.Insert(ctx, &reg); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.FindByRegistrationID(ctx, "REEL-0307-1111")
	if err != nil {
		t.Fatalf("FindByRegistrationID: %v", err)
	}
	if got == nil {
		t.Fatal("FindByRegistrationID returned nil")
	}
	if got.Email != "a@x.com" || got.Contact != "1112223333" || got.Status != models.StatusSubmitted {
		t.Errorf("round trip = %+v", got)
	}
}

func TestRepositoryDuplicateErrors(t *testing.T) {
	repo, ctx := newIntegrationRepo(t)

	first := newReg("REEL-0307-2222", "dup@x.com", "9998887777", time.Now().UTC())
	if err := repo.Insert(ctx, &first); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	tests := []struct {
		name string
		reg  models.Registration
		want error
	}{
		{"email", newReg("REEL-0307-3333", "dup@x.com", "1110001111", time.Now().UTC()), ErrDuplicateEmail},
		{"contact", newReg("REEL-0307-4444", "other@x.com", "9998887777", time.Now().UTC()), ErrDuplicateContact},
		{"registrationId", newReg("REEL-0307-2222", "third@x.com", "2220002222", time.Now().UTC()), ErrDuplicateID},
	}
	for _, tt := range tests {
		reg := tt.reg
		if err := repo.Insert(ctx, &reg); !errors.Is(err, tt.want) {
			t.Errorf("Insert(%s dup) error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestRepositoryExists(t *testing.T) {
	repo, ctx := newIntegrationRepo(t)

	reg := newReg("REEL-0307-5555", "e@x.com", "3334445555", time.Now().UTC())
	if err := repo.Insert(ctx, &reg); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	tests := []struct {
		email, contact string
		want           bool
	}{
		{"e@x.com", "", true},
		{"", "3334445555", true},
		{"missing@x.com", "3334445555", true}, // OR semantics
		{"missing@x.com", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := repo.Exists(ctx, tt.email, tt.contact)
		if err != nil {
			t.Fatalf("Exists(%q, %q): %v", tt.email, tt.contact, err)
		}
		if got != tt.want {
			t.Errorf("Exists(%q, %q) = %v, want %v", tt.email, tt.contact, got, tt.want)
		}
	}
}

func TestRepositoryListSortedAndFiltered(t *testing.T) {
	repo, ctx := newIntegrationRepo(t)

	base := time.Now().UTC().Truncate(time.Millisecond)
	regs := []models.Registration{
		newReg("REEL-0307-6661", "l1@x.com", "6000000001", base.Add(-2*time.Hour)),
		newReg("REEL-0307-6662", "l2@x.com", "6000000002", base.Add(-1*time.Hour)),
		newReg("REEL-0307-6663", "l3@x.com", "6000000003", base),
	}
	regs[0].Program = "BCA"
	for i := range regs {
		if err := repo.Insert(ctx, &regs[i]); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	all, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List = %d records, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("List not sorted newest first at %d", i)
		}
	}
	for _, reg := range all {
		if !reg.ID.IsZero() {
			t.Error("List leaked internal _id")
		}
	}

	bba, err := repo.List(ctx, Filter{Program: "BBA"})
	if err != nil {
		t.Fatalf("List(program): %v", err)
	}
	if len(bba) != 2 {
		t.Errorf("List(program=BBA) = %d records, want 2", len(bba))
	}

	recent, err := repo.List(ctx, Filter{StartDate: base.Add(-90 * time.Minute)})
	if err != nil {
		t.Fatalf("List(startDate): %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("List(startDate) = %d records, want 2", len(recent))
	}
}
