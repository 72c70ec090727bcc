package contactstore

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tanneryworkspace/website/internal/domain/models"
	"github.com/tanneryworkspace/website/internal/testutil"
)

func TestStore_InsertAndGetByReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	msg, err := store.Insert(ctx, models.ContactMessage{
		Reference: "TW-ABC123",
		Name:      "Sam Carter",
		Email:     "sam@example.com",
		Subject:   "Day pass",
		Body:      "Do you have space on Friday?",
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if msg.ID.IsZero() {
		t.Error("Insert() should assign an ID")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("Insert() should set CreatedAt")
	}

	got, err := store.GetByReference(ctx, "TW-ABC123")
	if err != nil {
		t.Fatalf("GetByReference() error = %v", err)
	}
	if got.Email != "sam@example.com" {
		t.Errorf("Email = %q", got.Email)
	}

	if _, err := store.GetByReference(ctx, "TW-MISSING"); err != mongo.ErrNoDocuments {
		t.Errorf("GetByReference() for missing code error = %v, want %v", err, mongo.ErrNoDocuments)
	}
}

func TestStore_DeleteOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	old := models.ContactMessage{
		Reference: "TW-OLD",
		Name:      "Old Message",
		Email:     "old@example.com",
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	recent := models.ContactMessage{
		Reference: "TW-NEW",
		Name:      "New Message",
		Email:     "new@example.com",
		CreatedAt: time.Now().UTC(),
	}
	for _, m := range []models.ContactMessage{old, recent} {
		if _, err := store.Insert(ctx, m); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	deleted, err := store.DeleteOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if _, err := store.GetByReference(ctx, "TW-NEW"); err != nil {
		t.Errorf("recent message should survive purge: %v", err)
	}
	if _, err := store.GetByReference(ctx, "TW-OLD"); err != mongo.ErrNoDocuments {
		t.Errorf("old message should be purged, got err = %v", err)
	}
}
