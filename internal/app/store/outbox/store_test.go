package outbox_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ydpps/schoolcms/internal/app/store/outbox"
	"github.com/ydpps/schoolcms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func enqueue(t *testing.T, store *outbox.Store, subject string) *outbox.Notification {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.Enqueue(ctx, outbox.EnqueueInput{
		To:            "parent@example.com",
		Subject:       subject,
		TextBody:      "body",
		HTMLBody:      "<p>body</p>",
		ApplicationID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	return n
}

func TestStore_Enqueue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := outbox.New(db)

	n := enqueue(t, store, "Admission Approved")

	if n.ID.IsZero() {
		t.Error("Enqueue() did not assign ID")
	}
	if n.Status != outbox.StatusPending {
		t.Errorf("Enqueue() Status = %q, want %q", n.Status, outbox.StatusPending)
	}
	if n.Attempts != 0 {
		t.Errorf("Enqueue() Attempts = %d, want 0", n.Attempts)
	}
}

func TestStore_Pending_OldestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := outbox.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, subject := range []string{"first", "second", "third"} {
		enqueue(t, store, subject)
		time.Sleep(5 * time.Millisecond)
	}

	pending, err := store.Pending(ctx, 2)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("Pending(2) returned %d entries, want 2", len(pending))
	}
	if pending[0].Subject != "first" || pending[1].Subject != "second" {
		t.Errorf("Pending() order = [%q, %q], want oldest first", pending[0].Subject, pending[1].Subject)
	}
}

func TestStore_MarkSent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := outbox.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n := enqueue(t, store, "subject")

	if err := store.MarkSent(ctx, n.ID); err != nil {
		t.Fatalf("MarkSent() error = %v", err)
	}

	pending, err := store.Pending(ctx, 0)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("Pending() after MarkSent returned %d entries, want 0", len(pending))
	}
}

func TestStore_MarkFailed_StaysPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := outbox.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n := enqueue(t, store, "subject")

	if err := store.MarkFailed(ctx, n.ID, errors.New("smtp connect refused")); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}

	pending, err := store.Pending(ctx, 0)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Pending() after MarkFailed returned %d entries, want 1", len(pending))
	}
	if pending[0].Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", pending[0].Attempts)
	}
	if pending[0].LastError != "smtp connect refused" {
		t.Errorf("LastError = %q, want the delivery error", pending[0].LastError)
	}
}

func TestStore_DeleteSentBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := outbox.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sent := enqueue(t, store, "old sent")
	if err := store.MarkSent(ctx, sent.ID); err != nil {
		t.Fatalf("MarkSent() error = %v", err)
	}
	enqueue(t, store, "still pending")

	deleted, err := store.DeleteSentBefore(ctx, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteSentBefore() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteSentBefore() = %d, want 1", deleted)
	}

	// The pending entry must survive regardless of age.
	pending, err := store.Pending(ctx, 0)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("Pending() returned %d entries, want 1", len(pending))
	}
}

func TestStore_CountByApplication(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := outbox.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	appID := primitive.NewObjectID()
	if _, err := store.Enqueue(ctx, outbox.EnqueueInput{
		To:            "parent@example.com",
		Subject:       "Admission Approved",
		TextBody:      "body",
		ApplicationID: appID,
	}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	enqueue(t, store, "other application")

	count, err := store.CountByApplication(ctx, appID)
	if err != nil {
		t.Fatalf("CountByApplication() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountByApplication() = %d, want 1", count)
	}
}
