// internal/app/store/outbox/store.go
package outbox

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for queued notifications.
const CollectionName = "notification_outbox"

// Status is the delivery state of a queued notification.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
)

// Notification is one queued email. The moderation workflow enqueues a
// notification in the same transaction as the status change it announces;
// a background dispatcher delivers pending entries and retries failures on
// the next tick. Delivery failure never affects the state change that
// produced the entry.
type Notification struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	To       string             `bson:"to"`
	Subject  string             `bson:"subject"`
	HTMLBody string             `bson:"html_body"`
	TextBody string             `bson:"text_body"`

	// ApplicationID links the notification to the admission application
	// whose approval produced it.
	ApplicationID primitive.ObjectID `bson:"application_id,omitempty"`

	Status    Status     `bson:"status"`
	Attempts  int        `bson:"attempts"`
	LastError string     `bson:"last_error,omitempty"`
	CreatedAt time.Time  `bson:"created_at"`
	SentAt    *time.Time `bson:"sent_at,omitempty"`
}

// Store provides access to the notification outbox.
type Store struct {
	c *mongo.Collection
}

// New creates a new outbox store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

// EnqueueInput contains the input for queueing a notification.
type EnqueueInput struct {
	To            string
	Subject       string
	HTMLBody      string
	TextBody      string
	ApplicationID primitive.ObjectID
}

// Enqueue adds a pending notification. Safe to call inside a transaction
// context so the enqueue commits or aborts with the surrounding write.
func (s *Store) Enqueue(ctx context.Context, input EnqueueInput) (*Notification, error) {
	n := Notification{
		ID:            primitive.NewObjectID(),
		To:            input.To,
		Subject:       input.Subject,
		HTMLBody:      input.HTMLBody,
		TextBody:      input.TextBody,
		ApplicationID: input.ApplicationID,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Pending returns up to limit pending notifications, oldest first.
func (s *Store) Pending(ctx context.Context, limit int64) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.c.Find(ctx, bson.M{"status": StatusPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pending []Notification
	if err := cursor.All(ctx, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// MarkSent records a successful delivery.
func (s *Store) MarkSent(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":  StatusSent,
			"sent_at": now,
		},
	})
	return err
}

// MarkFailed records a delivery failure. The entry stays pending and is
// retried on the dispatcher's next tick.
func (s *Store) MarkFailed(ctx context.Context, id primitive.ObjectID, sendErr error) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{"last_error": sendErr.Error()},
	})
	return err
}

// DeleteSentBefore removes delivered notifications sent before the cutoff.
func (s *Store) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.c.DeleteMany(ctx, bson.M{
		"status":  StatusSent,
		"sent_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CountByApplication returns how many notifications exist for an application,
// regardless of delivery state.
func (s *Store) CountByApplication(ctx context.Context, appID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"application_id": appID})
}
