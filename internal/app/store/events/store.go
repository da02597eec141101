// internal/app/store/events/store.go
package events

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for calendar events.
const CollectionName = "events"

// Store provides access to the events collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new event store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	return err
}

// CreateInput contains the input for creating an event.
type CreateInput struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
}

// Create creates a new event.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Event, error) {
	event := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetByID retrieves an event by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateInput contains the input for updating an event. Nil fields are left
// untouched.
type UpdateInput struct {
	Title       *string
	Date        *string
	Time        *string
	Location    *string
	Description *string
}

// Update updates an event.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Date != nil {
		set["date"] = *input.Date
	}
	if input.Time != nil {
		set["time"] = *input.Time
	}
	if input.Location != nil {
		set["location"] = *input.Location
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if len(set) == 0 {
		return nil
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete deletes an event.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns all events ordered by date ascending. The admin view shows
// past and upcoming events alike; the public page filters on the client.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	cursor, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Event
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
