// internal/app/store/pride/store.go
package pride

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for pride students.
const CollectionName = "pride_students"

// Store provides access to the pride_students collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new pride student store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "order", Value: 1}}},
	})
	return err
}

// CreateInput contains the input for creating a pride student entry.
type CreateInput struct {
	Name        string
	Achievement string
	Class       string
	Year        string
	Image       string
	Description string
	Order       int
}

// Create creates a new pride student entry.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.PrideStudent, error) {
	student := models.PrideStudent{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Achievement: input.Achievement,
		Class:       input.Class,
		Year:        input.Year,
		Image:       input.Image,
		Description: input.Description,
		Order:       input.Order,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, student); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByID retrieves a pride student entry by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PrideStudent, error) {
	var student models.PrideStudent
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateInput contains the input for updating a pride student entry. Nil
// fields are left untouched.
type UpdateInput struct {
	Name        *string
	Achievement *string
	Class       *string
	Year        *string
	Image       *string
	Description *string
	Order       *int
}

// Update updates a pride student entry.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Achievement != nil {
		set["achievement"] = *input.Achievement
	}
	if input.Class != nil {
		set["class"] = *input.Class
	}
	if input.Year != nil {
		set["year"] = *input.Year
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if len(set) == 0 {
		return nil
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete deletes a pride student entry.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns all pride students, sorted by the configured field (see the
// faculty store for why both sorts remain supported).
func (s *Store) List(ctx context.Context, sort models.ListSort) ([]models.PrideStudent, error) {
	sortSpec := bson.D{{Key: "created_at", Value: -1}}
	if sort == models.SortByOrder {
		sortSpec = bson.D{{Key: "order", Value: 1}}
	}

	cursor, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(sortSpec))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []models.PrideStudent
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
