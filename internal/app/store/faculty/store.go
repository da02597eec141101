// internal/app/store/faculty/store.go
package faculty

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for the faculty roster.
const CollectionName = "faculty"

// Store provides access to the faculty collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new faculty store.
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

// CreateInput contains the input for creating a faculty member.
type CreateInput struct {
	Name          string
	Role          string
	Qualification string
	Image         string
	Order         int
}

// Create creates a new faculty member.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.FacultyMember, error) {
	member := models.FacultyMember{
		ID:            primitive.NewObjectID(),
		Name:          input.Name,
		Role:          input.Role,
		Qualification: input.Qualification,
		Image:         input.Image,
		Order:         input.Order,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByID retrieves a faculty member by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacultyMember, error) {
	var member models.FacultyMember
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateInput contains the input for updating a faculty member. Nil fields
// are left untouched.
type UpdateInput struct {
	Name          *string
	Role          *string
	Qualification *string
	Image         *string
	Order         *int
}

// Update updates a faculty member.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Role != nil {
		set["role"] = *input.Role
	}
	if input.Qualification != nil {
		set["qualification"] = *input.Qualification
	}
	if input.Image != nil {
		set["image"] = *input.Image
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

// Delete deletes a faculty member.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns all faculty members. The sort field is a deployment choice:
// the roster historically sorted newest-first by creation time even though
// records carry a manual order field, so both remain supported.
func (s *Store) List(ctx context.Context, sort models.ListSort) ([]models.FacultyMember, error) {
	sortSpec := bson.D{{Key: "created_at", Value: -1}}
	if sort == models.SortByOrder {
		sortSpec = bson.D{{Key: "order", Value: 1}}
	}

	cursor, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(sortSpec))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.FacultyMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
