// internal/app/store/notices/store.go
package notices

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for notices.
const CollectionName = "notices"

// Store provides access to the notices collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new notice store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}

// CreateInput contains the input for creating a notice.
type CreateInput struct {
	Title    string
	Content  string
	Category models.NoticeCategory
	Date     string
	FileURL  string
	FileName string
}

// Create creates a new notice.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Notice, error) {
	notice := models.Notice{
		ID:        primitive.NewObjectID(),
		Title:     input.Title,
		Content:   input.Content,
		Category:  input.Category,
		Date:      input.Date,
		FileURL:   input.FileURL,
		FileName:  input.FileName,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, notice); err != nil {
		return nil, err
	}
	return &notice, nil
}

// GetByID retrieves a notice by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notice, error) {
	var notice models.Notice
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&notice); err != nil {
		return nil, err
	}
	return &notice, nil
}

// UpdateInput contains the input for updating a notice. Nil fields are left
// untouched.
type UpdateInput struct {
	Title    *string
	Content  *string
	Category *models.NoticeCategory
	Date     *string
	FileURL  *string
	FileName *string
}

// Update updates a notice.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Content != nil {
		set["content"] = *input.Content
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Date != nil {
		set["date"] = *input.Date
	}
	if input.FileURL != nil {
		set["file_url"] = *input.FileURL
	}
	if input.FileName != nil {
		set["file_name"] = *input.FileName
	}
	if len(set) == 0 {
		return nil
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete deletes a notice.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns all notices ordered by date descending, newest first.
func (s *Store) List(ctx context.Context) ([]models.Notice, error) {
	cursor, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Notice
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
