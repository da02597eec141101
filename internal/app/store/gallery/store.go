// internal/app/store/gallery/store.go
package gallery

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for gallery images.
const CollectionName = "gallery"

// Store provides access to the gallery collection. Gallery entries are
// created from an upload result and deleted; there is no update.
type Store struct {
	c *mongo.Collection
}

// New creates a new gallery store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "uploaded_at", Value: -1}},
	})
	return err
}

// Create records an uploaded image. URL is the location the upload service
// returned and path its storage key; title is optional.
func (s *Store) Create(ctx context.Context, url, path, title string) (*models.GalleryImage, error) {
	image := models.GalleryImage{
		ID:         primitive.NewObjectID(),
		URL:        url,
		Path:       path,
		Title:      title,
		UploadedAt: time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, image); err != nil {
		return nil, err
	}
	return &image, nil
}

// GetByID retrieves a gallery image by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&image); err != nil {
		return nil, err
	}
	return &image, nil
}

// Delete deletes a gallery image.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns all gallery images, newest upload first.
func (s *Store) List(ctx context.Context) ([]models.GalleryImage, error) {
	cursor, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var images []models.GalleryImage
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}
