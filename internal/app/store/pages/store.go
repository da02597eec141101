// internal/app/store/pages/store.go
package pages

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for page content overrides.
const CollectionName = "pages_content"

// Store provides access to the pages_content collection, which holds the
// editable free-text sections of otherwise static pages (currently only the
// about page).
type Store struct {
	c *mongo.Collection
}

// New creates a new page content store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// GetAbout returns the about-page content, or the built-in defaults if no
// override has been saved yet.
func (s *Store) GetAbout(ctx context.Context) (*models.AboutPage, error) {
	var page models.AboutPage
	err := s.c.FindOne(ctx, bson.M{"slug": models.PageSlugAbout}).Decode(&page)
	if err == mongo.ErrNoDocuments {
		page = models.DefaultAboutPage()
		return &page, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// SaveAbout replaces the about-page content, creating the document on first
// save.
func (s *Store) SaveAbout(ctx context.Context, page models.AboutPage) error {
	now := time.Now().UTC()
	page.UpdatedAt = &now

	update := bson.M{
		"$set": bson.M{
			"hero_title":      page.HeroTitle,
			"hero_subtitle":   page.HeroSubtitle,
			"hero_image":      page.HeroImage,
			"history_title":   page.HistoryTitle,
			"history_content": page.HistoryContent,
			"history_image":   page.HistoryImage,
			"vision_title":    page.VisionTitle,
			"vision_content":  page.VisionContent,
			"mission_title":   page.MissionTitle,
			"mission_content": page.MissionContent,
			"updated_at":      page.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":  primitive.NewObjectID(),
			"slug": models.PageSlugAbout,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"slug": models.PageSlugAbout}, update, opts)
	return err
}

// Exists checks if an about-page override has been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"slug": models.PageSlugAbout})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
