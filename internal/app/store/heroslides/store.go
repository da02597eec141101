// internal/app/store/heroslides/store.go
package heroslides

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/system/txn"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for hero slides.
const CollectionName = "hero_slides"

// Store provides access to the hero_slides collection and maintains the
// manual display order. Order values stay contiguous 0..n-1: creation appends,
// deletion renumbers the survivors, and Move commits a whole renumbering in
// one transaction.
type Store struct {
	c      *mongo.Collection
	db     *mongo.Database
	logger *zap.Logger
}

// New creates a new hero slide store.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		c:      db.Collection(CollectionName),
		db:     db,
		logger: logger,
	}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order", Value: 1}},
	})
	return err
}

// List returns all slides in display order.
func (s *Store) List(ctx context.Context) ([]models.HeroSlide, error) {
	cursor, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slides []models.HeroSlide
	if err := cursor.All(ctx, &slides); err != nil {
		return nil, err
	}
	return slides, nil
}

// GetByID retrieves a slide by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.HeroSlide, error) {
	var slide models.HeroSlide
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&slide); err != nil {
		return nil, err
	}
	return &slide, nil
}

// CreateInput contains the input for creating a slide.
type CreateInput struct {
	Title    string
	Subtitle string
	Image    string
	CTAText  string
	CTALink  string
}

// Create appends a new slide at the end of the display sequence.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.HeroSlide, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	slide := models.HeroSlide{
		ID:       primitive.NewObjectID(),
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Image:    input.Image,
		CTAText:  input.CTAText,
		CTALink:  input.CTALink,
		Order:    int(count),
	}

	if _, err := s.c.InsertOne(ctx, slide); err != nil {
		return nil, err
	}
	return &slide, nil
}

// UpdateInput contains the input for updating a slide. Nil fields are left
// untouched; Order is never updated here, only through Move.
type UpdateInput struct {
	Title    *string
	Subtitle *string
	Image    *string
	CTAText  *string
	CTALink  *string
}

// Update updates a slide's content fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Subtitle != nil {
		set["subtitle"] = *input.Subtitle
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.CTAText != nil {
		set["cta_text"] = *input.CTAText
	}
	if input.CTALink != nil {
		set["cta_link"] = *input.CTALink
	}
	if len(set) == 0 {
		return nil
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes a slide and renumbers the remaining slides so order values
// stay contiguous.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db, s.logger, func(ctx context.Context) error {
		if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			return err
		}

		cursor, err := s.c.Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
		if err != nil {
			return err
		}
		var survivors []models.HeroSlide
		if err := cursor.All(ctx, &survivors); err != nil {
			return err
		}

		for idx, slide := range survivors {
			if slide.Order == idx {
				continue
			}
			if _, err := s.c.UpdateOne(ctx,
				bson.M{"_id": slide.ID},
				bson.M{"$set": bson.M{"order": idx}}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Move shifts the slide one position up or down in the display sequence and
// commits the resulting renumbering atomically. Boundary moves (first slide
// up, last slide down) are no-ops; moved reports whether anything changed.
//
// A failed commit leaves the store unchanged; callers must re-derive local
// state from the next snapshot rather than trust an optimistic copy.
func (s *Store) Move(ctx context.Context, id primitive.ObjectID, direction Direction) (moved bool, err error) {
	slides, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	index := -1
	for i, slide := range slides {
		if slide.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return false, mongo.ErrNoDocuments
	}

	reordered, ok := PlanMove(slides, index, direction)
	if !ok {
		return false, nil
	}

	err = txn.Run(ctx, s.db, s.logger, func(ctx context.Context) error {
		for _, slide := range reordered {
			if _, err := s.c.UpdateOne(ctx,
				bson.M{"_id": slide.ID},
				bson.M{"$set": bson.M{"order": slide.Order}}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Debug("hero slide moved",
		zap.String("id", id.Hex()),
		zap.String("direction", string(direction)))
	return true, nil
}
