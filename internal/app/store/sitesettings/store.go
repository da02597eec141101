// internal/app/store/sitesettings/store.go
package sitesettings

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for site settings. The collection
// holds a single document per site, selected by the singleton marker.
const CollectionName = "settings"

// Store provides access to the singleton site settings document.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// singletonFilter selects the one settings document.
func singletonFilter() bson.M {
	return bson.M{"singleton": true}
}

// Get returns the stored settings document. Returns mongo.ErrNoDocuments if
// no settings have been saved yet; callers fall back to defaults.
func (s *Store) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := s.c.FindOne(ctx, singletonFilter()).Decode(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Partial is a merge-patch of the settings document. Nil fields are left
// untouched; the write never clobbers fields that were not specified.
type Partial struct {
	SchoolName *string
	ShortName  *string
	Logo       *string
	Email      *string
	Phone      *string
	Address    *string

	Facebook  *string
	Instagram *string
	YouTube   *string
}

// IsEmpty reports whether the patch specifies no fields at all.
func (p Partial) IsEmpty() bool {
	return p.SchoolName == nil && p.ShortName == nil && p.Logo == nil &&
		p.Email == nil && p.Phone == nil && p.Address == nil &&
		p.Facebook == nil && p.Instagram == nil && p.YouTube == nil
}

// Update merge-patches the singleton document, creating it on first write.
func (s *Store) Update(ctx context.Context, patch Partial) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.SchoolName != nil {
		set["school_name"] = *patch.SchoolName
	}
	if patch.ShortName != nil {
		set["short_name"] = *patch.ShortName
	}
	if patch.Logo != nil {
		set["logo"] = *patch.Logo
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Facebook != nil {
		set["socials.facebook"] = *patch.Facebook
	}
	if patch.Instagram != nil {
		set["socials.instagram"] = *patch.Instagram
	}
	if patch.YouTube != nil {
		set["socials.youtube"] = *patch.YouTube
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"singleton": true,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, singletonFilter(), update, opts)
	return err
}

// Exists checks if a settings document has been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, singletonFilter())
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Watch opens a change stream on the settings collection and returns a
// channel that signals whenever the document changes. The channel closes when
// ctx is cancelled or the stream fails.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	stream, err := s.c.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}()

	return changes, nil
}
