// internal/app/store/admins/store.go
package admins

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for admin accounts.
const CollectionName = "admins"

// Store provides access to the admins collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new admin store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create creates a new admin account. Email is stored lowercased.
func (s *Store) Create(ctx context.Context, name, email, passwordHash string) (*models.Admin, error) {
	now := time.Now().UTC()
	admin := models.Admin{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByEmail retrieves an admin by email (case-insensitive).
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := s.c.FindOne(ctx, filter).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByID retrieves an admin by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// SetPassword replaces an admin's password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		},
	})
	return err
}
