// internal/app/store/admissions/store.go
package admissions

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ydpps/schoolcms/internal/domain/models"
)

// CollectionName is the MongoDB collection for admission applications.
const CollectionName = "admissions"

// Store provides access to the admissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new admissions store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

// CreateInput contains the input for recording a submitted application.
type CreateInput struct {
	StudentName string
	ParentName  string
	Grade       string
	Email       string
	Phone       string
	Address     string
	Message     string
}

// Create records a new application. Status is always pending on creation;
// callers cannot choose an initial status.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.AdmissionApplication, error) {
	app := models.AdmissionApplication{
		ID:          primitive.NewObjectID(),
		StudentName: input.StudentName,
		ParentName:  input.ParentName,
		Grade:       input.Grade,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Message:     input.Message,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByID retrieves an application by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AdmissionApplication, error) {
	var app models.AdmissionApplication
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// SetStatus overwrites the application status and stamps updated_at. There is
// no transition guard and no concurrency token: two admins racing on the same
// application resolve last-write-wins at the store, which is the accepted
// behavior.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": now,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete hard-deletes an application. Allowed at any status; there is no
// tombstone.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns all applications, newest first.
func (s *Store) List(ctx context.Context) ([]models.AdmissionApplication, error) {
	cursor, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var apps []models.AdmissionApplication
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// CountByStatus returns the number of applications in the given status,
// used by the admin dashboard.
func (s *Store) CountByStatus(ctx context.Context, status models.ApplicationStatus) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status})
}
