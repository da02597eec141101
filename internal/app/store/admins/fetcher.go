// internal/app/store/admins/fetcher.go
package admins

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/system/auth"
	"github.com/ydpps/schoolcms/internal/app/system/timeouts"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// Fetcher implements auth.AdminFetcher to load fresh account data on each
// request, so deleted accounts and role changes take effect immediately.
type Fetcher struct {
	admins *mongo.Collection
	logger *zap.Logger
}

// NewFetcher creates an AdminFetcher that queries the given database.
func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		admins: db.Collection(CollectionName),
		logger: logger,
	}
}

// FetchAdmin retrieves an admin by ID and returns nil if the account is not
// found or any error occurs. This implements auth.AdminFetcher.
func (f *Fetcher) FetchAdmin(ctx context.Context, adminID string) *auth.SessionAdmin {
	oid, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var a models.Admin
	proj := options.FindOne().SetProjection(bson.M{
		"_id":   1,
		"name":  1,
		"email": 1,
		"role":  1,
	})
	if err := f.admins.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&a); err != nil {
		if err != mongo.ErrNoDocuments {
			f.logger.Warn("failed to fetch session admin",
				zap.String("admin_id", adminID), zap.Error(err))
		}
		return nil
	}

	return &auth.SessionAdmin{
		ID:    a.ID.Hex(),
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
