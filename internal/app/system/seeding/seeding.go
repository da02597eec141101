// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminstore "github.com/ydpps/schoolcms/internal/app/store/admins"
	pagestore "github.com/ydpps/schoolcms/internal/app/store/pages"
	settingsstore "github.com/ydpps/schoolcms/internal/app/store/sitesettings"
	"github.com/ydpps/schoolcms/internal/app/system/authutil"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// AdminSeed holds the bootstrap admin account from configuration. Empty
// fields skip admin seeding.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, admin AdminSeed, logger *zap.Logger) error {
	if err := seedSettings(ctx, db, logger); err != nil {
		return err
	}
	if err := seedAboutPage(ctx, db, logger); err != nil {
		return err
	}
	return seedAdmin(ctx, db, admin, logger)
}

// seedSettings writes the default settings singleton on first boot. Admin
// edits afterwards are never overwritten.
func seedSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := settingsstore.New(db)

	exists, err := store.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	defaults := models.DefaultSiteSettings()
	patch := settingsstore.Partial{
		SchoolName: &defaults.SchoolName,
		ShortName:  &defaults.ShortName,
		Logo:       &defaults.Logo,
		Email:      &defaults.Email,
		Phone:      &defaults.Phone,
		Address:    &defaults.Address,
	}
	if err := store.Update(ctx, patch); err != nil {
		logger.Error("failed to seed site settings", zap.Error(err))
		return err
	}
	logger.Info("seeded default site settings")
	return nil
}

// seedAboutPage creates the about page content if it doesn't exist.
func seedAboutPage(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := pagestore.New(db)

	exists, err := store.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := store.SaveAbout(ctx, models.DefaultAboutPage()); err != nil {
		logger.Error("failed to seed about page", zap.Error(err))
		return err
	}
	logger.Info("seeded default about page")
	return nil
}

// seedAdmin creates the bootstrap admin account from configuration so the
// admin panel is reachable on a fresh database. Existing accounts are left
// alone.
func seedAdmin(ctx context.Context, db *mongo.Database, admin AdminSeed, logger *zap.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		logger.Warn("no seed admin configured, skipping admin seeding")
		return nil
	}

	store := adminstore.New(db)

	_, err := store.GetByEmail(ctx, admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if err := authutil.ValidatePassword(admin.Password); err != nil {
		logger.Error("seed admin password rejected",
			zap.String("email", admin.Email),
			zap.Error(err))
		return err
	}
	hash, err := authutil.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	name := admin.Name
	if name == "" {
		name = "Administrator"
	}
	if _, err := store.Create(ctx, name, admin.Email, hash); err != nil {
		logger.Error("failed to seed admin account",
			zap.String("email", admin.Email),
			zap.Error(err))
		return err
	}
	logger.Info("seeded admin account", zap.String("email", admin.Email))
	return nil
}
