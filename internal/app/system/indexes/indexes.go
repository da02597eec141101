// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/store/admins"
	"github.com/ydpps/schoolcms/internal/app/store/admissions"
	"github.com/ydpps/schoolcms/internal/app/store/events"
	"github.com/ydpps/schoolcms/internal/app/store/faculty"
	"github.com/ydpps/schoolcms/internal/app/store/gallery"
	"github.com/ydpps/schoolcms/internal/app/store/heroslides"
	"github.com/ydpps/schoolcms/internal/app/store/messages"
	"github.com/ydpps/schoolcms/internal/app/store/notices"
	"github.com/ydpps/schoolcms/internal/app/store/outbox"
	"github.com/ydpps/schoolcms/internal/app/store/pages"
	"github.com/ydpps/schoolcms/internal/app/store/pride"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	ensurers := []struct {
		name string
		fn   func(context.Context) error
	}{
		{heroslides.CollectionName, heroslides.New(db, zap.NewNop()).EnsureIndexes},
		{notices.CollectionName, notices.New(db).EnsureIndexes},
		{events.CollectionName, events.New(db).EnsureIndexes},
		{faculty.CollectionName, faculty.New(db).EnsureIndexes},
		{pride.CollectionName, pride.New(db).EnsureIndexes},
		{gallery.CollectionName, gallery.New(db).EnsureIndexes},
		{admissions.CollectionName, admissions.New(db).EnsureIndexes},
		{messages.CollectionName, messages.New(db).EnsureIndexes},
		{pages.CollectionName, pages.New(db).EnsureIndexes},
		{admins.CollectionName, admins.New(db).EnsureIndexes},
		{outbox.CollectionName, outbox.New(db).EnsureIndexes},
	}

	var problems []string
	for _, e := range ensurers {
		if err := e.fn(ctx); err != nil {
			problems = append(problems, e.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
