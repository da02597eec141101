// internal/domain/models/gallery.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryImage is a photo in the public gallery. Gallery entries are created
// from an upload result and deleted; there is no edit.
type GalleryImage struct {
	ID  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	URL string             `bson:"url" json:"url"`

	// Path is the storage backend key of the image, kept so deleting the
	// entry can also delete the stored file. Not exposed to clients.
	Path string `bson:"path,omitempty" json:"-"`

	Title      string    `bson:"title,omitempty" json:"title,omitempty"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}
