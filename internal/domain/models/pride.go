// internal/domain/models/pride.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrideStudent is a student achievement showcased on the "Pride of School" page.
type PrideStudent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Achievement string             `bson:"achievement" json:"achievement"`
	Class       string             `bson:"class" json:"class"`
	Year        string             `bson:"year" json:"year"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
