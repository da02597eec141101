// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a school calendar event. Publicly listed by Date ascending; the
// admin view shows past and upcoming events alike.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Date        string             `bson:"date" json:"date"` // calendar date, "2006-01-02"
	Time        string             `bson:"time" json:"time"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
