// internal/domain/models/heroslide.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// HeroSlide is one slide of the homepage hero slider.
//
// Order is the zero-based display position. After any successful reorder the
// order values across the collection are exactly 0..n-1 with no gaps or
// duplicates; new slides are appended with order equal to the current count.
type HeroSlide struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Subtitle string             `bson:"subtitle" json:"subtitle"`
	Image    string             `bson:"image" json:"image"` // URL returned by the upload service
	CTAText  string             `bson:"cta_text" json:"ctaText"`
	CTALink  string             `bson:"cta_link" json:"ctaLink"`
	Order    int                `bson:"order" json:"order"`
}
