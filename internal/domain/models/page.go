// internal/domain/models/page.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AboutPage holds the editable free-text sections of the about page. It is a
// single content-override document keyed by the "about" slug in the
// pages_content collection.
type AboutPage struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug string             `bson:"slug" json:"slug"`

	HeroTitle    string `bson:"hero_title" json:"heroTitle"`
	HeroSubtitle string `bson:"hero_subtitle" json:"heroSubtitle"`
	HeroImage    string `bson:"hero_image,omitempty" json:"heroImage,omitempty"`

	HistoryTitle   string `bson:"history_title" json:"historyTitle"`
	HistoryContent string `bson:"history_content" json:"historyContent"`
	HistoryImage   string `bson:"history_image,omitempty" json:"historyImage,omitempty"`

	VisionTitle   string `bson:"vision_title" json:"visionTitle"`
	VisionContent string `bson:"vision_content" json:"visionContent"`

	MissionTitle   string `bson:"mission_title" json:"missionTitle"`
	MissionContent string `bson:"mission_content" json:"missionContent"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// PageSlugAbout is the slug of the about-page content document.
const PageSlugAbout = "about"

// DefaultAboutPage returns the content served until an admin saves the page.
func DefaultAboutPage() AboutPage {
	return AboutPage{
		Slug:           PageSlugAbout,
		HeroTitle:      "About Us",
		HeroSubtitle:   "Dedicated to fostering holistic development and academic excellence.",
		HistoryTitle:   "Our History",
		HistoryContent: "Yashoda Devi Paramount Public School was founded with a vision...",
		VisionTitle:    "Our Vision",
		VisionContent:  "To be a center of excellence in education...",
		MissionTitle:   "Our Mission",
		MissionContent: "To provide a stimulating learning environment...",
	}
}
