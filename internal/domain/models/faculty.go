// internal/domain/models/faculty.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FacultyMember is one entry in the faculty roster.
//
// Order supports manual list ordering but the public listing may instead sort
// by creation time; which field drives the sort is a per-deployment
// configuration choice (see ListSort).
type FacultyMember struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Role          string             `bson:"role" json:"role"`
	Qualification string             `bson:"qualification" json:"qualification"`
	Image         string             `bson:"image" json:"image"`
	Order         int                `bson:"order" json:"order"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

// ListSort selects which field orders a public roster listing.
type ListSort string

const (
	// SortByCreatedAt lists newest-first by creation time.
	SortByCreatedAt ListSort = "created_at"
	// SortByOrder lists by the manually maintained order field, ascending.
	SortByOrder ListSort = "order"
)

// ParseListSort maps a configuration value to a ListSort, defaulting to
// creation time for unknown values.
func ParseListSort(s string) ListSort {
	if ListSort(s) == SortByOrder {
		return SortByOrder
	}
	return SortByCreatedAt
}
