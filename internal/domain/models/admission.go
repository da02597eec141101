// internal/domain/models/admission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus is the moderation state of an admission application.
//
// Every application starts as pending. Any status may be overwritten with any
// other status; no transition is enforced as terminal.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
)

// AllApplicationStatuses returns the valid application statuses.
func AllApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusPending, StatusUnderReview, StatusApproved, StatusRejected}
}

// IsValidApplicationStatus checks if a status value is one of the known statuses.
func IsValidApplicationStatus(s ApplicationStatus) bool {
	for _, v := range AllApplicationStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// AdmissionApplication is a public admission inquiry and its moderation state.
type AdmissionApplication struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentName string             `bson:"student_name" json:"studentName"`
	ParentName  string             `bson:"parent_name" json:"parentName"`
	Grade       string             `bson:"grade" json:"grade"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Status      ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
