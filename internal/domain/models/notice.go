// internal/domain/models/notice.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoticeCategory classifies a notice on the public notice board.
type NoticeCategory string

const (
	NoticeGeneral  NoticeCategory = "General"
	NoticeAcademic NoticeCategory = "Academic"
	NoticeEvent    NoticeCategory = "Event"
	NoticeHoliday  NoticeCategory = "Holiday"
	NoticeExam     NoticeCategory = "Exam"
)

// AllNoticeCategories returns the valid notice categories.
func AllNoticeCategories() []NoticeCategory {
	return []NoticeCategory{NoticeGeneral, NoticeAcademic, NoticeEvent, NoticeHoliday, NoticeExam}
}

// IsValidNoticeCategory checks if a category value is one of the known categories.
func IsValidNoticeCategory(c NoticeCategory) bool {
	for _, v := range AllNoticeCategories() {
		if v == c {
			return true
		}
	}
	return false
}

// Notice is a notice-board entry. Publicly listed by Date descending.
type Notice struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	Category NoticeCategory     `bson:"category" json:"category"`
	Date     string             `bson:"date" json:"date"` // calendar date, "2006-01-02"

	// Optional attachment, persisted as the URL the upload service returned.
	FileURL  string `bson:"file_url,omitempty" json:"fileUrl,omitempty"`
	FileName string `bson:"file_name,omitempty" json:"fileName,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
