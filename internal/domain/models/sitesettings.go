// internal/domain/models/sitesettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Socials holds the school's social media links shown in the site footer.
type Socials struct {
	Facebook  string `bson:"facebook" json:"facebook"`
	Instagram string `bson:"instagram" json:"instagram"`
	YouTube   string `bson:"youtube" json:"youtube"`
}

// SiteSettings holds site-wide configuration edited from the admin settings
// page and read by every public page. There is a single settings document per
// site; partial updates merge field-by-field and never clobber fields that
// were not specified.
type SiteSettings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	SchoolName string `bson:"school_name" json:"schoolName"`
	ShortName  string `bson:"short_name" json:"shortName"`
	Logo       string `bson:"logo" json:"logo"` // URL of the uploaded logo
	Email      string `bson:"email" json:"email"`
	Phone      string `bson:"phone" json:"phone"`
	Address    string `bson:"address" json:"address"`

	Socials Socials `bson:"socials" json:"socials"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Default site settings, used until the stored document is first observed and
// to fill any fields a partially-populated document leaves empty.
const (
	DefaultSchoolName = "Yashoda Devi Paramount Public School"
	DefaultShortName  = "YDPPS"
	DefaultLogo       = "/images/logo.jpg"
	DefaultEmail      = "yashodhadeviparamountpublicsch@gmail.com"
	DefaultPhone      = "+91 98765 43210"
	DefaultAddress    = "Kharagpur - Asarganj Rd, Kharagpur, Singhpur, Bihar 811213"
)

// DefaultSiteSettings returns the built-in settings used before the stored
// document is observed.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SchoolName: DefaultSchoolName,
		ShortName:  DefaultShortName,
		Logo:       DefaultLogo,
		Email:      DefaultEmail,
		Phone:      DefaultPhone,
		Address:    DefaultAddress,
	}
}
