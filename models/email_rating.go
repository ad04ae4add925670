// Package models contains the persisted entities and their filter types
package models

import (
	"time"

	"github.com/amirphl/email-feedback/utils"
	"gorm.io/gorm"
)

// Preference values a recipient can choose for future email frequency
const (
	PreferenceMore = "more"
	PreferenceLess = "less"
	PreferenceStop = "stop"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Column caps in characters
const (
	MaxUIDLength      = 64
	MaxEmailLength    = 255
	MaxSubjectLength  = 255
	MaxTimezoneLength = 64
	MaxIPLength       = 64
)

// Preferences lists every accepted preference in display order
var Preferences = []string{PreferenceMore, PreferenceLess, PreferenceStop}

// IsValidPreference reports whether p is one of more, less, stop
func IsValidPreference(p string) bool {
	for _, v := range Preferences {
		if v == p {
			return true
		}
	}
	return false
}

// IsValidRating reports whether r is within 1..5
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// EmailRating is one satisfaction rating submitted from an email campaign.
// Optional columns are nil when the submitter left them blank.
type EmailRating struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `gorm:"not null;index:idx_email_ratings_created_at" json:"created_at"`
	Rating        int       `gorm:"type:smallint;not null;index:idx_email_ratings_rating" json:"rating"`
	Preference    string    `gorm:"size:8;not null;index:idx_email_ratings_preference" json:"preference"`
	Comments      *string   `gorm:"type:text" json:"comments,omitempty"`
	CampaignUID   *string   `gorm:"size:64;index:idx_email_ratings_campaign_uid" json:"campaign_uid,omitempty"`
	SubscriberUID *string   `gorm:"size:64" json:"subscriber_uid,omitempty"`
	Email         *string   `gorm:"size:255" json:"email,omitempty"`
	ListUID       *string   `gorm:"size:64" json:"list_uid,omitempty"`
	Subject       *string   `gorm:"size:255" json:"subject,omitempty"`
	PageURL       *string   `gorm:"type:text" json:"page_url,omitempty"`
	Referrer      *string   `gorm:"type:text" json:"referrer,omitempty"`
	UserAgent     *string   `gorm:"type:text" json:"user_agent,omitempty"`
	TZ            *string   `gorm:"column:tz;size:64" json:"tz,omitempty"`
	IPAddress     *string   `gorm:"size:64" json:"ip_address,omitempty"`
}

// TableName returns the table name for EmailRating
func (EmailRating) TableName() string { return "email_ratings" }

// BeforeCreate stamps created_at in UTC unless the caller already set it
func (r *EmailRating) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	} else {
		r.CreatedAt = r.CreatedAt.UTC()
	}
	return nil
}

// EmailRatingFilter narrows the rating set. Nil fields do not filter.
// CreatedBefore is exclusive.
type EmailRatingFilter struct {
	Search        *string
	Preference    *string
	MinRating     *int
	MaxRating     *int
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// RatingCount is one row of a per-rating GROUP BY
type RatingCount struct {
	Rating int
	Total  int64
}

// PreferenceCount is one row of a per-preference GROUP BY
type PreferenceCount struct {
	Preference string
	Total      int64
}

// RatingAverage holds the average and row count of a filtered set
type RatingAverage struct {
	Average float64
	Total   int64
}
