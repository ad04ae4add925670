package testing

import (
	gotesting "testing"
	"time"

	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/utils"
	"gorm.io/gorm"
)

// RatingOption customizes a fixture rating before it is inserted
type RatingOption func(*models.EmailRating)

func WithPreference(p string) RatingOption {
	return func(r *models.EmailRating) { r.Preference = p }
}

func WithCreatedAt(t time.Time) RatingOption {
	return func(r *models.EmailRating) { r.CreatedAt = t.UTC() }
}

func WithEmail(email string) RatingOption {
	return func(r *models.EmailRating) { r.Email = utils.ToPtr(email) }
}

func WithCampaign(uid string) RatingOption {
	return func(r *models.EmailRating) { r.CampaignUID = utils.ToPtr(uid) }
}

func WithSubject(subject string) RatingOption {
	return func(r *models.EmailRating) { r.Subject = utils.ToPtr(subject) }
}

func WithComments(comments string) RatingOption {
	return func(r *models.EmailRating) { r.Comments = utils.ToPtr(comments) }
}

// CreateTestRating inserts one rating, defaulting to preference "more"
func CreateTestRating(t gotesting.TB, db *gorm.DB, rating int, opts ...RatingOption) *models.EmailRating {
	t.Helper()

	row := &models.EmailRating{
		Rating:     rating,
		Preference: models.PreferenceMore,
	}
	for _, opt := range opts {
		opt(row)
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test rating: %v", err)
	}
	return row
}
