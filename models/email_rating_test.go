package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPreference(t *testing.T) {
	for _, p := range []string{"more", "less", "stop"} {
		assert.True(t, IsValidPreference(p), p)
	}
	for _, p := range []string{"", "MORE", " more", "never", "unsubscribe"} {
		assert.False(t, IsValidPreference(p), p)
	}
}

func TestIsValidRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		assert.True(t, IsValidRating(r))
	}
	assert.False(t, IsValidRating(0))
	assert.False(t, IsValidRating(6))
	assert.False(t, IsValidRating(-1))
}

func TestEmailRatingBeforeCreate(t *testing.T) {
	t.Run("stamps zero time", func(t *testing.T) {
		r := &EmailRating{Rating: 5, Preference: PreferenceMore}
		before := time.Now().UTC()
		require.NoError(t, r.BeforeCreate(nil))
		assert.Equal(t, time.UTC, r.CreatedAt.Location())
		assert.False(t, r.CreatedAt.Before(before.Add(-time.Second)))
	})

	t.Run("keeps caller time in UTC", func(t *testing.T) {
		tehran := time.FixedZone("IRST", int((3*time.Hour + 30*time.Minute).Seconds()))
		at := time.Date(2024, 5, 1, 3, 30, 0, 0, tehran)
		r := &EmailRating{CreatedAt: at}
		require.NoError(t, r.BeforeCreate(nil))
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), r.CreatedAt)
	})
}

func TestEmailRatingTableName(t *testing.T) {
	assert.Equal(t, "email_ratings", EmailRating{}.TableName())
}
