package repository_test

import (
	"context"
	"testing"

	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/repository"
	testingutil "github.com/amirphl/email-feedback/testing"
	"github.com/amirphl/email-feedback/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against the goose schema; skipped unless TEST_DB_HOST is set
func TestEmailRatingRepositoryPostgres(t *testing.T) {
	db := testingutil.SetupPostgresTestDB(t)
	repo := repository.NewEmailRatingRepository(db)
	ctx := context.Background()
	seeded := seedRatings(t, db)

	t.Run("aggregates match the seeded set", func(t *testing.T) {
		avg, err := repo.Average(ctx, models.EmailRatingFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(len(seeded)), avg.Total)
		assert.InDelta(t, 3.25, avg.Average, 1e-9)

		counts, err := repo.CountByRating(ctx, models.EmailRatingFilter{})
		require.NoError(t, err)
		assert.Len(t, counts, 4)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		total, err := repo.Count(ctx, models.EmailRatingFilter{Search: utils.ToPtr("100%")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("check constraints reject out-of-range rows", func(t *testing.T) {
		err := repo.Save(ctx, &models.EmailRating{Rating: 6, Preference: models.PreferenceMore})
		assert.Error(t, err)

		err = repo.Save(ctx, &models.EmailRating{Rating: 3, Preference: "never"})
		assert.Error(t, err)
	})

	t.Run("stream visits matching rows", func(t *testing.T) {
		n := 0
		err := repo.Stream(ctx, models.EmailRatingFilter{Preference: utils.ToPtr(models.PreferenceMore)}, "", func(*models.EmailRating) error {
			n++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}
