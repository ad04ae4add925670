package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/repository"
	"github.com/amirphl/email-feedback/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (repository.EmailRatingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return repository.NewEmailRatingRepository(gdb), mock
}

func TestEmailRatingRepositorySaveWithPostgresDialect(t *testing.T) {
	t.Run("insert returns id", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "email_ratings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectCommit()

		row := &models.EmailRating{Rating: 4, Preference: models.PreferenceLess, Email: utils.ToPtr("x@example.com")}
		require.NoError(t, repo.Save(context.Background(), row))
		assert.Equal(t, uint(7), row.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back and surfaces the cause", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		cause := errors.New("connection reset by peer")

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "email_ratings"`).WillReturnError(cause)
		mock.ExpectRollback()

		err := repo.Save(context.Background(), &models.EmailRating{Rating: 1, Preference: models.PreferenceStop})
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "failed to save entity")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmailRatingRepositoryQueryErrors(t *testing.T) {
	t.Run("count", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "email_ratings"`).WillReturnError(errors.New("timeout"))

		_, err := repo.Count(context.Background(), models.EmailRatingFilter{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count email ratings")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered page binds every predicate", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`SELECT \* FROM "email_ratings" WHERE .*LOWER\(email\) LIKE .* AND preference = .* AND rating >= .* AND rating <= .*ORDER BY rating DESC`).
			WithArgs("%a\\_b%", "%a\\_b%", "%a\\_b%", "%a\\_b%", "more", 2, 4, 25).
			WillReturnError(errors.New("boom"))

		_, err := repo.ByFilter(context.Background(), models.EmailRatingFilter{
			Search:     utils.ToPtr("A_B"),
			Preference: utils.ToPtr("more"),
			MinRating:  utils.ToPtr(2),
			MaxRating:  utils.ToPtr(4),
		}, "rating DESC", 25, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list email ratings")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
