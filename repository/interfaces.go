// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/email-feedback/models"
)

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
}

// EmailRatingRepository defines read and insert operations for email ratings.
// Every method applies the same filter semantics so counts, aggregates and
// pages describe one row set.
type EmailRatingRepository interface {
	Repository[models.EmailRating, models.EmailRatingFilter]
	Average(ctx context.Context, filter models.EmailRatingFilter) (models.RatingAverage, error)
	CountByRating(ctx context.Context, filter models.EmailRatingFilter) ([]models.RatingCount, error)
	CountByPreference(ctx context.Context, filter models.EmailRatingFilter) ([]models.PreferenceCount, error)
	Stream(ctx context.Context, filter models.EmailRatingFilter, orderBy string, fn func(*models.EmailRating) error) error
}
