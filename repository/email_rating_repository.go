package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirphl/email-feedback/models"
	"gorm.io/gorm"
)

const defaultRatingOrder = "created_at DESC, id DESC"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EmailRatingRepositoryImpl implements EmailRatingRepository with gorm
type EmailRatingRepositoryImpl struct {
	*BaseRepository[models.EmailRating, models.EmailRatingFilter]
}

// NewEmailRatingRepository creates a new email rating repository
func NewEmailRatingRepository(db *gorm.DB) EmailRatingRepository {
	return &EmailRatingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EmailRating, models.EmailRatingFilter](db),
	}
}

// ByFilter returns one page of ratings. A non-positive limit returns every match.
func (r *EmailRatingRepositoryImpl) ByFilter(ctx context.Context, filter models.EmailRatingFilter, orderBy string, limit, offset int) ([]*models.EmailRating, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.EmailRating{}), filter).Order(orderOrDefault(orderBy))
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.EmailRating
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list email ratings: %w", err)
	}
	return rows, nil
}

// Count returns the number of ratings matching filter
func (r *EmailRatingRepositoryImpl) Count(ctx context.Context, filter models.EmailRatingFilter) (int64, error) {
	var total int64
	err := r.applyFilter(r.getDB(ctx).Model(&models.EmailRating{}), filter).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count email ratings: %w", err)
	}
	return total, nil
}

// Average returns the unrounded mean rating and the row count. The mean is 0 for an empty set.
func (r *EmailRatingRepositoryImpl) Average(ctx context.Context, filter models.EmailRatingFilter) (models.RatingAverage, error) {
	var out models.RatingAverage
	err := r.applyFilter(r.getDB(ctx).Model(&models.EmailRating{}), filter).
		Select("COALESCE(CAST(AVG(rating) AS DOUBLE PRECISION), 0) AS average, COUNT(*) AS total").
		Scan(&out).Error
	if err != nil {
		return models.RatingAverage{}, fmt.Errorf("failed to average email ratings: %w", err)
	}
	return out, nil
}

// CountByRating returns one row per rating value present in the filtered set
func (r *EmailRatingRepositoryImpl) CountByRating(ctx context.Context, filter models.EmailRatingFilter) ([]models.RatingCount, error) {
	var out []models.RatingCount
	err := r.applyFilter(r.getDB(ctx).Model(&models.EmailRating{}), filter).
		Select("rating, COUNT(*) AS total").
		Group("rating").
		Order("rating").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group email ratings by rating: %w", err)
	}
	return out, nil
}

// CountByPreference returns one row per preference present in the filtered set
func (r *EmailRatingRepositoryImpl) CountByPreference(ctx context.Context, filter models.EmailRatingFilter) ([]models.PreferenceCount, error) {
	var out []models.PreferenceCount
	err := r.applyFilter(r.getDB(ctx).Model(&models.EmailRating{}), filter).
		Select("preference, COUNT(*) AS total").
		Group("preference").
		Order("preference").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group email ratings by preference: %w", err)
	}
	return out, nil
}

// Stream walks every matching rating through a database cursor, calling fn
// once per row. Iteration stops at the first error fn returns.
func (r *EmailRatingRepositoryImpl) Stream(ctx context.Context, filter models.EmailRatingFilter, orderBy string, fn func(*models.EmailRating) error) error {
	db := r.getDB(ctx)
	rows, err := r.applyFilter(db.Model(&models.EmailRating{}), filter).Order(orderOrDefault(orderBy)).Rows()
	if err != nil {
		return fmt.Errorf("failed to open email rating cursor: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating models.EmailRating
		if err := db.ScanRows(rows, &rating); err != nil {
			return fmt.Errorf("failed to scan email rating: %w", err)
		}
		if err := fn(&rating); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate email ratings: %w", err)
	}
	return nil
}

// applyFilter adds one bound predicate per populated filter field
func (r *EmailRatingRepositoryImpl) applyFilter(query *gorm.DB, filter models.EmailRatingFilter) *gorm.DB {
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(*filter.Search)) + "%"
		query = query.Where(
			`(LOWER(email) LIKE ? ESCAPE '\' OR LOWER(campaign_uid) LIKE ? ESCAPE '\' OR LOWER(subject) LIKE ? ESCAPE '\' OR LOWER(comments) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Preference != nil {
		query = query.Where("preference = ?", *filter.Preference)
	}
	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		query = query.Where("rating <= ?", *filter.MaxRating)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

func orderOrDefault(orderBy string) string {
	if orderBy == "" {
		return defaultRatingOrder
	}
	return orderBy
}
