package businessflow

import (
	"context"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/amirphl/email-feedback/app/dto"
	"github.com/amirphl/email-feedback/logger"
	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/repository"
	"github.com/amirphl/email-feedback/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RatingDashboardFlow answers dashboard views and exports over the stored ratings
type RatingDashboardFlow interface {
	Dashboard(ctx context.Context, query DashboardQuery) (*dto.RatingDashboardResponse, error)
	Export(ctx context.Context, query DashboardQuery, format ExportFormat, w io.Writer) (int64, error)
}

type RatingDashboardFlowImpl struct {
	ratingRepo repository.EmailRatingRepository
	log        *logger.Logger
}

func NewRatingDashboardFlow(ratingRepo repository.EmailRatingRepository, log *logger.Logger) RatingDashboardFlow {
	return &RatingDashboardFlowImpl{
		ratingRepo: ratingRepo,
		log:        log,
	}
}

// Dashboard runs the count, average, both distributions and the page query
// against one filter so every figure describes the same row set.
func (f *RatingDashboardFlowImpl) Dashboard(ctx context.Context, query DashboardQuery) (*dto.RatingDashboardResponse, error) {
	ctx, span := tracer.Start(ctx, "RatingDashboardFlow.Dashboard", trace.WithAttributes(
		attribute.String("dashboard.sort", query.Sort),
		attribute.Int("dashboard.page", query.Page),
		attribute.Int("dashboard.page_size", query.PageSize),
	))
	defer span.End()

	filter := query.Filter()

	total, err := f.ratingRepo.Count(ctx, filter)
	if err != nil {
		return nil, f.queryFailed(span, "count", err)
	}

	avg, err := f.ratingRepo.Average(ctx, filter)
	if err != nil {
		return nil, f.queryFailed(span, "average", err)
	}

	byRating, err := f.ratingRepo.CountByRating(ctx, filter)
	if err != nil {
		return nil, f.queryFailed(span, "rating distribution", err)
	}

	byPreference, err := f.ratingRepo.CountByPreference(ctx, filter)
	if err != nil {
		return nil, f.queryFailed(span, "preference distribution", err)
	}

	rows, err := f.ratingRepo.ByFilter(ctx, filter, query.OrderBy(), query.PageSize, query.Offset())
	if err != nil {
		return nil, f.queryFailed(span, "page", err)
	}

	items := make([]dto.EmailRatingItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToEmailRatingItem(r))
	}

	span.SetAttributes(attribute.Int64("dashboard.total", total))

	return &dto.RatingDashboardResponse{
		Summary: dto.RatingSummary{
			Total:                  total,
			AverageRating:          roundAverage(avg),
			RatingDistribution:     ratingBuckets(byRating),
			PreferenceDistribution: preferenceBuckets(byPreference),
		},
		Items: items,
		Pagination: dto.PaginationInfo{
			Page:       query.Page,
			PageSize:   query.PageSize,
			TotalItems: total,
			TotalPages: query.TotalPages(total),
		},
	}, nil
}

func (f *RatingDashboardFlowImpl) queryFailed(span trace.Span, stage string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, stage+" query failed")
	f.log.Error("dashboard query failed", "stage", stage, "error", err)
	return NewBusinessError("RATING_DASHBOARD_FAILED", "Failed to load ratings", errors.Join(ErrRatingQueryFailed, err))
}

// roundAverage rounds to two decimals and yields exactly 0 for an empty set
func roundAverage(avg models.RatingAverage) float64 {
	if avg.Total == 0 {
		return 0
	}
	return math.Round(avg.Average*100) / 100
}

// ratingBuckets returns one bucket per rating 1..5, zero-filled
func ratingBuckets(counts []models.RatingCount) []dto.DistributionBucket {
	byValue := make(map[int]int64, len(counts))
	for _, c := range counts {
		byValue[c.Rating] = c.Total
	}
	buckets := make([]dto.DistributionBucket, 0, models.MaxRating)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		buckets = append(buckets, dto.DistributionBucket{Label: strconv.Itoa(r), Count: byValue[r]})
	}
	return withPercentages(buckets)
}

// preferenceBuckets returns one bucket per preference in more, less, stop order
func preferenceBuckets(counts []models.PreferenceCount) []dto.DistributionBucket {
	byValue := make(map[string]int64, len(counts))
	for _, c := range counts {
		byValue[c.Preference] = c.Total
	}
	buckets := make([]dto.DistributionBucket, 0, len(models.Preferences))
	for _, p := range models.Preferences {
		buckets = append(buckets, dto.DistributionBucket{Label: p, Count: byValue[p]})
	}
	return withPercentages(buckets)
}

// withPercentages sets each bucket's share of the distribution total, one decimal
func withPercentages(buckets []dto.DistributionBucket) []dto.DistributionBucket {
	var sum int64
	for _, b := range buckets {
		sum += b.Count
	}
	if sum == 0 {
		return buckets
	}
	for i := range buckets {
		buckets[i].Percent = math.Round(float64(buckets[i].Count)*1000/float64(sum)) / 10
	}
	return buckets
}

// ToEmailRatingItem flattens a stored rating for display and export
func ToEmailRatingItem(r *models.EmailRating) dto.EmailRatingItem {
	return dto.EmailRatingItem{
		ID:            r.ID,
		CreatedAt:     r.CreatedAt.UTC(),
		Rating:        r.Rating,
		Preference:    r.Preference,
		Comments:      utils.Deref(r.Comments),
		CampaignUID:   utils.Deref(r.CampaignUID),
		SubscriberUID: utils.Deref(r.SubscriberUID),
		Email:         utils.Deref(r.Email),
		ListUID:       utils.Deref(r.ListUID),
		Subject:       utils.Deref(r.Subject),
		PageURL:       utils.Deref(r.PageURL),
		Referrer:      utils.Deref(r.Referrer),
		UserAgent:     utils.Deref(r.UserAgent),
		TZ:            utils.Deref(r.TZ),
		IPAddress:     utils.Deref(r.IPAddress),
	}
}
