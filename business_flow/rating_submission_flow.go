package businessflow

import (
	"context"
	"errors"

	"github.com/amirphl/email-feedback/app/dto"
	"github.com/amirphl/email-feedback/logger"
	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/repository"
	"github.com/amirphl/email-feedback/utils"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/amirphl/email-feedback/business_flow")

// RatingSubmissionFlow stores ratings posted from email landing pages.
// Public flow, no authentication required.
type RatingSubmissionFlow interface {
	Submit(ctx context.Context, req *dto.SubmitRatingRequest, metadata *ClientMetadata) (*dto.SubmitRatingResponse, error)
}

type RatingSubmissionFlowImpl struct {
	ratingRepo repository.EmailRatingRepository
	validate   *validator.Validate
	log        *logger.Logger
}

// ratingInput holds the only two fields with hard validation
type ratingInput struct {
	Rating     int    `validate:"min=1,max=5"`
	Preference string `validate:"oneof=more less stop"`
}

func NewRatingSubmissionFlow(ratingRepo repository.EmailRatingRepository, log *logger.Logger) RatingSubmissionFlow {
	return &RatingSubmissionFlowImpl{
		ratingRepo: ratingRepo,
		validate:   validator.New(),
		log:        log,
	}
}

// Submit validates req and inserts exactly one row, or none on any failure
func (f *RatingSubmissionFlowImpl) Submit(ctx context.Context, req *dto.SubmitRatingRequest, metadata *ClientMetadata) (*dto.SubmitRatingResponse, error) {
	ctx, span := tracer.Start(ctx, "RatingSubmissionFlow.Submit")
	defer span.End()

	if req == nil {
		req = &dto.SubmitRatingRequest{}
	}
	if metadata == nil {
		metadata = NewClientMetadata("", "")
	}

	input := ratingInput{Rating: int(req.Rating), Preference: req.Preference}
	if err := f.validate.Struct(input); err != nil {
		ratingRejectionsTotal.WithLabelValues("invalid_input").Inc()
		span.SetStatus(codes.Error, "invalid input")
		return nil, NewBusinessError("INVALID_RATING_INPUT", "Invalid input", errors.Join(ErrInvalidRatingInput, err))
	}

	row := buildEmailRating(req, metadata)
	if err := f.ratingRepo.Save(ctx, row); err != nil {
		ratingRejectionsTotal.WithLabelValues("storage_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		f.log.Error("failed to store email rating",
			"error", err,
			"request_id", metadata.RequestID,
			"campaign_uid", utils.Deref(row.CampaignUID),
		)
		return nil, NewBusinessError("RATING_INSERT_FAILED", "Insert failed", errors.Join(ErrRatingStorageFailed, err))
	}

	ratingSubmissionsTotal.WithLabelValues(row.Preference).Inc()
	span.SetAttributes(
		attribute.Int("rating.value", row.Rating),
		attribute.String("rating.preference", row.Preference),
		attribute.Int64("rating.id", int64(row.ID)),
	)
	f.log.Info("email rating stored",
		"id", row.ID,
		"rating", row.Rating,
		"preference", row.Preference,
		"request_id", metadata.RequestID,
	)

	return &dto.SubmitRatingResponse{OK: true, ID: row.ID}, nil
}

// buildEmailRating applies trimming, caps and blank-to-nil to every optional field
func buildEmailRating(req *dto.SubmitRatingRequest, metadata *ClientMetadata) *models.EmailRating {
	userAgent := utils.CleanOptional(req.UserAgent, 0)
	if userAgent == nil {
		userAgent = utils.CleanOptional(metadata.UserAgent, 0)
	}

	return &models.EmailRating{
		Rating:        int(req.Rating),
		Preference:    req.Preference,
		Comments:      utils.CleanOptional(req.Comments, 0),
		CampaignUID:   utils.CleanOptional(req.CampaignUID, models.MaxUIDLength),
		SubscriberUID: utils.CleanOptional(req.SubscriberUID, models.MaxUIDLength),
		Email:         utils.CleanOptional(req.Email, models.MaxEmailLength),
		ListUID:       utils.CleanOptional(req.ListUID, models.MaxUIDLength),
		Subject:       utils.CleanOptional(req.Subject, models.MaxSubjectLength),
		PageURL:       utils.CleanOptional(req.PageURL, 0),
		Referrer:      utils.CleanOptional(req.Referrer, 0),
		UserAgent:     userAgent,
		TZ:            utils.CleanOptional(req.TZ, models.MaxTimezoneLength),
		IPAddress:     utils.CleanOptional(metadata.IPAddress, models.MaxIPLength),
	}
}
