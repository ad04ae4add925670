package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/amirphl/email-feedback/app/dto"
	businessflow "github.com/amirphl/email-feedback/business_flow"
	"github.com/amirphl/email-feedback/logger"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// RatingHandlerInterface defines contract for the public rating ingestion endpoint
type RatingHandlerInterface interface {
	Submit(c fiber.Ctx) error
}

type RatingHandler struct {
	flow    businessflow.RatingSubmissionFlow
	log     *logger.Logger
	timeout time.Duration
}

func NewRatingHandler(flow businessflow.RatingSubmissionFlow, log *logger.Logger, timeout time.Duration) RatingHandlerInterface {
	return &RatingHandler{
		flow:    flow,
		log:     log,
		timeout: timeout,
	}
}

// Submit stores one email satisfaction rating
// @Summary Submit Email Rating
// @Description Records a 1-5 rating and a mailing preference. Accepts a JSON body or form fields.
// @Tags Ratings
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.SubmitRatingRequest true "Rating payload"
// @Success 200 {object} dto.SubmitRatingResponse "Rating stored"
// @Failure 422 {object} dto.SubmitRatingResponse "Invalid rating or preference"
// @Failure 500 {object} dto.SubmitRatingResponse "Insert failed"
// @Router /api/v1/ratings [post]
func (h *RatingHandler) Submit(c fiber.Ctx) error {
	req := parseSubmission(c)

	metadata := businessflow.NewClientMetadata(
		businessflow.ResolveClientIP(func(name string) string { return c.Get(name) }, c.IP()),
		c.Get(fiber.HeaderUserAgent),
	)
	metadata.SetRequestID(requestid.FromContext(c))

	ctx, cancel := createRequestContext(c, "/api/v1/ratings", h.timeout)
	defer cancel()

	result, err := h.flow.Submit(ctx, req, metadata)
	if err != nil {
		if businessflow.IsInvalidRatingInput(err) {
			h.log.Debug("rating rejected", "request_id", metadata.RequestID, "reasons", validationMessages(err))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.SubmitRatingResponse{OK: false, Error: "Invalid input"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SubmitRatingResponse{OK: false, Error: "Insert failed"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// parseSubmission reads a JSON body when the content type says so and form
// fields otherwise. A body that does not decode counts as an empty payload.
func parseSubmission(c fiber.Ctx) *dto.SubmitRatingRequest {
	req := &dto.SubmitRatingRequest{}

	if strings.Contains(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		if err := json.Unmarshal(c.Body(), req); err != nil {
			return &dto.SubmitRatingRequest{}
		}
		return req
	}

	req.Rating = dto.FlexibleInt(dto.ParseLooseInt(c.FormValue("rating")))
	req.Preference = c.FormValue("preference")
	req.Comments = c.FormValue("comments")
	req.CampaignUID = c.FormValue("campaign_uid")
	req.SubscriberUID = c.FormValue("subscriber_uid")
	req.Email = c.FormValue("email")
	req.ListUID = c.FormValue("list_uid")
	req.Subject = c.FormValue("subject")
	req.PageURL = c.FormValue("page_url")
	req.Referrer = c.FormValue("referrer")
	req.UserAgent = c.FormValue("user_agent")
	req.TZ = c.FormValue("tz")
	return req
}
