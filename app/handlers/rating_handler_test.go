package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/email-feedback/app/dto"
	businessflow "github.com/amirphl/email-feedback/business_flow"
	"github.com/amirphl/email-feedback/logger"
	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/repository"
	testingutil "github.com/amirphl/email-feedback/testing"
	"github.com/amirphl/email-feedback/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenRatingRepository struct {
	repository.EmailRatingRepository
}

func (brokenRatingRepository) Save(context.Context, *models.EmailRating) error {
	return errors.New("connection reset")
}

func newSubmitApp(t *testing.T, repo repository.EmailRatingRepository) *fiber.App {
	t.Helper()
	h := NewRatingHandler(businessflow.NewRatingSubmissionFlow(repo, logger.NewNop()), logger.NewNop(), time.Second)

	app := fiber.New()
	app.Use(requestid.New())
	app.Post("/api/v1/ratings", h.Submit)
	return app
}

func decodeSubmitResponse(t *testing.T, resp *http.Response) dto.SubmitRatingResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.SubmitRatingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRatingHandler_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("json body", func(t *testing.T) {
		db := testingutil.SetupTestDB(t)
		repo := repository.NewEmailRatingRepository(db)
		app := newSubmitApp(t, repo)

		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/ratings",
			strings.NewReader(`{"rating":"4","preference":"less","email":" a@x.io ","comments":""}`))
		req.Header.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
		req.Header.Set(fiber.HeaderUserAgent, "HeaderAgent/1.0")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		out := decodeSubmitResponse(t, resp)
		assert.True(t, out.OK)
		require.NotZero(t, out.ID)

		row, err := repo.ByID(ctx, out.ID)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, 4, row.Rating)
		assert.Equal(t, "less", row.Preference)
		assert.Equal(t, "a@x.io", utils.Deref(row.Email))
		assert.Nil(t, row.Comments)
		assert.Equal(t, "HeaderAgent/1.0", utils.Deref(row.UserAgent))
	})

	t.Run("form body with proxy headers", func(t *testing.T) {
		db := testingutil.SetupTestDB(t)
		repo := repository.NewEmailRatingRepository(db)
		app := newSubmitApp(t, repo)

		form := url.Values{
			"rating":       {"5"},
			"preference":   {"more"},
			"campaign_uid": {"cmp-1"},
			"user_agent":   {"PayloadAgent"},
			"tz":           {"Europe/Berlin"},
		}
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/ratings", strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		req.Header.Set(fiber.HeaderUserAgent, "HeaderAgent/1.0")
		req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		out := decodeSubmitResponse(t, resp)

		row, err := repo.ByID(ctx, out.ID)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, 5, row.Rating)
		assert.Equal(t, "cmp-1", utils.Deref(row.CampaignUID))
		assert.Equal(t, "PayloadAgent", utils.Deref(row.UserAgent))
		assert.Equal(t, "Europe/Berlin", utils.Deref(row.TZ))
		assert.Equal(t, "198.51.100.7", utils.Deref(row.IPAddress))
	})

	t.Run("invalid input is rejected without insert", func(t *testing.T) {
		db := testingutil.SetupTestDB(t)
		repo := repository.NewEmailRatingRepository(db)
		app := newSubmitApp(t, repo)

		bodies := []struct {
			contentType string
			body        string
		}{
			{"application/json", `{"rating":6,"preference":"more"}`},
			{"application/json", `{"rating":3,"preference":"sometimes"}`},
			{"application/json", `{"rating":3,`},
			{"application/json", ``},
			{fiber.MIMEApplicationForm, "rating=abc&preference=more"},
			{fiber.MIMEApplicationForm, "rating=0&preference=stop"},
		}
		for _, b := range bodies {
			req := httptest.NewRequest(fiber.MethodPost, "/api/v1/ratings", strings.NewReader(b.body))
			req.Header.Set(fiber.HeaderContentType, b.contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, b.body)
			out := decodeSubmitResponse(t, resp)
			assert.Equal(t, dto.SubmitRatingResponse{OK: false, Error: "Invalid input"}, out)
		}

		total, err := repo.Count(ctx, models.EmailRatingFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("storage failure", func(t *testing.T) {
		app := newSubmitApp(t, brokenRatingRepository{})

		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/ratings", strings.NewReader(`{"rating":2,"preference":"stop"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		out := decodeSubmitResponse(t, resp)
		assert.Equal(t, dto.SubmitRatingResponse{OK: false, Error: "Insert failed"}, out)
	})
}

func TestCreateRequestContext(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "req-1" }}))
	app.Get("/", func(c fiber.Ctx) error {
		ctx, cancel := createRequestContext(c, "/", 0)
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(utils.DefaultRequestTimeout), deadline, time.Second)
		assert.Equal(t, "req-1", ctx.Value(utils.RequestIDKey))
		assert.Equal(t, "probe", ctx.Value(utils.UserAgentKey))
		assert.Equal(t, "/", ctx.Value(utils.EndpointKey))
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderUserAgent, "probe")
	resp, err := app.Test(req)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
