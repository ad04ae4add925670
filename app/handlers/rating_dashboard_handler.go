package handlers

import (
	"bufio"
	"context"
	"time"

	"github.com/amirphl/email-feedback/app/dto"
	"github.com/amirphl/email-feedback/app/view"
	businessflow "github.com/amirphl/email-feedback/business_flow"
	"github.com/amirphl/email-feedback/logger"
	"github.com/amirphl/email-feedback/utils"
	"github.com/gofiber/fiber/v3"
)

const dashboardPath = "/feedback/dashboard"

// RatingDashboardHandlerInterface defines contract for the internal feedback dashboard
type RatingDashboardHandlerInterface interface {
	Dashboard(c fiber.Ctx) error
	ListRatings(c fiber.Ctx) error
}

type RatingDashboardHandler struct {
	flow          businessflow.RatingDashboardFlow
	log           *logger.Logger
	title         string
	timeout       time.Duration
	exportTimeout time.Duration
}

func NewRatingDashboardHandler(flow businessflow.RatingDashboardFlow, log *logger.Logger, title string, timeout, exportTimeout time.Duration) RatingDashboardHandlerInterface {
	if exportTimeout <= 0 {
		exportTimeout = utils.DefaultExportTimeout
	}
	return &RatingDashboardHandler{
		flow:          flow,
		log:           log,
		title:         title,
		timeout:       timeout,
		exportTimeout: exportTimeout,
	}
}

// Dashboard renders the feedback dashboard, or streams an export when export=csv|xlsx
// @Summary Feedback Dashboard
// @Description HTML dashboard over stored ratings with filters, sorting and pagination. export=csv or export=xlsx returns every matching row as an attachment.
// @Tags Dashboard
// @Produce html
// @Produce text/csv
// @Param q query string false "Search in email, campaign UID, subject and comments"
// @Param pref query string false "Preference" Enums(more, less, stop)
// @Param rmin query int false "Minimum rating"
// @Param rmax query int false "Maximum rating"
// @Param start query string false "Start date (YYYY-MM-DD, UTC)"
// @Param end query string false "End date (YYYY-MM-DD, UTC, inclusive)"
// @Param sort query string false "Sort key" default(created_desc)
// @Param limit query int false "Page size" Enums(25, 50, 100, 200)
// @Param page query int false "Page number" default(1)
// @Param export query string false "Export format" Enums(csv, xlsx)
// @Success 200 {string} string "Dashboard HTML or export attachment"
// @Failure 500 {string} string "Dashboard error page"
// @Router /feedback/dashboard [get]
func (h *RatingDashboardHandler) Dashboard(c fiber.Ctx) error {
	var params dto.DashboardQueryParams
	if err := c.Bind().Query(&params); err != nil {
		params = dto.DashboardQueryParams{}
	}
	query := businessflow.NormalizeDashboardQuery(params)

	if format, err := businessflow.ParseExportFormat(params.Export); err == nil {
		return h.export(c, query, format)
	}

	ctx, cancel := createRequestContext(c, dashboardPath, h.timeout)
	defer cancel()

	result, err := h.flow.Dashboard(ctx, query)
	if err != nil {
		c.Status(fiber.StatusInternalServerError).Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return view.RenderError(c, h.title, "The dashboard could not be loaded. Please try again.")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return view.Render(c, view.NewDashboardPage(h.title, dashboardPath, query, result))
}

// export streams every matching row; the query runs while the body is written
func (h *RatingDashboardHandler) export(c fiber.Ctx, query businessflow.DashboardQuery, format businessflow.ExportFormat) error {
	filename := format.Filename(utils.UTCNow())
	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderCacheControl, "no-store")

	baseCtx, cancelBase := createRequestContext(c, dashboardPath+"?export="+string(format), h.exportTimeout)
	return c.SendStreamWriter(func(w *bufio.Writer) {
		defer cancelBase()
		h.streamExport(baseCtx, query, format, w)
	})
}

func (h *RatingDashboardHandler) streamExport(ctx context.Context, query businessflow.DashboardQuery, format businessflow.ExportFormat, w *bufio.Writer) {
	rows, err := h.flow.Export(ctx, query, format, w)
	if err != nil {
		// headers are already sent; the client sees a truncated file
		h.log.Error("export stream aborted", "format", format, "rows", rows, "error", err)
	}
	if err := w.Flush(); err != nil {
		h.log.Warn("export flush failed", "format", format, "error", err)
	}
}

// ListRatings returns the dashboard data as JSON
// @Summary List Email Ratings
// @Description Same filters, sorting and pagination as the HTML dashboard, returned as JSON
// @Tags Dashboard
// @Produce json
// @Param q query string false "Search in email, campaign UID, subject and comments"
// @Param pref query string false "Preference" Enums(more, less, stop)
// @Param rmin query int false "Minimum rating"
// @Param rmax query int false "Maximum rating"
// @Param start query string false "Start date (YYYY-MM-DD, UTC)"
// @Param end query string false "End date (YYYY-MM-DD, UTC, inclusive)"
// @Param sort query string false "Sort key" default(created_desc)
// @Param limit query int false "Page size" Enums(25, 50, 100, 200)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.APIResponse{data=dto.RatingDashboardResponse} "Ratings retrieved"
// @Failure 500 {object} dto.APIResponse "Query failed"
// @Router /api/v1/admin/ratings [get]
func (h *RatingDashboardHandler) ListRatings(c fiber.Ctx) error {
	var params dto.DashboardQueryParams
	if err := c.Bind().Query(&params); err != nil {
		params = dto.DashboardQueryParams{}
	}
	query := businessflow.NormalizeDashboardQuery(params)

	ctx, cancel := createRequestContext(c, "/api/v1/admin/ratings", h.timeout)
	defer cancel()

	result, err := h.flow.Dashboard(ctx, query)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to load ratings", "RATING_DASHBOARD_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Ratings retrieved successfully", result)
}
