package businessflow

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/utils"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExportFormat selects the attachment produced by Export
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ParseExportFormat maps the dashboard's export parameter to a format
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(raw) {
	case ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	default:
		return "", ErrUnsupportedExportFormat
	}
}

// ContentType returns the MIME type of the attachment
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns a timestamped attachment name such as email_ratings_20240131_235959.csv
func (f ExportFormat) Filename(now time.Time) string {
	return fmt.Sprintf("email_ratings_%s.%s", now.UTC().Format("20060102_150405"), string(f))
}

// ExportColumns is the header row of every export, one entry per persisted column
var ExportColumns = []string{
	"id",
	"created_at",
	"rating",
	"preference",
	"comments",
	"campaign_uid",
	"subscriber_uid",
	"email",
	"list_uid",
	"subject",
	"page_url",
	"referrer",
	"user_agent",
	"tz",
	"ip_address",
}

const (
	exportTimeLayout = "2006-01-02 15:04:05"
	csvFlushEvery    = 500
	xlsxSheetName    = "Ratings"
)

// Export writes every rating matching query, ignoring pagination, to w.
// Rows are written as they are read from the database cursor.
func (f *RatingDashboardFlowImpl) Export(ctx context.Context, query DashboardQuery, format ExportFormat, w io.Writer) (int64, error) {
	ctx, span := tracer.Start(ctx, "RatingDashboardFlow.Export")
	defer span.End()
	span.SetAttributes(attribute.String("export.format", string(format)), attribute.String("export.sort", query.Sort))

	var (
		written int64
		err     error
	)
	switch format {
	case ExportCSV:
		written, err = f.exportCSV(ctx, query, w)
	case ExportXLSX:
		written, err = f.exportXLSX(ctx, query, w)
	default:
		err = NewBusinessError("UNSUPPORTED_EXPORT_FORMAT", "Unsupported export format", ErrUnsupportedExportFormat)
	}

	span.SetAttributes(attribute.Int64("export.rows", written))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		f.log.Error("rating export failed", "format", format, "rows_written", written, "error", err)
		return written, err
	}

	ratingExportsTotal.WithLabelValues(string(format)).Inc()
	ratingExportRows.WithLabelValues(string(format)).Observe(float64(written))
	f.log.Info("rating export completed", "format", format, "rows", written)
	return written, nil
}

func (f *RatingDashboardFlowImpl) exportCSV(ctx context.Context, query DashboardQuery, w io.Writer) (int64, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return 0, NewBusinessError("CSV_WRITE_ERROR", "Failed to write CSV header", err)
	}

	var written int64
	err := f.ratingRepo.Stream(ctx, query.Filter(), query.OrderBy(), func(r *models.EmailRating) error {
		if err := cw.Write(exportRecord(r)); err != nil {
			return NewBusinessError("CSV_WRITE_ERROR", "Failed to write CSV row", err)
		}
		written++
		if written%csvFlushEvery == 0 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return NewBusinessError("CSV_WRITE_ERROR", "Failed to flush CSV", err)
			}
		}
		return nil
	})
	if err != nil {
		return written, exportFailed(err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, NewBusinessError("CSV_WRITE_ERROR", "Failed to flush CSV", err)
	}
	return written, nil
}

func (f *RatingDashboardFlowImpl) exportXLSX(ctx context.Context, query DashboardQuery, w io.Writer) (int64, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), xlsxSheetName); err != nil {
		return 0, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to prepare worksheet", err)
	}
	sw, err := xl.NewStreamWriter(xlsxSheetName)
	if err != nil {
		return 0, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to open worksheet stream", err)
	}

	header := make([]any, len(ExportColumns))
	for i, c := range ExportColumns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel header", err)
	}

	var written int64
	err = f.ratingRepo.Stream(ctx, query.Filter(), query.OrderBy(), func(r *models.EmailRating) error {
		cell, err := excelize.CoordinatesToCellName(1, int(written)+2)
		if err != nil {
			return NewBusinessError("EXCEL_WRITE_ERROR", "Too many rows for one worksheet", err)
		}
		record := exportRecord(r)
		values := make([]any, len(record))
		for i, v := range record {
			values[i] = v
		}
		// keep numeric columns numeric in the sheet
		values[0] = r.ID
		values[2] = r.Rating
		if err := sw.SetRow(cell, values); err != nil {
			return NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel row", err)
		}
		written++
		return nil
	})
	if err != nil {
		return written, exportFailed(err)
	}

	if err := sw.Flush(); err != nil {
		return written, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to flush worksheet", err)
	}
	if err := xl.Write(w); err != nil {
		return written, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return written, nil
}

// exportFailed keeps writer errors as they are and tags cursor errors as query failures
func exportFailed(err error) error {
	if _, ok := AsBusinessError(err); ok {
		return err
	}
	return NewBusinessError("RATING_EXPORT_FAILED", "Failed to export ratings", errors.Join(ErrRatingQueryFailed, err))
}

// exportRecord renders one rating in ExportColumns order; absent values are empty cells
func exportRecord(r *models.EmailRating) []string {
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		r.CreatedAt.UTC().Format(exportTimeLayout),
		strconv.Itoa(r.Rating),
		r.Preference,
		utils.Deref(r.Comments),
		utils.Deref(r.CampaignUID),
		utils.Deref(r.SubscriberUID),
		utils.Deref(r.Email),
		utils.Deref(r.ListUID),
		utils.Deref(r.Subject),
		utils.Deref(r.PageURL),
		utils.Deref(r.Referrer),
		utils.Deref(r.UserAgent),
		utils.Deref(r.TZ),
		utils.Deref(r.IPAddress),
	}
}
