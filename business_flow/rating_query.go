package businessflow

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/email-feedback/app/dto"
	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/utils"
)

// Page size allow-list and default
var PageSizes = []int{25, 50, 100, 200}

const (
	DefaultPageSize = 50
	DefaultSort     = "created_desc"

	// keeps (page-1)*size far from integer overflow
	maxPage = math.MaxInt32
)

// SortOption is one selectable dashboard ordering
type SortOption struct {
	Key     string
	Label   string
	OrderBy string
}

// SortOptions lists every accepted sort key in the order the dashboard offers them.
// Non-creation sorts fall back to newest first; id breaks timestamp ties.
var SortOptions = []SortOption{
	{Key: "created_desc", Label: "Newest first", OrderBy: "created_at DESC, id DESC"},
	{Key: "created_asc", Label: "Oldest first", OrderBy: "created_at ASC, id ASC"},
	{Key: "rating_desc", Label: "Rating high→low", OrderBy: "rating DESC, created_at DESC, id DESC"},
	{Key: "rating_asc", Label: "Rating low→high", OrderBy: "rating ASC, created_at DESC, id DESC"},
	{Key: "pref_asc", Label: "Preference A→Z", OrderBy: "preference ASC, created_at DESC, id DESC"},
	{Key: "pref_desc", Label: "Preference Z→A", OrderBy: "preference DESC, created_at DESC, id DESC"},
	{Key: "email_asc", Label: "Email A→Z", OrderBy: "email ASC, created_at DESC, id DESC"},
	{Key: "email_desc", Label: "Email Z→A", OrderBy: "email DESC, created_at DESC, id DESC"},
	{Key: "campaign_asc", Label: "Campaign A→Z", OrderBy: "campaign_uid ASC, created_at DESC, id DESC"},
	{Key: "campaign_desc", Label: "Campaign Z→A", OrderBy: "campaign_uid DESC, created_at DESC, id DESC"},
	{Key: "subject_asc", Label: "Subject A→Z", OrderBy: "subject ASC, created_at DESC, id DESC"},
	{Key: "subject_desc", Label: "Subject Z→A", OrderBy: "subject DESC, created_at DESC, id DESC"},
}

var sortOrderByKey = func() map[string]string {
	m := make(map[string]string, len(SortOptions))
	for _, o := range SortOptions {
		m[o.Key] = o.OrderBy
	}
	return m
}()

// DashboardQuery is a normalized dashboard request. Absent filters are nil
// or empty; Sort, Page and PageSize always hold accepted values.
type DashboardQuery struct {
	Search     string
	Preference string
	MinRating  *int
	MaxRating  *int
	StartDate  *time.Time
	EndDate    *time.Time
	Sort       string
	Page       int
	PageSize   int
}

// NormalizeDashboardQuery turns untrusted query parameters into a DashboardQuery.
// It never fails: unrecognized or malformed values become absent or default.
func NormalizeDashboardQuery(p dto.DashboardQueryParams) DashboardQuery {
	q := DashboardQuery{
		Search:   strings.TrimSpace(p.Search),
		Sort:     DefaultSort,
		Page:     1,
		PageSize: DefaultPageSize,
	}

	if models.IsValidPreference(p.Pref) {
		q.Preference = p.Pref
	}

	q.MinRating = parseRatingBound(p.RMin)
	q.MaxRating = parseRatingBound(p.RMax)
	if q.MinRating != nil && q.MaxRating != nil && *q.MinRating > *q.MaxRating {
		q.MinRating, q.MaxRating = q.MaxRating, q.MinRating
	}

	if d, ok := utils.ParseDateUTC(strings.TrimSpace(p.Start)); ok {
		q.StartDate = &d
	}
	if d, ok := utils.ParseDateUTC(strings.TrimSpace(p.End)); ok {
		q.EndDate = &d
	}

	if _, ok := sortOrderByKey[p.Sort]; ok {
		q.Sort = p.Sort
	}

	if size, err := strconv.Atoi(strings.TrimSpace(p.Limit)); err == nil && isAllowedPageSize(size) {
		q.PageSize = size
	}

	if page, err := strconv.Atoi(strings.TrimSpace(p.Page)); err == nil && page > 1 {
		q.Page = min(page, maxPage)
	}

	return q
}

func parseRatingBound(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !models.IsValidRating(v) {
		return nil
	}
	return &v
}

func isAllowedPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Filter converts the query into the repository filter shared by every dashboard query
func (q DashboardQuery) Filter() models.EmailRatingFilter {
	var f models.EmailRatingFilter
	if q.Search != "" {
		f.Search = utils.ToPtr(q.Search)
	}
	if q.Preference != "" {
		f.Preference = utils.ToPtr(q.Preference)
	}
	f.MinRating = q.MinRating
	f.MaxRating = q.MaxRating
	if q.StartDate != nil {
		f.CreatedAfter = utils.ToPtr(*q.StartDate)
	}
	if q.EndDate != nil {
		f.CreatedBefore = utils.ToPtr(utils.StartOfNextDay(*q.EndDate))
	}
	return f
}

// OrderBy returns the ORDER BY clause for the selected sort key
func (q DashboardQuery) OrderBy() string {
	if order, ok := sortOrderByKey[q.Sort]; ok {
		return order
	}
	return sortOrderByKey[DefaultSort]
}

// Offset returns the row offset of the current page
func (q DashboardQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// TotalPages returns ceil(total/page size), never less than 1
func (q DashboardQuery) TotalPages(total int64) int {
	if total <= 0 {
		return 1
	}
	size := int64(q.PageSize)
	return int((total + size - 1) / size)
}

// Values encodes the active filters, sort and page size as query parameters.
// The page number is left out so callers can set it per link.
func (q DashboardQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Preference != "" {
		v.Set("pref", q.Preference)
	}
	if q.MinRating != nil {
		v.Set("rmin", strconv.Itoa(*q.MinRating))
	}
	if q.MaxRating != nil {
		v.Set("rmax", strconv.Itoa(*q.MaxRating))
	}
	if q.StartDate != nil {
		v.Set("start", q.StartDate.Format(utils.DateLayout))
	}
	if q.EndDate != nil {
		v.Set("end", q.EndDate.Format(utils.DateLayout))
	}
	if q.Sort != DefaultSort {
		v.Set("sort", q.Sort)
	}
	if q.PageSize != DefaultPageSize {
		v.Set("limit", strconv.Itoa(q.PageSize))
	}
	return v
}
