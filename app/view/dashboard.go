package view

import (
	"encoding/json"
	"html/template"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/amirphl/email-feedback/app/dto"
	businessflow "github.com/amirphl/email-feedback/business_flow"
	"github.com/amirphl/email-feedback/models"
	"github.com/amirphl/email-feedback/utils"
)

const (
	commentSnippetLength = 80
	pageWindow           = 2
	whenLayout           = "2006-01-02 15:04:05"
)

var (
	dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardTemplate))
	errorTmpl     = template.Must(template.New("error").Parse(errorTemplate))
)

// Option is one <option> of a filter select
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Bar is one row of the rating distribution chart
type Bar struct {
	Stars   string
	Count   string
	Percent float64
}

// Tag is a labelled preference counter
type Tag struct {
	Class string
	Label string
	Count string
}

// Row is one rating as rendered in the results table
type Row struct {
	When            string
	TZ              string
	Stars           string
	Preference      string
	PreferenceLabel string
	Subject         string
	Email           string
	CampaignUID     string
	SubscriberUID   string
	Snippet         string
	HasComments     bool
	IPAddress       string
	Detail          string
}

// PageLink is a numbered pagination entry; Gap marks an elided range
type PageLink struct {
	Number int
	URL    string
	Active bool
	Gap    bool
}

// DashboardPage is the complete view model of the dashboard template
type DashboardPage struct {
	Title    string
	Action   string
	ResetURL string

	Search    string
	StartDate string
	EndDate   string

	MinRatings  []Option
	MaxRatings  []Option
	Preferences []Option
	Sorts       []Option
	PageSizes   []Option

	Total        string
	Average      string
	AverageStars string
	Tags         []Tag
	Bars         []Bar

	Rows []Row

	Pages   []PageLink
	PrevURL string
	NextURL string
}

// NewDashboardPage builds the view model for one dashboard response.
// action is the dashboard path every link and the filter form point at.
func NewDashboardPage(title, action string, query businessflow.DashboardQuery, resp *dto.RatingDashboardResponse) *DashboardPage {
	page := &DashboardPage{
		Title:       title,
		Action:      action,
		ResetURL:    action,
		Search:      query.Search,
		MinRatings:  ratingOptions(query.MinRating),
		MaxRatings:  ratingOptions(query.MaxRating),
		Preferences: preferenceOptions(query.Preference),
		Sorts:       sortOptions(query.Sort),
		PageSizes:   pageSizeOptions(query.PageSize),
	}
	if query.StartDate != nil {
		page.StartDate = query.StartDate.Format(utils.DateLayout)
	}
	if query.EndDate != nil {
		page.EndDate = query.EndDate.Format(utils.DateLayout)
	}

	summary := resp.Summary
	page.Total = FormatCount(summary.Total)
	page.Average = strconv.FormatFloat(summary.AverageRating, 'f', 2, 64)
	page.AverageStars = Stars(int(math.Round(summary.AverageRating)))

	for _, b := range summary.PreferenceDistribution {
		page.Tags = append(page.Tags, Tag{Class: b.Label, Label: capitalize(b.Label), Count: FormatCount(b.Count)})
	}
	// highest rating first
	for i := len(summary.RatingDistribution) - 1; i >= 0; i-- {
		b := summary.RatingDistribution[i]
		page.Bars = append(page.Bars, Bar{
			Stars:   Stars(dto.ParseLooseInt(b.Label)),
			Count:   FormatCount(b.Count),
			Percent: b.Percent,
		})
	}

	page.Rows = make([]Row, 0, len(resp.Items))
	for _, item := range resp.Items {
		page.Rows = append(page.Rows, newRow(item))
	}

	page.Pages, page.PrevURL, page.NextURL = paginate(action, query, resp.Pagination.TotalPages)
	return page
}

// Render writes the dashboard HTML; every value is escaped for its context
func Render(w io.Writer, page *DashboardPage) error {
	return dashboardTmpl.Execute(w, page)
}

// RenderError writes a minimal error page
func RenderError(w io.Writer, title, message string) error {
	return errorTmpl.Execute(w, struct{ Title, Message string }{title, message})
}

type rowDetail struct {
	When          string `json:"when"`
	TZ            string `json:"tz"`
	Rating        int    `json:"rating"`
	Preference    string `json:"preference"`
	Subject       string `json:"subject"`
	Email         string `json:"email"`
	CampaignUID   string `json:"campaign_uid"`
	SubscriberUID string `json:"subscriber_uid"`
	Comments      string `json:"comments"`
	IPAddress     string `json:"ip_address"`
	PageURL       string `json:"page_url"`
	Referrer      string `json:"referrer"`
	UserAgent     string `json:"user_agent"`
}

func newRow(item dto.EmailRatingItem) Row {
	when := item.CreatedAt.UTC().Format(whenLayout)
	detail, err := json.Marshal(rowDetail{
		When:          when,
		TZ:            item.TZ,
		Rating:        item.Rating,
		Preference:    item.Preference,
		Subject:       item.Subject,
		Email:         item.Email,
		CampaignUID:   item.CampaignUID,
		SubscriberUID: item.SubscriberUID,
		Comments:      item.Comments,
		IPAddress:     item.IPAddress,
		PageURL:       item.PageURL,
		Referrer:      item.Referrer,
		UserAgent:     item.UserAgent,
	})
	if err != nil {
		detail = []byte("{}")
	}

	return Row{
		When:            when,
		TZ:              item.TZ,
		Stars:           Stars(item.Rating),
		Preference:      item.Preference,
		PreferenceLabel: capitalize(item.Preference),
		Subject:         item.Subject,
		Email:           item.Email,
		CampaignUID:     item.CampaignUID,
		SubscriberUID:   item.SubscriberUID,
		Snippet:         Snippet(item.Comments, commentSnippetLength),
		HasComments:     item.Comments != "",
		IPAddress:       item.IPAddress,
		Detail:          string(detail),
	}
}

// paginate returns the numbered links (first, last and a window around the
// current page) plus the previous and next URLs, empty when disabled.
func paginate(action string, query businessflow.DashboardQuery, totalPages int) ([]PageLink, string, string) {
	if totalPages < 1 {
		totalPages = 1
	}
	base := query.Values()
	link := func(n int) string {
		v := url.Values{}
		for k, vals := range base {
			v[k] = vals
		}
		if n > 1 {
			v.Set("page", strconv.Itoa(n))
		}
		if enc := v.Encode(); enc != "" {
			return action + "?" + enc
		}
		return action
	}

	numbers := []int{1}
	for n := max(2, query.Page-pageWindow); n <= min(totalPages-1, query.Page+pageWindow); n++ {
		numbers = append(numbers, n)
	}
	if totalPages > 1 {
		numbers = append(numbers, totalPages)
	}

	links := make([]PageLink, 0, len(numbers)+2)
	for i, n := range numbers {
		if i > 0 && n > numbers[i-1]+1 {
			links = append(links, PageLink{Gap: true})
		}
		links = append(links, PageLink{Number: n, URL: link(n), Active: n == query.Page})
	}

	var prev, next string
	if query.Page > 1 {
		prev = link(query.Page - 1)
	}
	if query.Page < totalPages {
		next = link(query.Page + 1)
	}
	return links, prev, next
}

func ratingOptions(selected *int) []Option {
	opts := make([]Option, 0, models.MaxRating)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		opts = append(opts, Option{
			Value:    strconv.Itoa(r),
			Label:    strconv.Itoa(r),
			Selected: selected != nil && *selected == r,
		})
	}
	return opts
}

func preferenceOptions(selected string) []Option {
	opts := make([]Option, 0, len(models.Preferences))
	for _, p := range models.Preferences {
		opts = append(opts, Option{Value: p, Label: capitalize(p), Selected: p == selected})
	}
	return opts
}

func sortOptions(selected string) []Option {
	opts := make([]Option, 0, len(businessflow.SortOptions))
	for _, s := range businessflow.SortOptions {
		opts = append(opts, Option{Value: s.Key, Label: s.Label, Selected: s.Key == selected})
	}
	return opts
}

func pageSizeOptions(selected int) []Option {
	opts := make([]Option, 0, len(businessflow.PageSizes))
	for _, n := range businessflow.PageSizes {
		opts = append(opts, Option{Value: strconv.Itoa(n), Label: strconv.Itoa(n), Selected: n == selected})
	}
	return opts
}

// Stars renders a 0..5 rating as filled and empty stars
func Stars(n int) string {
	n = max(0, min(n, models.MaxRating))
	return strings.Repeat("★", n) + strings.Repeat("☆", models.MaxRating-n)
}

// FormatCount groups thousands with commas: 1234567 -> 1,234,567
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Snippet shortens s to n runes, marking the cut with an ellipsis
func Snippet(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return utils.TruncateRunes(s, n) + "…"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
