package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexibleInt decodes a JSON number or a numeric string. Values that are
// neither decode to 0 so the caller's range check rejects them.
type FlexibleInt int

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	switch t := v.(type) {
	case float64:
		*f = FlexibleInt(int(t))
	case string:
		*f = FlexibleInt(ParseLooseInt(t))
	default:
		*f = 0
	}
	return nil
}

// ParseLooseInt parses a trimmed decimal integer and returns 0 when it cannot
func ParseLooseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// SubmitRatingRequest is the body posted by the rating landing page
type SubmitRatingRequest struct {
	Rating        FlexibleInt `json:"rating" form:"rating" example:"5"`
	Preference    string      `json:"preference" form:"preference" example:"more"`
	Comments      string      `json:"comments" form:"comments"`
	CampaignUID   string      `json:"campaign_uid" form:"campaign_uid"`
	SubscriberUID string      `json:"subscriber_uid" form:"subscriber_uid"`
	Email         string      `json:"email" form:"email"`
	ListUID       string      `json:"list_uid" form:"list_uid"`
	Subject       string      `json:"subject" form:"subject"`
	PageURL       string      `json:"page_url" form:"page_url"`
	Referrer      string      `json:"referrer" form:"referrer"`
	UserAgent     string      `json:"user_agent" form:"user_agent"`
	TZ            string      `json:"tz" form:"tz"`
}

// SubmitRatingResponse is the acknowledgment returned to the landing page
type SubmitRatingResponse struct {
	OK    bool   `json:"ok"`
	ID    uint   `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// DashboardQueryParams carries the raw dashboard query string. Every field
// is a string so that malformed values normalize instead of failing to bind.
type DashboardQueryParams struct {
	Limit  string `query:"limit"`
	Page   string `query:"page"`
	Sort   string `query:"sort"`
	Search string `query:"q"`
	Pref   string `query:"pref"`
	RMin   string `query:"rmin"`
	RMax   string `query:"rmax"`
	Start  string `query:"start"`
	End    string `query:"end"`
	Export string `query:"export"`
}

// DistributionBucket is one bar of a distribution chart
type DistributionBucket struct {
	Label   string  `json:"label"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// RatingSummary aggregates the filtered rating set
type RatingSummary struct {
	Total                  int64                `json:"total"`
	AverageRating          float64              `json:"average_rating"`
	RatingDistribution     []DistributionBucket `json:"rating_distribution"`
	PreferenceDistribution []DistributionBucket `json:"preference_distribution"`
}

// EmailRatingItem is one stored rating as shown to operators
type EmailRatingItem struct {
	ID            uint      `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Rating        int       `json:"rating"`
	Preference    string    `json:"preference"`
	Comments      string    `json:"comments,omitempty"`
	CampaignUID   string    `json:"campaign_uid,omitempty"`
	SubscriberUID string    `json:"subscriber_uid,omitempty"`
	Email         string    `json:"email,omitempty"`
	ListUID       string    `json:"list_uid,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	PageURL       string    `json:"page_url,omitempty"`
	Referrer      string    `json:"referrer,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	TZ            string    `json:"tz,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
}

// PaginationInfo describes the current page of a listing
type PaginationInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// RatingDashboardResponse is everything the dashboard renders for one query
type RatingDashboardResponse struct {
	Summary    RatingSummary     `json:"summary"`
	Items      []EmailRatingItem `json:"items"`
	Pagination PaginationInfo    `json:"pagination"`
}
