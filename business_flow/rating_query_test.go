package businessflow

import (
	"strconv"
	"testing"
	"time"

	"github.com/amirphl/email-feedback/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDashboardQueryDefaults(t *testing.T) {
	q := NormalizeDashboardQuery(dto.DashboardQueryParams{})

	assert.Equal(t, "", q.Search)
	assert.Equal(t, "", q.Preference)
	assert.Nil(t, q.MinRating)
	assert.Nil(t, q.MaxRating)
	assert.Nil(t, q.StartDate)
	assert.Nil(t, q.EndDate)
	assert.Equal(t, DefaultSort, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, "created_at DESC, id DESC", q.OrderBy())
	assert.Equal(t, 0, q.Offset())
	assert.Empty(t, q.Values())
}

func TestNormalizeDashboardQuery(t *testing.T) {
	tests := []struct {
		name   string
		params dto.DashboardQueryParams
		check  func(t *testing.T, q DashboardQuery)
	}{
		{
			name:   "search is trimmed",
			params: dto.DashboardQueryParams{Search: "  spring sale \t"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, "spring sale", q.Search)
			},
		},
		{
			name:   "unknown preference ignored",
			params: dto.DashboardQueryParams{Pref: "sometimes"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, "", q.Preference)
			},
		},
		{
			name:   "known preference kept",
			params: dto.DashboardQueryParams{Pref: "stop"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, "stop", q.Preference)
			},
		},
		{
			name:   "rating bounds outside 1..5 ignored",
			params: dto.DashboardQueryParams{RMin: "0", RMax: "9"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Nil(t, q.MinRating)
				assert.Nil(t, q.MaxRating)
			},
		},
		{
			name:   "reversed rating bounds swapped",
			params: dto.DashboardQueryParams{RMin: "5", RMax: "2"},
			check: func(t *testing.T, q DashboardQuery) {
				require.NotNil(t, q.MinRating)
				require.NotNil(t, q.MaxRating)
				assert.Equal(t, 2, *q.MinRating)
				assert.Equal(t, 5, *q.MaxRating)
			},
		},
		{
			name:   "non-numeric rating ignored",
			params: dto.DashboardQueryParams{RMin: "three"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Nil(t, q.MinRating)
			},
		},
		{
			name:   "valid dates parsed as UTC midnight",
			params: dto.DashboardQueryParams{Start: "2024-01-31", End: "2024-02-01"},
			check: func(t *testing.T, q DashboardQuery) {
				require.NotNil(t, q.StartDate)
				require.NotNil(t, q.EndDate)
				assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *q.StartDate)
				assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *q.EndDate)
			},
		},
		{
			name:   "malformed dates ignored",
			params: dto.DashboardQueryParams{Start: "31/01/2024", End: "2024-02-30"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Nil(t, q.StartDate)
				assert.Nil(t, q.EndDate)
			},
		},
		{
			name:   "unknown sort falls back",
			params: dto.DashboardQueryParams{Sort: "rating; DROP TABLE email_ratings"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, DefaultSort, q.Sort)
				assert.Equal(t, "created_at DESC, id DESC", q.OrderBy())
			},
		},
		{
			name:   "page size outside allow-list falls back",
			params: dto.DashboardQueryParams{Limit: "1000"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, DefaultPageSize, q.PageSize)
			},
		},
		{
			name:   "allowed page size kept",
			params: dto.DashboardQueryParams{Limit: "200"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, 200, q.PageSize)
			},
		},
		{
			name:   "non-positive page becomes 1",
			params: dto.DashboardQueryParams{Page: "-3"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, 1, q.Page)
			},
		},
		{
			name:   "huge page is capped",
			params: dto.DashboardQueryParams{Page: "99999999999"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, maxPage, q.Page)
				assert.Positive(t, q.Offset())
			},
		},
		{
			name:   "page and size give offset",
			params: dto.DashboardQueryParams{Page: "3", Limit: "25"},
			check: func(t *testing.T, q DashboardQuery) {
				assert.Equal(t, 50, q.Offset())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NormalizeDashboardQuery(tt.params))
		})
	}
}

func TestSortOptionsAreComplete(t *testing.T) {
	require.Len(t, SortOptions, 12)
	for _, o := range SortOptions {
		q := NormalizeDashboardQuery(dto.DashboardQueryParams{Sort: o.Key})
		assert.Equal(t, o.Key, q.Sort)
		assert.Equal(t, o.OrderBy, q.OrderBy())
		assert.NotEmpty(t, o.Label)
	}
	assert.Equal(t, "rating ASC, created_at DESC, id DESC", NormalizeDashboardQuery(dto.DashboardQueryParams{Sort: "rating_asc"}).OrderBy())
}

func TestDashboardQueryFilter(t *testing.T) {
	q := NormalizeDashboardQuery(dto.DashboardQueryParams{
		Search: "alice",
		Pref:   "more",
		RMin:   "2",
		RMax:   "4",
		Start:  "2024-03-01",
		End:    "2024-03-31",
	})
	f := q.Filter()

	require.NotNil(t, f.Search)
	assert.Equal(t, "alice", *f.Search)
	require.NotNil(t, f.Preference)
	assert.Equal(t, "more", *f.Preference)
	assert.Equal(t, 2, *f.MinRating)
	assert.Equal(t, 4, *f.MaxRating)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.CreatedAfter)
	// end date is inclusive: the exclusive bound is the next midnight
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *f.CreatedBefore)

	empty := NormalizeDashboardQuery(dto.DashboardQueryParams{}).Filter()
	assert.Nil(t, empty.Search)
	assert.Nil(t, empty.Preference)
	assert.Nil(t, empty.CreatedAfter)
	assert.Nil(t, empty.CreatedBefore)
}

func TestDashboardQueryTotalPages(t *testing.T) {
	q := DashboardQuery{PageSize: 50, Page: 1}
	assert.Equal(t, 1, q.TotalPages(0))
	assert.Equal(t, 1, q.TotalPages(50))
	assert.Equal(t, 2, q.TotalPages(51))
	assert.Equal(t, 3, q.TotalPages(120))
}

func TestDashboardQueryValues(t *testing.T) {
	q := NormalizeDashboardQuery(dto.DashboardQueryParams{
		Search: "a b",
		Pref:   "less",
		RMin:   "1",
		RMax:   "3",
		Start:  "2024-01-01",
		End:    "2024-01-02",
		Sort:   "email_asc",
		Limit:  "100",
		Page:   "4",
	})
	v := q.Values()

	assert.Equal(t, "a b", v.Get("q"))
	assert.Equal(t, "less", v.Get("pref"))
	assert.Equal(t, "1", v.Get("rmin"))
	assert.Equal(t, "3", v.Get("rmax"))
	assert.Equal(t, "2024-01-01", v.Get("start"))
	assert.Equal(t, "2024-01-02", v.Get("end"))
	assert.Equal(t, "email_asc", v.Get("sort"))
	assert.Equal(t, strconv.Itoa(100), v.Get("limit"))
	assert.False(t, v.Has("page"))
}
