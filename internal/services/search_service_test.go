package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/models"
)

var searchNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

// newSearchFixture seeds two categories, one registered user and four
// reports with distinct filterable attributes.
func newSearchFixture(t *testing.T) (*SearchService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	pothole := seedCategory(t, db, "Pothole")
	graffiti := seedCategory(t, db, "Graffiti")
	user := seedUser(t, db, "ayse@example.com", "Ayse Demir")

	seedReport(t, db, models.Report{
		Title:       "Broken streetlight",
		Description: "Light flickers all night",
		Address:     "12 Oak Avenue",
		CategoryID:  pothole.ID,
		UserID:      &user.ID,
		Status:      models.StatusSubmitted,
		CreatedAt:   searchNow.AddDate(0, 0, -10),
	})
	seedReport(t, db, models.Report{
		Title:       "Pothole on Elm",
		Description: "Deep hole near the school",
		Address:     "40 Elm Street",
		ReportImage: "/uploads/2_abc.jpg",
		CategoryID:  pothole.ID,
		Status:      models.StatusInProgress,
		CreatedAt:   searchNow.AddDate(0, 0, -5),
	})
	seedReport(t, db, models.Report{
		Title:       "Graffiti on underpass",
		Description: "Tagging on the north wall",
		Address:     "Underpass at Oak Avenue",
		CategoryID:  graffiti.ID,
		UserID:      &user.ID,
		Status:      models.StatusResolved,
		CreatedAt:   searchNow.AddDate(0, 0, -2),
	})
	seedReport(t, db, models.Report{
		Title:       "Overflowing bin",
		Description: "Trash bin at the park entrance",
		Address:     "Riverside Park",
		CategoryID:  graffiti.ID,
		Status:      models.StatusClosed,
		CreatedAt:   searchNow.AddDate(0, 0, -1),
	})

	svc := NewSearchService(db)
	svc.now = fixedClock(searchNow)
	return svc, db
}

func titles(rows []dto.ReportRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func TestSearchNoFiltersDefaultsNewestFirst(t *testing.T) {
	svc, _ := newSearchFixture(t)

	resp, err := svc.Search(&dto.SearchQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Overflowing bin",
		"Graffiti on underpass",
		"Pothole on Elm",
		"Broken streetlight",
	}, titles(resp.Data))
	assert.Equal(t, int64(4), resp.Pagination.TotalCount)
	assert.Equal(t, "created", resp.Filters.SortBy)
	assert.Equal(t, "desc", resp.Filters.SortOrder)
}

func TestSearchKeywordCaseInsensitive(t *testing.T) {
	svc, _ := newSearchFixture(t)

	// matches title, description and address fields
	for _, kw := range []string{"POTHOLE", "pothole", "ScHoOl", "elm street"} {
		resp, err := svc.Search(&dto.SearchQuery{Keyword: kw})
		require.NoError(t, err)
		assert.Equal(t, []string{"Pothole on Elm"}, titles(resp.Data), "keyword %q", kw)
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	svc, db := newSearchFixture(t)

	var graffiti models.Category
	require.NoError(t, db.First(&graffiti, "name = ?", "Graffiti").Error)

	resp, err := svc.Search(&dto.SearchQuery{CategoryID: &graffiti.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Overflowing bin", "Graffiti on underpass"}, titles(resp.Data))
}

func TestSearchStatusFilter(t *testing.T) {
	svc, _ := newSearchFixture(t)

	status := models.StatusResolved
	resp, err := svc.Search(&dto.SearchQuery{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, []string{"Graffiti on underpass"}, titles(resp.Data))
}

func TestSearchInvalidStatusDropped(t *testing.T) {
	svc, _ := newSearchFixture(t)

	bad := models.ReportStatus(99)
	resp, err := svc.Search(&dto.SearchQuery{Status: &bad})
	require.NoError(t, err)

	// normalized away instead of rejected
	assert.Equal(t, int64(4), resp.Pagination.TotalCount)
	assert.Nil(t, resp.Filters.Status)
}

func TestSearchDateRange(t *testing.T) {
	svc, _ := newSearchFixture(t)

	from := searchNow.AddDate(0, 0, -6)
	to := searchNow.AddDate(0, 0, -2)
	resp, err := svc.Search(&dto.SearchQuery{FromDate: &from, ToDate: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"Graffiti on underpass", "Pothole on Elm"}, titles(resp.Data))
}

func TestSearchAddressFilter(t *testing.T) {
	svc, _ := newSearchFixture(t)

	resp, err := svc.Search(&dto.SearchQuery{Address: "oak avenue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Graffiti on underpass", "Broken streetlight"}, titles(resp.Data))
}

func TestSearchHasImageFilter(t *testing.T) {
	svc, _ := newSearchFixture(t)

	yes, no := true, false

	resp, err := svc.Search(&dto.SearchQuery{HasImage: &yes})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pothole on Elm"}, titles(resp.Data))

	resp, err = svc.Search(&dto.SearchQuery{HasImage: &no})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Pagination.TotalCount)
	for _, row := range resp.Data {
		assert.False(t, row.HasImage)
	}
}

func TestSearchIsAnonymousFilter(t *testing.T) {
	svc, _ := newSearchFixture(t)

	yes, no := true, false

	resp, err := svc.Search(&dto.SearchQuery{IsAnonymous: &yes})
	require.NoError(t, err)
	assert.Equal(t, []string{"Overflowing bin", "Pothole on Elm"}, titles(resp.Data))
	for _, row := range resp.Data {
		assert.True(t, row.IsAnonymous)
		assert.Equal(t, "Anonymous", row.UserName)
	}

	resp, err = svc.Search(&dto.SearchQuery{IsAnonymous: &no})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Pagination.TotalCount)
	for _, row := range resp.Data {
		assert.Equal(t, "Ayse Demir", row.UserName)
	}
}

func TestSearchSortByTitleAsc(t *testing.T) {
	svc, _ := newSearchFixture(t)

	resp, err := svc.Search(&dto.SearchQuery{SortBy: "title", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Broken streetlight",
		"Graffiti on underpass",
		"Overflowing bin",
		"Pothole on Elm",
	}, titles(resp.Data))
}

func TestSearchSortByCategoryName(t *testing.T) {
	svc, _ := newSearchFixture(t)

	resp, err := svc.Search(&dto.SearchQuery{SortBy: "category", SortOrder: "asc"})
	require.NoError(t, err)

	require.Len(t, resp.Data, 4)
	assert.Equal(t, "Graffiti", resp.Data[0].CategoryName)
	assert.Equal(t, "Pothole", resp.Data[3].CategoryName)
}

func TestSearchUnknownSortFallsBack(t *testing.T) {
	svc, _ := newSearchFixture(t)

	resp, err := svc.Search(&dto.SearchQuery{SortBy: "dangerous; DROP TABLE", SortOrder: "sideways"})
	require.NoError(t, err)

	assert.Equal(t, "created", resp.Filters.SortBy)
	assert.Equal(t, "desc", resp.Filters.SortOrder)
	assert.Equal(t, "Overflowing bin", resp.Data[0].Title)
}

func TestSearchPagination(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	for i := 0; i < 25; i++ {
		seedReport(t, db, models.Report{
			Title:      fmt.Sprintf("Report %02d", i),
			CategoryID: cat.ID,
			CreatedAt:  searchNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	svc := NewSearchService(db)
	svc.now = fixedClock(searchNow)

	resp, err := svc.Search(&dto.SearchQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 10)
	assert.Equal(t, int64(25), resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrevious)

	resp, err = svc.Search(&dto.SearchQuery{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 5)
	assert.False(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrevious)
}

func TestSearchPageBeyondRangeReturnsEmpty(t *testing.T) {
	svc, _ := newSearchFixture(t)

	resp, err := svc.Search(&dto.SearchQuery{Page: 3, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrevious)
}

func TestSearchPaginationClamped(t *testing.T) {
	svc, _ := newSearchFixture(t)

	for _, q := range []dto.SearchQuery{
		{Page: 0, PageSize: 0},
		{Page: -3, PageSize: -1},
		{Page: 0, PageSize: 500},
	} {
		resp, err := svc.Search(&q)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Pagination.Page)
		assert.Equal(t, 20, resp.Pagination.PageSize)
		assert.Len(t, resp.Data, 4)
	}
}

func TestSearchDaysSinceCreated(t *testing.T) {
	svc, _ := newSearchFixture(t)

	resp, err := svc.Search(&dto.SearchQuery{Keyword: "streetlight"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 10, resp.Data[0].DaysSinceCreated)

	resp, err = svc.Search(&dto.SearchQuery{Keyword: "overflowing"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Data[0].DaysSinceCreated)
}

func TestDaysBetweenFloorsPartialDays(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysBetween(base, base.Add(23*time.Hour)))
	assert.Equal(t, 1, daysBetween(base, base.Add(36*time.Hour)))
	assert.Equal(t, 10, daysBetween(base, base.AddDate(0, 0, 10)))
}
