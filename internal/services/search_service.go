package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/models"
	"gorm.io/gorm"
)

// sortColumns is the closed sort-key set. Unrecognized keys fall back to
// "created". The id tie-breaker keeps ordering stable across pages.
var sortColumns = map[string]string{
	"created":  "reports.created_at",
	"title":    "reports.title",
	"status":   "reports.status",
	"category": "categories.name",
	"address":  "reports.address",
}

// SearchService builds filtered, sorted, paginated views over the report
// collection. All inputs are advisory and normalized, never rejected.
type SearchService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db, now: time.Now}
}

func (s *SearchService) Search(q *dto.SearchQuery) (*dto.SearchResponse, error) {
	normalizeQuery(q)

	query := s.db.Model(&models.Report{})
	if q.SortBy == "category" {
		query = query.Joins("LEFT JOIN categories ON categories.id = reports.category_id")
	}
	query = applySearchFilters(query, q)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(q.PageSize)))

	dir := "DESC"
	if q.SortOrder == "asc" {
		dir = "ASC"
	}
	order := fmt.Sprintf("%s %s, reports.id %s", sortColumns[q.SortBy], dir, dir)

	var reports []models.Report
	if err := query.
		Preload("Category").
		Preload("User").
		Order(order).
		Limit(q.PageSize).
		Offset((q.Page - 1) * q.PageSize).
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	now := s.now()
	rows := make([]dto.ReportRow, len(reports))
	for i := range reports {
		rows[i] = mapReportRow(&reports[i], now)
	}

	return &dto.SearchResponse{
		Success: true,
		Data:    rows,
		Pagination: dto.Pagination{
			Page:        q.Page,
			PageSize:    q.PageSize,
			TotalCount:  total,
			TotalPages:  totalPages,
			HasNext:     q.Page < totalPages,
			HasPrevious: q.Page > 1,
		},
		Filters: dto.AppliedFilters{
			Keyword:     q.Keyword,
			CategoryID:  q.CategoryID,
			Status:      q.Status,
			FromDate:    q.FromDate,
			ToDate:      q.ToDate,
			Address:     q.Address,
			HasImage:    q.HasImage,
			IsAnonymous: q.IsAnonymous,
			SortBy:      q.SortBy,
			SortOrder:   q.SortOrder,
		},
	}, nil
}

// normalizeQuery clamps pagination (page < 1 becomes 1, pageSize outside
// 1..100 becomes 20) and falls back to the default sort.
func normalizeQuery(q *dto.SearchQuery) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	q.SortBy = strings.ToLower(q.SortBy)
	if _, ok := sortColumns[q.SortBy]; !ok {
		q.SortBy = "created"
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	if q.Status != nil && !q.Status.Valid() {
		q.Status = nil
	}
}

func applySearchFilters(query *gorm.DB, q *dto.SearchQuery) *gorm.DB {
	if q.Keyword != "" {
		kw := "%" + strings.ToLower(q.Keyword) + "%"
		query = query.Where(
			"(LOWER(reports.title) LIKE ? OR LOWER(reports.description) LIKE ? OR LOWER(reports.address) LIKE ?)",
			kw, kw, kw,
		)
	}
	if q.CategoryID != nil {
		query = query.Where("reports.category_id = ?", *q.CategoryID)
	}
	if q.Status != nil {
		query = query.Where("reports.status = ?", *q.Status)
	}
	if q.FromDate != nil {
		query = query.Where("reports.created_at >= ?", *q.FromDate)
	}
	if q.ToDate != nil {
		query = query.Where("reports.created_at <= ?", *q.ToDate)
	}
	if q.Address != "" {
		query = query.Where("LOWER(reports.address) LIKE ?", "%"+strings.ToLower(q.Address)+"%")
	}
	if q.HasImage != nil {
		if *q.HasImage {
			query = query.Where("reports.report_image <> ''")
		} else {
			query = query.Where("(reports.report_image = '' OR reports.report_image IS NULL)")
		}
	}
	if q.IsAnonymous != nil {
		if *q.IsAnonymous {
			query = query.Where("reports.user_id IS NULL")
		} else {
			query = query.Where("reports.user_id IS NOT NULL")
		}
	}
	return query
}

// daysBetween is the whole-day difference between two instants, floored.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func submitterName(u *models.User) string {
	if u == nil {
		return "Anonymous"
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func mapReportRow(r *models.Report, now time.Time) dto.ReportRow {
	return dto.ReportRow{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Address:          r.Address,
		ReportImage:      r.ReportImage,
		CategoryID:       r.CategoryID,
		CategoryName:     r.Category.Name,
		CategoryIcon:     r.Category.Icon,
		CategoryColor:    r.Category.Color,
		UserID:           r.UserID,
		UserName:         submitterName(r.User),
		IsAnonymous:      r.IsAnonymous(),
		Status:           r.Status,
		StatusName:       r.Status.String(),
		AdminNotes:       r.AdminNotes,
		ContactEmail:     r.ContactEmail,
		ContactPhone:     r.ContactPhone,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		ResolvedAt:       r.ResolvedAt,
		HasImage:         r.HasImage(),
		DaysSinceCreated: daysBetween(r.CreatedAt, now),
	}
}
