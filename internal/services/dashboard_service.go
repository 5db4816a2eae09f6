package services

import (
	"fmt"
	"math"
	"time"

	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardService computes aggregate statistics for the staff dashboard.
// All operations are read-only; the month-fill step is pure in-memory work
// after a single store read.
type DashboardService struct {
	db        *gorm.DB
	weekStart time.Weekday
	now       func() time.Time
}

func NewDashboardService(db *gorm.DB, weekStart time.Weekday) *DashboardService {
	return &DashboardService{db: db, weekStart: weekStart, now: time.Now}
}

func (s *DashboardService) Overview() (*dto.Overview, error) {
	var total int64
	if err := s.db.Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var perStatus []struct {
		Status models.ReportStatus
		Total  int64
	}
	if err := s.db.Model(&models.Report{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&perStatus).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var breakdown dto.StatusBreakdown
	for _, row := range perStatus {
		switch row.Status {
		case models.StatusSubmitted:
			breakdown.Submitted = row.Total
		case models.StatusInReview:
			breakdown.InReview = row.Total
		case models.StatusInProgress:
			breakdown.InProgress = row.Total
		case models.StatusResolved:
			breakdown.Resolved = row.Total
		case models.StatusClosed:
			breakdown.Closed = row.Total
		}
	}

	now := s.now()

	var thisWeek int64
	if err := s.db.Model(&models.Report{}).
		Where("created_at >= ?", startOfWeek(now, s.weekStart)).
		Count(&thisWeek).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var thisMonth int64
	if err := s.db.Model(&models.Report{}).
		Where("created_at >= ?", startOfMonth).
		Count(&thisMonth).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	completionRate := 0.0
	if total > 0 {
		completionRate = round1(float64(breakdown.Resolved+breakdown.Closed) / float64(total) * 100)
	}

	return &dto.Overview{
		TotalReports:     total,
		StatusBreakdown:  breakdown,
		ThisWeekReports:  thisWeek,
		ThisMonthReports: thisMonth,
		CompletionRate:   completionRate,
	}, nil
}

func (s *DashboardService) CategoryStats() ([]dto.CategoryStat, error) {
	var aggs []struct {
		CategoryID uint
		Total      int64
		Resolved   int64
	}
	if err := s.db.Model(&models.Report{}).
		// 4, 5 = Resolved, Closed (the resolved bucket)
		Select("category_id, count(*) AS total, SUM(CASE WHEN status IN (4, 5) THEN 1 ELSE 0 END) AS resolved").
		Group("category_id").
		Order("total DESC").
		Scan(&aggs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	byID := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	stats := make([]dto.CategoryStat, len(aggs))
	for i, agg := range aggs {
		cat := byID[agg.CategoryID]
		stats[i] = dto.CategoryStat{
			CategoryName:  cat.Name,
			CategoryIcon:  cat.Icon,
			CategoryColor: cat.Color,
			Count:         agg.Total,
			Resolved:      agg.Resolved,
			Pending:       agg.Total - agg.Resolved,
		}
	}
	return stats, nil
}

// MonthlyTrends returns exactly `months` calendar-month buckets ending at the
// current month, oldest first, with zero-filled gaps.
func (s *DashboardService) MonthlyTrends(months int) ([]dto.MonthlyTrend, error) {
	if months < 1 || months > 60 {
		months = 12
	}

	now := s.now()
	oldest := time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, now.Location())

	var reports []struct {
		CreatedAt time.Time
		Status    models.ReportStatus
	}
	if err := s.db.Model(&models.Report{}).
		Select("created_at, status").
		Where("created_at >= ?", oldest).
		Scan(&reports).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	type bucket struct{ total, resolved int64 }
	byMonth := make(map[string]*bucket)
	for _, r := range reports {
		key := r.CreatedAt.Format("2006-01")
		b := byMonth[key]
		if b == nil {
			b = &bucket{}
			byMonth[key] = b
		}
		b.total++
		if r.Status.Resolved() {
			b.resolved++
		}
	}

	trends := make([]dto.MonthlyTrend, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		var total, resolved int64
		if b := byMonth[month.Format("2006-01")]; b != nil {
			total = b.total
			resolved = b.resolved
		}
		trends = append(trends, dto.MonthlyTrend{
			Year:      month.Year(),
			Month:     int(month.Month()),
			MonthName: month.Format("Jan 2006"),
			Total:     total,
			Resolved:  resolved,
			Pending:   total - resolved,
		})
	}
	return trends, nil
}

func (s *DashboardService) RecentActivity(limit int) ([]dto.ActivityRow, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var reports []models.Report
	if err := s.db.Model(&models.Report{}).
		Preload("Category").
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	now := s.now()
	rows := make([]dto.ActivityRow, len(reports))
	for i, r := range reports {
		rows[i] = dto.ActivityRow{
			ID:               r.ID,
			Title:            r.Title,
			Status:           r.Status,
			StatusName:       r.Status.String(),
			Address:          r.Address,
			CategoryName:     r.Category.Name,
			CategoryIcon:     r.Category.Icon,
			CategoryColor:    r.Category.Color,
			UserName:         submitterName(r.User),
			IsAnonymous:      r.IsAnonymous(),
			CreatedAt:        r.CreatedAt,
			HasImage:         r.HasImage(),
			DaysSinceCreated: daysBetween(r.CreatedAt, now),
		}
	}
	return rows, nil
}

func (s *DashboardService) PerformanceMetrics() (*dto.PerformanceMetrics, error) {
	var total int64
	if err := s.db.Model(&models.Report{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if total == 0 {
		return &dto.PerformanceMetrics{}, nil
	}

	var resolved []struct {
		CreatedAt  time.Time
		ResolvedAt time.Time
	}
	if err := s.db.Model(&models.Report{}).
		Select("created_at, resolved_at").
		Where("resolved_at IS NOT NULL").
		Scan(&resolved).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var sumDays, quick int64
	for _, r := range resolved {
		days := daysBetween(r.CreatedAt, r.ResolvedAt)
		sumDays += int64(days)
		if days <= 7 {
			quick++
		}
	}

	avgDays := 0.0
	if len(resolved) > 0 {
		avgDays = round1(float64(sumDays) / float64(len(resolved)))
	}

	var overdue int64
	if err := s.db.Model(&models.Report{}).
		Where("created_at < ? AND status NOT IN (4, 5)", s.now().AddDate(0, 0, -30)). // outside the resolved bucket
		Count(&overdue).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &dto.PerformanceMetrics{
		AverageResolutionDays: avgDays,
		TotalReports:          total,
		ResolvedReports:       int64(len(resolved)),
		QuickResolutions:      quick,
		OverdueReports:        overdue,
		ResolutionRate:        round1(float64(len(resolved)) / float64(total) * 100),
	}, nil
}

// startOfWeek truncates t to midnight on the most recent weekStart day.
func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	days := (int(t.Weekday()) - int(weekStart) + 7) % 7
	d := t.AddDate(0, 0, -days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
