package dto

import (
	"time"

	"github.com/municipalreports/backend/internal/models"
)

type StatusBreakdown struct {
	Submitted  int64 `json:"submitted"`
	InReview   int64 `json:"in_review"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

type Overview struct {
	TotalReports     int64           `json:"total_reports"`
	StatusBreakdown  StatusBreakdown `json:"status_breakdown"`
	ThisWeekReports  int64           `json:"this_week_reports"`
	ThisMonthReports int64           `json:"this_month_reports"`
	CompletionRate   float64         `json:"completion_rate"`
}

type CategoryStat struct {
	CategoryName  string `json:"category_name"`
	CategoryIcon  string `json:"category_icon"`
	CategoryColor string `json:"category_color"`
	Count         int64  `json:"count"`
	Resolved      int64  `json:"resolved"`
	Pending       int64  `json:"pending"`
}

type MonthlyTrend struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Total     int64  `json:"total"`
	Resolved  int64  `json:"resolved"`
	Pending   int64  `json:"pending"`
}

type ActivityRow struct {
	ID               uint                `json:"id"`
	Title            string              `json:"title"`
	Status           models.ReportStatus `json:"status"`
	StatusName       string              `json:"status_name"`
	Address          string              `json:"address"`
	CategoryName     string              `json:"category_name"`
	CategoryIcon     string              `json:"category_icon"`
	CategoryColor    string              `json:"category_color"`
	UserName         string              `json:"user_name"`
	IsAnonymous      bool                `json:"is_anonymous"`
	CreatedAt        time.Time           `json:"created_at"`
	HasImage         bool                `json:"has_image"`
	DaysSinceCreated int                 `json:"days_since_created"`
}

type PerformanceMetrics struct {
	AverageResolutionDays float64 `json:"average_resolution_days"`
	TotalReports          int64   `json:"total_reports"`
	ResolvedReports       int64   `json:"resolved_reports"`
	QuickResolutions      int64   `json:"quick_resolutions"`
	OverdueReports        int64   `json:"overdue_reports"`
	ResolutionRate        float64 `json:"resolution_rate"`
}
