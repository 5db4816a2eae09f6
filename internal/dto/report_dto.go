package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/municipalreports/backend/internal/models"
)

type CreateReportRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	CategoryID   uint   `json:"category_id"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

type UpdateStatusRequest struct {
	Status     models.ReportStatus `json:"status"`
	AdminNotes string              `json:"admin_notes,omitempty"`
}

// SearchQuery carries the raw filter/sort/pagination parameters. All fields
// are advisory: the search service normalizes rather than rejects.
type SearchQuery struct {
	Keyword     string
	CategoryID  *uint
	Status      *models.ReportStatus
	FromDate    *time.Time
	ToDate      *time.Time
	Address     string
	HasImage    *bool
	IsAnonymous *bool
	SortBy      string
	SortOrder   string
	Page        int
	PageSize    int
}

// ReportRow is a search result row decorated with category, submitter and
// age information.
type ReportRow struct {
	ID               uint                `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Address          string              `json:"address"`
	ReportImage      string              `json:"report_image,omitempty"`
	CategoryID       uint                `json:"category_id"`
	CategoryName     string              `json:"category_name"`
	CategoryIcon     string              `json:"category_icon"`
	CategoryColor    string              `json:"category_color"`
	UserID           *uuid.UUID          `json:"user_id,omitempty"`
	UserName         string              `json:"user_name"`
	IsAnonymous      bool                `json:"is_anonymous"`
	Status           models.ReportStatus `json:"status"`
	StatusName       string              `json:"status_name"`
	AdminNotes       string              `json:"admin_notes,omitempty"`
	ContactEmail     string              `json:"contact_email,omitempty"`
	ContactPhone     string              `json:"contact_phone,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	ResolvedAt       *time.Time          `json:"resolved_at,omitempty"`
	HasImage         bool                `json:"has_image"`
	DaysSinceCreated int                 `json:"days_since_created"`
}

type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// AppliedFilters echoes the filters after normalization.
type AppliedFilters struct {
	Keyword     string               `json:"keyword,omitempty"`
	CategoryID  *uint                `json:"category_id,omitempty"`
	Status      *models.ReportStatus `json:"status,omitempty"`
	FromDate    *time.Time           `json:"from_date,omitempty"`
	ToDate      *time.Time           `json:"to_date,omitempty"`
	Address     string               `json:"address,omitempty"`
	HasImage    *bool                `json:"has_image,omitempty"`
	IsAnonymous *bool                `json:"is_anonymous,omitempty"`
	SortBy      string               `json:"sort_by"`
	SortOrder   string               `json:"sort_order"`
}

type SearchResponse struct {
	Success    bool           `json:"success"`
	Data       []ReportRow    `json:"data"`
	Pagination Pagination     `json:"pagination"`
	Filters    AppliedFilters `json:"filters"`
}

type StatusOption struct {
	Value       int    `json:"value"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type SortOption struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

type FilterOptionsResponse struct {
	Success          bool              `json:"success"`
	Categories       []models.Category `json:"categories"`
	StatusOptions    []StatusOption    `json:"status_options"`
	SortOptions      []SortOption      `json:"sort_options"`
	SortOrderOptions []SortOption      `json:"sort_order_options"`
}
