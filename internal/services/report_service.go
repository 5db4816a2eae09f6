package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidCategory     = errors.New("invalid category id")
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrAddressRequired     = errors.New("address is required")
)

type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: time.Now}
}

// Create stores a new report in the Submitted status. userID is nil for
// anonymous submissions; the contact fields give staff a way to reach the
// submitter in that case.
func (s *ReportService) Create(userID *uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrAddressRequired
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", req.CategoryID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if count == 0 {
		return nil, ErrInvalidCategory
	}

	report := models.Report{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Address:      strings.TrimSpace(req.Address),
		CategoryID:   req.CategoryID,
		UserID:       userID,
		Status:       models.StatusSubmitted,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &report, nil
}

func (s *ReportService) Get(id uint) (*dto.ReportRow, error) {
	var report models.Report
	if err := s.db.Preload("Category").Preload("User").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	row := mapReportRow(&report, s.now())
	return &row, nil
}

// ListByUser returns the caller's own reports, newest first.
func (s *ReportService) ListByUser(userID uuid.UUID) ([]dto.ReportRow, error) {
	var reports []models.Report
	if err := s.db.Preload("Category").Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	now := s.now()
	rows := make([]dto.ReportRow, len(reports))
	for i := range reports {
		rows[i] = mapReportRow(&reports[i], now)
	}
	return rows, nil
}

// Delete removes a report row. Staff-only; the image file, if any, is the
// caller's responsibility to remove first.
func (s *ReportService) Delete(id uint) error {
	result := s.db.Delete(&models.Report{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

// FilterOptions lists the categories, statuses and sort keys the search
// endpoint accepts, for UI dropdowns.
func (s *ReportService) FilterOptions() (*dto.FilterOptionsResponse, error) {
	var categories []models.Category
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	statuses := models.AllStatuses()
	statusOptions := make([]dto.StatusOption, len(statuses))
	for i, st := range statuses {
		statusOptions[i] = dto.StatusOption{
			Value:       int(st),
			Name:        st.String(),
			DisplayName: st.String(),
		}
	}

	return &dto.FilterOptionsResponse{
		Success:       true,
		Categories:    categories,
		StatusOptions: statusOptions,
		SortOptions: []dto.SortOption{
			{Value: "created", Name: "Created Date"},
			{Value: "title", Name: "Title"},
			{Value: "status", Name: "Status"},
			{Value: "category", Name: "Category"},
			{Value: "address", Name: "Address"},
		},
		SortOrderOptions: []dto.SortOption{
			{Value: "desc", Name: "Descending"},
			{Value: "asc", Name: "Ascending"},
		},
	}, nil
}
