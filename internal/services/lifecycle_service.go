package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/municipalreports/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidStatus  = errors.New("invalid report status")
	ErrPersistence    = errors.New("report store failure")
)

// LifecycleService owns the report status state machine. Any status may move
// to any other status; the only conditional behavior is the resolution
// timestamp derivation in deriveResolvedAt.
type LifecycleService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{db: db, now: time.Now}
}

// deriveResolvedAt applies the resolution-timestamp rule: stamp when entering
// the resolved bucket with no existing stamp, clear when leaving the bucket,
// keep the original stamp when moving within the bucket.
func deriveResolvedAt(current *time.Time, newStatus models.ReportStatus, now time.Time) *time.Time {
	if !newStatus.Resolved() {
		return nil
	}
	if current != nil {
		return current
	}
	return &now
}

// ChangeStatus moves the report to newStatus, derives ResolvedAt and stamps
// UpdatedAt. A non-empty adminNotes overwrites the stored notes; empty leaves
// them untouched. The write is guarded by an optimistic row version so two
// concurrent calls on the same report cannot derive ResolvedAt from a stale
// status.
func (s *LifecycleService) ChangeStatus(id uint, newStatus models.ReportStatus, adminNotes string) (*models.Report, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	for attempt := 0; attempt < 3; attempt++ {
		var report models.Report
		if err := s.db.First(&report, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReportNotFound
			}
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		now := s.now()
		resolvedAt := deriveResolvedAt(report.ResolvedAt, newStatus, now)

		updates := map[string]interface{}{
			"status":      newStatus,
			"resolved_at": resolvedAt,
			"updated_at":  now,
			"version":     report.Version + 1,
		}
		if adminNotes != "" {
			updates["admin_notes"] = adminNotes
		}

		result := s.db.Model(&models.Report{}).
			Where("id = ? AND version = ?", id, report.Version).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, result.Error)
		}
		if result.RowsAffected == 0 {
			// Lost the version race; re-read and retry.
			continue
		}

		report.Status = newStatus
		report.ResolvedAt = resolvedAt
		report.UpdatedAt = now
		report.Version++
		if adminNotes != "" {
			report.AdminNotes = adminNotes
		}
		return &report, nil
	}

	return nil, fmt.Errorf("%w: concurrent update conflict", ErrPersistence)
}
