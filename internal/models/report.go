package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a citizen-submitted issue tracked through the status lifecycle.
// UserID is nil for anonymous submissions; contact fields are only meaningful
// in that case. ResolvedAt is derived from status transitions and must never
// be written directly outside the lifecycle service.
type Report struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Title        string       `gorm:"not null;size:200" json:"title"`
	Description  string       `gorm:"not null;type:text" json:"description"`
	Address      string       `gorm:"not null;size:500" json:"address"`
	ReportImage  string       `gorm:"size:500" json:"report_image,omitempty"`
	CategoryID   uint         `gorm:"not null;index" json:"category_id"`
	UserID       *uuid.UUID   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Status       ReportStatus `gorm:"not null;default:1;index" json:"status"`
	AdminNotes   string       `gorm:"size:2000" json:"admin_notes,omitempty"`
	ContactEmail string       `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPhone string       `gorm:"size:50" json:"contact_phone,omitempty"`
	Version      int64        `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	ResolvedAt   *time.Time   `json:"resolved_at,omitempty"`
	Category     Category     `gorm:"foreignKey:CategoryID" json:"-"`
	User         *User        `gorm:"foreignKey:UserID" json:"-"`
}

// IsAnonymous reports whether the report was submitted without an account.
func (r *Report) IsAnonymous() bool {
	return r.UserID == nil
}

// HasImage reports whether an image reference is attached.
func (r *Report) HasImage() bool {
	return r.ReportImage != ""
}
