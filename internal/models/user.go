package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// User is a registered account. Anonymous report submitters have no User row.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	FullName     string         `gorm:"size:255" json:"full_name,omitempty"`
	Phone        string         `gorm:"size:50" json:"phone,omitempty"`
	Role         string         `gorm:"size:20;default:'citizen'" json:"role"`
	IsBlocked    bool           `gorm:"default:false" json:"-"`
	GoogleUserID *string        `gorm:"size:255;index" json:"-"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	return role == RoleCitizen || role == RoleStaff || role == RoleAdmin
}
