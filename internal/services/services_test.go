package services

import (
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/municipalreports/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Report{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	cat := models.Category{Name: name, Icon: "pin", Color: "#FF6B6B"}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func seedUser(t *testing.T, db *gorm.DB, email, fullName string) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "x",
		FullName: fullName,
		Role:     models.RoleCitizen,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedReport(t *testing.T, db *gorm.DB, r models.Report) models.Report {
	t.Helper()
	if r.Title == "" {
		r.Title = "Test report"
	}
	if r.Description == "" {
		r.Description = "Something is broken"
	}
	if r.Address == "" {
		r.Address = "1 Main St"
	}
	if r.Status == 0 {
		r.Status = models.StatusSubmitted
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
