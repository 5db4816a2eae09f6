package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/models"
)

func TestCreateReportValidation(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	svc := NewReportService(db)

	tests := []struct {
		name string
		req  dto.CreateReportRequest
		want error
	}{
		{"missing title", dto.CreateReportRequest{Description: "d", Address: "a", CategoryID: cat.ID}, ErrTitleRequired},
		{"blank title", dto.CreateReportRequest{Title: "   ", Description: "d", Address: "a", CategoryID: cat.ID}, ErrTitleRequired},
		{"missing description", dto.CreateReportRequest{Title: "t", Address: "a", CategoryID: cat.ID}, ErrDescriptionRequired},
		{"missing address", dto.CreateReportRequest{Title: "t", Description: "d", CategoryID: cat.ID}, ErrAddressRequired},
		{"unknown category", dto.CreateReportRequest{Title: "t", Description: "d", Address: "a", CategoryID: 999}, ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(nil, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateReportAnonymous(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	svc := NewReportService(db)

	report, err := svc.Create(nil, &dto.CreateReportRequest{
		Title:        "  Pothole on Elm  ",
		Description:  "Deep hole",
		Address:      "40 Elm Street",
		CategoryID:   cat.ID,
		ContactEmail: "citizen@example.com",
	})
	require.NoError(t, err)

	assert.NotZero(t, report.ID)
	assert.Equal(t, "Pothole on Elm", report.Title)
	assert.Equal(t, models.StatusSubmitted, report.Status)
	assert.True(t, report.IsAnonymous())
	assert.Equal(t, "citizen@example.com", report.ContactEmail)
}

func TestCreateReportForUser(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	user := seedUser(t, db, "mehmet@example.com", "Mehmet Kaya")
	svc := NewReportService(db)

	report, err := svc.Create(&user.ID, &dto.CreateReportRequest{
		Title:       "Pothole on Elm",
		Description: "Deep hole",
		Address:     "40 Elm Street",
		CategoryID:  cat.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, report.UserID)
	assert.Equal(t, user.ID, *report.UserID)
}

func TestGetReport(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	report := seedReport(t, db, models.Report{CategoryID: cat.ID})
	svc := NewReportService(db)

	row, err := svc.Get(report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, row.ID)
	assert.Equal(t, "Pothole", row.CategoryName)
	assert.Equal(t, "Submitted", row.StatusName)

	_, err = svc.Get(9999)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestListByUser(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	user := seedUser(t, db, "mehmet@example.com", "Mehmet Kaya")
	other := seedUser(t, db, "ayse@example.com", "Ayse Demir")

	seedReport(t, db, models.Report{CategoryID: cat.ID, UserID: &user.ID, Title: "Mine"})
	seedReport(t, db, models.Report{CategoryID: cat.ID, UserID: &other.ID, Title: "Not mine"})
	seedReport(t, db, models.Report{CategoryID: cat.ID, Title: "Anonymous one"})

	svc := NewReportService(db)
	rows, err := svc.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mine", rows[0].Title)
}

func TestDeleteReport(t *testing.T) {
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	report := seedReport(t, db, models.Report{CategoryID: cat.ID})
	svc := NewReportService(db)

	require.NoError(t, svc.Delete(report.ID))
	assert.ErrorIs(t, svc.Delete(report.ID), ErrReportNotFound)
}

func TestFilterOptions(t *testing.T) {
	db := newTestDB(t)
	for _, c := range models.SeedCategories() {
		require.NoError(t, db.Create(&c).Error)
	}
	svc := NewReportService(db)

	opts, err := svc.FilterOptions()
	require.NoError(t, err)

	assert.Len(t, opts.Categories, 8)
	require.Len(t, opts.StatusOptions, 5)
	assert.Equal(t, 1, opts.StatusOptions[0].Value)
	assert.Equal(t, "Submitted", opts.StatusOptions[0].Name)
	assert.Len(t, opts.SortOptions, 5)
}
