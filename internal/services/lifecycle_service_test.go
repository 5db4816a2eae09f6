package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipalreports/backend/internal/models"
)

func newLifecycleFixture(t *testing.T) (*LifecycleService, *models.Report) {
	t.Helper()
	db := newTestDB(t)
	cat := seedCategory(t, db, "Pothole")
	report := seedReport(t, db, models.Report{CategoryID: cat.ID})
	return NewLifecycleService(db), &report
}

func TestChangeStatusStampsResolvedAtOnEnteringBucket(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(at)

	updated, err := svc.ChangeStatus(report.ID, models.StatusResolved, "")
	require.NoError(t, err)

	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.Equal(at))
	assert.True(t, updated.UpdatedAt.Equal(at))
	assert.Equal(t, models.StatusResolved, updated.Status)

	var stored models.Report
	require.NoError(t, svc.db.First(&stored, "id = ?", report.ID).Error)
	require.NotNil(t, stored.ResolvedAt)
	assert.WithinDuration(t, at, *stored.ResolvedAt, time.Second)
}

func TestChangeStatusKeepsStampWithinBucket(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	first := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(first)
	_, err := svc.ChangeStatus(report.ID, models.StatusResolved, "")
	require.NoError(t, err)

	later := first.Add(48 * time.Hour)
	svc.now = fixedClock(later)
	updated, err := svc.ChangeStatus(report.ID, models.StatusClosed, "")
	require.NoError(t, err)

	// Resolved -> Closed stays inside the bucket, stamp must not move
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.Equal(first) ||
		updated.ResolvedAt.Sub(first).Abs() < time.Second)
	assert.True(t, updated.UpdatedAt.Equal(later))
}

func TestChangeStatusClearsStampOnLeavingBucket(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	_, err := svc.ChangeStatus(report.ID, models.StatusResolved, "")
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(report.ID, models.StatusInProgress, "")
	require.NoError(t, err)
	assert.Nil(t, updated.ResolvedAt)

	var stored models.Report
	require.NoError(t, svc.db.First(&stored, "id = ?", report.ID).Error)
	assert.Nil(t, stored.ResolvedAt)
}

func TestChangeStatusRestampsAfterReopen(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	first := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(first)
	_, err := svc.ChangeStatus(report.ID, models.StatusResolved, "")
	require.NoError(t, err)

	_, err = svc.ChangeStatus(report.ID, models.StatusInReview, "")
	require.NoError(t, err)

	second := first.AddDate(0, 0, 5)
	svc.now = fixedClock(second)
	updated, err := svc.ChangeStatus(report.ID, models.StatusResolved, "")
	require.NoError(t, err)

	// a fresh resolution after reopening gets a fresh stamp
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.Equal(second))
}

func TestChangeStatusAdminNotes(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	updated, err := svc.ChangeStatus(report.ID, models.StatusInReview, "crew dispatched")
	require.NoError(t, err)
	assert.Equal(t, "crew dispatched", updated.AdminNotes)

	// empty notes leave the stored value untouched
	updated, err = svc.ChangeStatus(report.ID, models.StatusInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, "crew dispatched", updated.AdminNotes)

	var stored models.Report
	require.NoError(t, svc.db.First(&stored, "id = ?", report.ID).Error)
	assert.Equal(t, "crew dispatched", stored.AdminNotes)

	updated, err = svc.ChangeStatus(report.ID, models.StatusResolved, "filled and paved")
	require.NoError(t, err)
	assert.Equal(t, "filled and paved", updated.AdminNotes)
}

func TestChangeStatusNotFound(t *testing.T) {
	svc, _ := newLifecycleFixture(t)

	_, err := svc.ChangeStatus(9999, models.StatusResolved, "")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestChangeStatusInvalidStatus(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	for _, bad := range []models.ReportStatus{0, 6, -1, 42} {
		_, err := svc.ChangeStatus(report.ID, bad, "")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}

	var stored models.Report
	require.NoError(t, svc.db.First(&stored, "id = ?", report.ID).Error)
	assert.Equal(t, models.StatusSubmitted, stored.Status)
}

func TestChangeStatusAllTransitionsAllowed(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	for _, from := range models.AllStatuses() {
		for _, to := range models.AllStatuses() {
			_, err := svc.ChangeStatus(report.ID, from, "")
			require.NoError(t, err)
			_, err = svc.ChangeStatus(report.ID, to, "")
			require.NoError(t, err, "transition %s -> %s", from, to)
		}
	}
}

func TestChangeStatusBumpsVersion(t *testing.T) {
	svc, report := newLifecycleFixture(t)

	updated, err := svc.ChangeStatus(report.ID, models.StatusInReview, "")
	require.NoError(t, err)
	assert.Equal(t, report.Version+1, updated.Version)

	updated, err = svc.ChangeStatus(report.ID, models.StatusInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, report.Version+2, updated.Version)
}

func TestDeriveResolvedAt(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	earlier := now.AddDate(0, 0, -3)

	tests := []struct {
		name    string
		current *time.Time
		status  models.ReportStatus
		want    *time.Time
	}{
		{"enter bucket unstamped", nil, models.StatusResolved, &now},
		{"enter bucket via closed", nil, models.StatusClosed, &now},
		{"within bucket keeps stamp", &earlier, models.StatusClosed, &earlier},
		{"leave bucket clears", &earlier, models.StatusInProgress, nil},
		{"pending stays nil", nil, models.StatusSubmitted, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveResolvedAt(tt.current, tt.status, now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want))
		})
	}
}
