package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/models"
	"techforge_app_go/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockExporter is a mock of DayExporter
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportDay(ctx context.Context, day time.Time) (*services.StorageResult, int, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*services.StorageResult), args.Int(1), args.Error(2)
}

func setupJobTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Lead{}))
	return db
}

func TestExportPreviousDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	t.Run("Exports yesterday", func(t *testing.T) {
		m := new(MockExporter)
		m.On("ExportDay", mock.Anything, yesterday).Return(&services.StorageResult{Key: "exports/leads/x.xlsx"}, 3, nil)

		ExportPreviousDay(context.Background(), m, now)
		m.AssertExpectations(t)
	})

	t.Run("Failure is logged, not raised", func(t *testing.T) {
		m := new(MockExporter)
		m.On("ExportDay", mock.Anything, yesterday).Return(nil, 0, errors.New("bucket unavailable"))

		assert.NotPanics(t, func() { ExportPreviousDay(context.Background(), m, now) })
		m.AssertExpectations(t)
	})
}

func TestRetryLeadNotifications(t *testing.T) {
	db := setupJobTestDB(t)
	cfg := &config.Config{EmailTestMode: true, LeadNotifyEmail: "team@example.com", AppURL: "http://localhost:8080"}

	notified := time.Now().Add(-time.Hour)
	leads := []models.Lead{
		{Name: "Old pending", Email: "a@example.com", ProjectType: "AI/ML", Requirements: "x", CreatedAt: time.Now().Add(-time.Hour)},
		{Name: "Fresh", Email: "b@example.com", ProjectType: "AI/ML", Requirements: "x", CreatedAt: time.Now()},
		{Name: "Done", Email: "c@example.com", ProjectType: "AI/ML", Requirements: "x", CreatedAt: time.Now().Add(-time.Hour), NotifiedAt: &notified},
		{Name: "Ancient", Email: "d@example.com", ProjectType: "AI/ML", Requirements: "x", CreatedAt: time.Now().AddDate(0, 0, -30)},
	}
	for i := range leads {
		require.NoError(t, db.Create(&leads[i]).Error)
	}

	RetryLeadNotifications(db, cfg)

	var pending []models.Lead
	db.Where("notified_at IS NULL").Order("name").Find(&pending)
	require.Len(t, pending, 2)
	assert.Equal(t, "Ancient", pending[0].Name)
	assert.Equal(t, "Fresh", pending[1].Name)

	t.Run("No notify address disables the job", func(t *testing.T) {
		RetryLeadNotifications(db, &config.Config{EmailTestMode: true})
		var count int64
		db.Model(&models.Lead{}).Where("notified_at IS NULL").Count(&count)
		assert.Equal(t, int64(2), count)
	})
}

func TestPruneOldExports(t *testing.T) {
	dir := t.TempDir()
	store := services.NewLocalStorage(dir)
	ctx := context.Background()

	key := services.GenerateLeadExportKey(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	_, err := store.Put(ctx, key, strings.NewReader("PK"), 2)
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, 0, PruneOldExports(ctx, store, 24*time.Hour, now))
	assert.Equal(t, 1, PruneOldExports(ctx, store, 24*time.Hour, now.Add(48*time.Hour)))

	objects, err := store.List(ctx, services.LeadExportPrefix)
	require.NoError(t, err)
	assert.Empty(t, objects)
}
