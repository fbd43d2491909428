package metrics

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"floral-studio/internal/database"
	"floral-studio/internal/domain"
)

func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

// Helper function to get counter value
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("Failed to write counter metric: %v", err)
	}
	return metric.Counter.GetValue()
}

// Helper function to get gauge value
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := gauge.Write(metric); err != nil {
		t.Fatalf("Failed to write gauge metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestMetrics_NamesAreSnakeCaseUnderNamespace(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	// vectors only show up once a label set is used
	m.RecordHTTPRequest("GET", "/api/studio/designs", 200, time.Millisecond)
	m.RecordDBQuery("select", "designs", time.Millisecond, errors.New("x"))
	m.RecordImageStoreOperation("save", time.Millisecond, errors.New("x"))

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	snake := regexp.MustCompile(`^floral_studio_[a-z0-9_]+$`)
	for _, f := range families {
		assert.Regexp(t, snake, f.GetName())
		assert.NotEmpty(t, f.GetHelp(), f.GetName())
	}
}

func TestBusinessCounters(t *testing.T) {
	m := getTestMetrics()

	tests := []struct {
		name    string
		inc     func()
		counter prometheus.Counter
	}{
		{"design created", m.IncrementDesignCreated, m.DesignCreatedTotal},
		{"mood board created", m.IncrementMoodBoardCreated, m.MoodBoardCreatedTotal},
		{"image saved", m.IncrementImageSaved, m.ImageSavedTotal},
		{"image save failed", m.IncrementImageSaveFailed, m.ImageSaveFailedTotal},
		{"intake form submitted", m.IncrementIntakeFormSubmitted, m.IntakeFormSubmittedTotal},
		{"message sent", m.IncrementMessageSent, m.MessageSentTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := getCounterValue(t, tt.counter)
			tt.inc()
			if after := getCounterValue(t, tt.counter); after != before+1 {
				t.Errorf("Expected counter to increment by one, got %f -> %f", before, after)
			}
		})
	}

	m.AddOrphanImagesRemoved(3)
	assert.Equal(t, float64(3), getCounterValue(t, m.OrphanImagesRemovedTotal))
}

func TestGauges(t *testing.T) {
	m := getTestMetrics()

	m.SetDesignsTotal(7)
	m.SetMoodBoardsTotal(4)
	m.SetImagesTotal(19)
	m.SetSnapshotSubscribers(2)

	assert.Equal(t, float64(7), getGaugeValue(t, m.DesignsTotal))
	assert.Equal(t, float64(4), getGaugeValue(t, m.MoodBoardsTotal))
	assert.Equal(t, float64(19), getGaugeValue(t, m.ImagesTotal))
	assert.Equal(t, float64(2), getGaugeValue(t, m.SnapshotSubscribersActive))
}

func TestRecordDBQuery_CountsErrors(t *testing.T) {
	m := getTestMetrics()

	m.RecordDBQuery("SELECT", "designs", 2*time.Millisecond, nil)
	m.RecordDBQuery("select", "designs", 2*time.Millisecond, errors.New("locked"))

	assert.Equal(t, float64(1), getCounterValue(t, m.DBQueryErrors.WithLabelValues("select", "designs")))
}

func TestRecordDBQuery_IgnoresMissingRows(t *testing.T) {
	m := getTestMetrics()

	m.RecordDBQuery("select", "mood_boards", time.Millisecond, gorm.ErrRecordNotFound)
	m.RecordDBQuery("select", "mood_boards", time.Millisecond, fmt.Errorf("find board: %w", gorm.ErrRecordNotFound))

	assert.Equal(t, float64(0), getCounterValue(t, m.DBQueryErrors.WithLabelValues("select", "mood_boards")))
}

func TestRecordDBQuery_FoldsUnknownTables(t *testing.T) {
	m := getTestMetrics()

	m.RecordDBQuery("insert", "sqlite_master", time.Millisecond, errors.New("busy"))
	m.RecordDBQuery("insert", "`Images`", time.Millisecond, errors.New("busy"))

	assert.Equal(t, float64(1), getCounterValue(t, m.DBQueryErrors.WithLabelValues("insert", "other")))
	assert.Equal(t, float64(1), getCounterValue(t, m.DBQueryErrors.WithLabelValues("insert", "images")))
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"}, {201, "2xx"}, {304, "3xx"}, {404, "4xx"}, {500, "5xx"}, {100, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeStatus(tt.code))
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	got := normalizeEndpoint("/api/studio/designs/123e4567-e89b-12d3-a456-426614174000")
	assert.Equal(t, "/api/studio/designs/{id}", got)
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/api/studio/ws"))
	assert.False(t, ShouldSkipEndpoint("/api/studio/designs"))
}

func TestSafeExecute_RecoversPanics(t *testing.T) {
	m := getTestMetrics()
	assert.NotPanics(t, func() {
		m.safeExecute("boom", func() { panic("boom") })
	})
}

func TestBusinessMetricsCollector_CollectsCounts(t *testing.T) {
	db, err := database.New(database.Config{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "m.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	design := &domain.Design{Title: "Counted", Status: domain.DesignStatusDraft}
	require.NoError(t, db.Create(design).Error)
	board := &domain.MoodBoard{Title: "Counted board", DesignID: &design.ID}
	require.NoError(t, db.Create(board).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&domain.Image{MoodBoardID: board.ID, ImagePath: "Images/x.jpg"}).Error)
	}

	m := getTestMetrics()
	collector := NewBusinessMetricsCollector(db, m, zap.NewNop(), time.Hour)
	collector.collect()

	assert.Equal(t, float64(1), getGaugeValue(t, m.DesignsTotal))
	assert.Equal(t, float64(1), getGaugeValue(t, m.MoodBoardsTotal))
	assert.Equal(t, float64(2), getGaugeValue(t, m.ImagesTotal))
}

func TestBusinessMetricsCollector_StartStop(t *testing.T) {
	db, err := database.New(database.Config{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "m.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	collector := NewBusinessMetricsCollector(db, getTestMetrics(), zap.NewNop(), 10*time.Millisecond)
	collector.Start()
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		collector.Stop()
		collector.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
