package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"floral-studio/internal/metrics"
	"floral-studio/internal/storage"
)

// MockImagePathSource is a mock implementation of ImagePathSource
type MockImagePathSource struct {
	mock.Mock
}

func (m *MockImagePathSource) FindAllPaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockImageStore is a mock implementation of storage.ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	args := m.Called(ctx, id, data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Load(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockImageStore) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ObjectInfo), args.Error(1)
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestJob(paths ImagePathSource, store storage.ImageStore, m *metrics.Metrics) *CleanupJob {
	j := NewCleanupJob(paths, store, 10*time.Minute, m, zap.NewNop())
	j.now = func() time.Time { return fixedNow }
	return j
}

func TestCleanupJob_RunOnce_RemovesOldOrphans(t *testing.T) {
	mockPaths := new(MockImagePathSource)
	mockStore := new(MockImageStore)

	old := fixedNow.Add(-time.Hour)
	mockPaths.On("FindAllPaths", mock.Anything).Return([]string{"Images/kept.jpg"}, nil)
	mockStore.On("List", mock.Anything).Return([]storage.ObjectInfo{
		{Path: "Images/kept.jpg", ModTime: old},
		{Path: "Images/orphan.jpg", ModTime: old},
		{Path: "Images/fresh.jpg", ModTime: fixedNow.Add(-time.Minute)},
	}, nil)
	mockStore.On("Delete", mock.Anything, "Images/orphan.jpg").Return(nil)

	result, err := newTestJob(mockPaths, mockStore, nil).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, CleanupResult{Scanned: 3, Removed: 1}, result)
	mockStore.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, "Images/kept.jpg")
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, "Images/fresh.jpg")
}

func TestCleanupJob_RunOnce_ReferenceLookupFailureDeletesNothing(t *testing.T) {
	mockPaths := new(MockImagePathSource)
	mockStore := new(MockImageStore)

	mockPaths.On("FindAllPaths", mock.Anything).Return(nil, errors.New("database is locked"))

	_, err := newTestJob(mockPaths, mockStore, nil).RunOnce(context.Background())

	assert.Error(t, err)
	mockStore.AssertNotCalled(t, "List", mock.Anything)
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCleanupJob_RunOnce_ListFailure(t *testing.T) {
	mockPaths := new(MockImagePathSource)
	mockStore := new(MockImageStore)

	mockPaths.On("FindAllPaths", mock.Anything).Return([]string{}, nil)
	mockStore.On("List", mock.Anything).Return(nil, errors.New("permission denied"))

	_, err := newTestJob(mockPaths, mockStore, nil).RunOnce(context.Background())
	assert.Error(t, err)
}

func TestCleanupJob_RunOnce_DeleteFailureContinues(t *testing.T) {
	mockPaths := new(MockImagePathSource)
	mockStore := new(MockImageStore)

	old := fixedNow.Add(-time.Hour)
	mockPaths.On("FindAllPaths", mock.Anything).Return([]string{}, nil)
	mockStore.On("List", mock.Anything).Return([]storage.ObjectInfo{
		{Path: "Images/a.jpg", ModTime: old},
		{Path: "Images/b.jpg", ModTime: old},
	}, nil)
	mockStore.On("Delete", mock.Anything, "Images/a.jpg").Return(errors.New("busy"))
	mockStore.On("Delete", mock.Anything, "Images/b.jpg").Return(nil)

	result, err := newTestJob(mockPaths, mockStore, nil).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 1, result.Failed)
	mockStore.AssertExpectations(t)
}

func TestCleanupJob_RunOnce_IgnoresObjectsOutsideImagesDir(t *testing.T) {
	mockPaths := new(MockImagePathSource)
	mockStore := new(MockImageStore)

	mockPaths.On("FindAllPaths", mock.Anything).Return([]string{}, nil)
	mockStore.On("List", mock.Anything).Return([]storage.ObjectInfo{
		{Path: "studio.db", ModTime: fixedNow.Add(-time.Hour)},
	}, nil)

	result, err := newTestJob(mockPaths, mockStore, nil).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Removed)
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCleanupJob_RunOnce_RecordsMetrics(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	store := storage.NewMockImageStore()
	store.Put("Images/orphan-1.jpg", []byte("x"), fixedNow.Add(-time.Hour))
	store.Put("Images/orphan-2.jpg", []byte("y"), fixedNow.Add(-time.Hour))

	mockPaths := new(MockImagePathSource)
	mockPaths.On("FindAllPaths", mock.Anything).Return([]string{}, nil)

	result, err := newTestJob(mockPaths, store, m).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Removed)
	assert.Equal(t, 0, store.Len())
	metric := &dto.Metric{}
	require.NoError(t, m.OrphanImagesRemovedTotal.Write(metric))
	assert.Equal(t, float64(2), metric.Counter.GetValue())
}

func TestSchedule(t *testing.T) {
	j := newTestJob(new(MockImagePathSource), new(MockImageStore), nil)

	c, err := Schedule("@every 1h", j, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = Schedule("not a schedule", j, zap.NewNop())
	assert.Error(t, err)
}
