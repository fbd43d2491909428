package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"floral-studio/internal/metrics"
	"floral-studio/internal/storage"
)

// ImagePathSource lists the image paths referenced by Image entities
type ImagePathSource interface {
	FindAllPaths(ctx context.Context) ([]string, error)
}

// CleanupResult summarizes one sweep
type CleanupResult struct {
	Scanned int
	Removed int
	Failed  int
}

// CleanupJob removes image files that no Image entity references.
// Files younger than the grace period are kept so an in-flight save is never swept.
type CleanupJob struct {
	paths       ImagePathSource
	imageStore  storage.ImageStore
	gracePeriod time.Duration
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	paths ImagePathSource,
	imageStore storage.ImageStore,
	gracePeriod time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CleanupJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupJob{
		paths:       paths,
		imageStore:  imageStore,
		gracePeriod: gracePeriod,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one sweep; it satisfies cron.Job
func (j *CleanupJob) Run() {
	if _, err := j.RunOnce(context.Background()); err != nil {
		j.logger.Error("Orphan image cleanup failed", zap.Error(err))
	}
}

// RunOnce lists stored image files and deletes the unreferenced ones past the grace period.
// Nothing is deleted when the referenced paths cannot be read.
func (j *CleanupJob) RunOnce(ctx context.Context) (CleanupResult, error) {
	var result CleanupResult

	j.logger.Info("Starting orphan image cleanup")

	referenced, err := j.paths.FindAllPaths(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load referenced image paths: %w", err)
	}
	known := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		known[p] = struct{}{}
	}

	objects, err := j.imageStore.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list stored images: %w", err)
	}
	result.Scanned = len(objects)

	cutoff := j.now().Add(-j.gracePeriod)
	for _, obj := range objects {
		if _, ok := known[obj.Path]; ok {
			continue
		}
		if !strings.HasPrefix(obj.Path, storage.ImagesDir+"/") {
			continue
		}
		if obj.ModTime.After(cutoff) {
			j.logger.Debug("Skipping recent unreferenced image", zap.String("path", obj.Path))
			continue
		}

		if err := j.imageStore.Delete(ctx, obj.Path); err != nil {
			j.logger.Error("Failed to delete orphan image",
				zap.String("path", obj.Path),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.Removed++

		j.logger.Debug("Deleted orphan image", zap.String("path", obj.Path))
	}

	if j.metrics != nil && result.Removed > 0 {
		j.metrics.AddOrphanImagesRemoved(result.Removed)
	}

	j.logger.Info("Orphan image cleanup completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("removed", result.Removed),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// Schedule registers the job on a new cron scheduler. The caller starts and stops it.
func Schedule(spec string, j *CleanupJob, logger *zap.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{logger: logger})))
	if _, err := c.AddJob(spec, j); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
	}
	return c, nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
