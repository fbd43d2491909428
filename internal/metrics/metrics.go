package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "floral_studio"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec

	// Image store metrics
	ImageStoreDuration *prometheus.HistogramVec
	ImageStoreErrors   *prometheus.CounterVec

	// Business metrics
	DesignsTotal              prometheus.Gauge
	MoodBoardsTotal           prometheus.Gauge
	ImagesTotal               prometheus.Gauge
	DesignCreatedTotal        prometheus.Counter
	MoodBoardCreatedTotal     prometheus.Counter
	ImageSavedTotal           prometheus.Counter
	ImageSaveFailedTotal      prometheus.Counter
	IntakeFormSubmittedTotal  prometheus.Counter
	MessageSentTotal          prometheus.Counter
	OrphanImagesRemovedTotal  prometheus.Counter
	SnapshotSubscribersActive prometheus.Gauge

	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	factory := promauto.With(registerer)

	if logger == nil {
		logger = zap.NewNop()
	}

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),

		DBConnectionsOpen:  gauge("db_connections_open", "Current number of open database connections"),
		DBConnectionsInUse: gauge("db_connections_in_use", "Current number of in-use database connections"),
		DBConnectionsIdle:  gauge("db_connections_idle", "Current number of idle database connections"),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation", "table"},
		),
		DBQueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_query_errors_total",
				Help:      "Total number of database query errors",
			},
			[]string{"operation", "table"},
		),

		ImageStoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "image_store_operation_duration_seconds",
				Help:      "Image store operation duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		ImageStoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "image_store_errors_total",
				Help:      "Total number of failed image store operations",
			},
			[]string{"operation"},
		),

		DesignsTotal:              gauge("designs_total", "Total number of designs"),
		MoodBoardsTotal:           gauge("mood_boards_total", "Total number of mood boards"),
		ImagesTotal:               gauge("images_total", "Total number of images"),
		DesignCreatedTotal:        counter("design_created_total", "Total number of design creation events"),
		MoodBoardCreatedTotal:     counter("mood_board_created_total", "Total number of mood board creation events"),
		ImageSavedTotal:           counter("image_saved_total", "Total number of images saved"),
		ImageSaveFailedTotal:      counter("image_save_failed_total", "Total number of failed image saves"),
		IntakeFormSubmittedTotal:  counter("intake_form_submitted_total", "Total number of intake forms submitted"),
		MessageSentTotal:          counter("message_sent_total", "Total number of messages sent"),
		OrphanImagesRemovedTotal:  counter("orphan_images_removed_total", "Total number of orphan image files removed"),
		SnapshotSubscribersActive: gauge("snapshot_subscribers_active", "Current number of snapshot subscribers"),

		logger: logger,
	}
}

// safeExecute wraps metric operations with panic recovery
func (m *Metrics) safeExecute(operation string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("Panic in metrics operation",
					zap.String("operation", operation),
					zap.Any("panic", r),
				)
			}
		}
	}()
	fn()
}
