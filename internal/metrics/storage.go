package metrics

import "time"

// RecordImageStoreOperation records one image store call (save, load, delete, list)
func (m *Metrics) RecordImageStoreOperation(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordImageStoreOperation", func() {
		m.ImageStoreDuration.WithLabelValues(operation).Observe(duration.Seconds())
		if err != nil {
			m.ImageStoreErrors.WithLabelValues(operation).Inc()
		}
	})
}
