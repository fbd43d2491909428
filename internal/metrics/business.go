package metrics

// IncrementDesignCreated increments design creation counter
func (m *Metrics) IncrementDesignCreated() {
	m.safeExecute("IncrementDesignCreated", func() {
		m.DesignCreatedTotal.Inc()
	})
}

// IncrementMoodBoardCreated increments mood board creation counter
func (m *Metrics) IncrementMoodBoardCreated() {
	m.safeExecute("IncrementMoodBoardCreated", func() {
		m.MoodBoardCreatedTotal.Inc()
	})
}

// IncrementImageSaved increments the saved image counter
func (m *Metrics) IncrementImageSaved() {
	m.safeExecute("IncrementImageSaved", func() {
		m.ImageSavedTotal.Inc()
	})
}

// IncrementImageSaveFailed increments the failed image save counter
func (m *Metrics) IncrementImageSaveFailed() {
	m.safeExecute("IncrementImageSaveFailed", func() {
		m.ImageSaveFailedTotal.Inc()
	})
}

// IncrementIntakeFormSubmitted increments the intake form counter
func (m *Metrics) IncrementIntakeFormSubmitted() {
	m.safeExecute("IncrementIntakeFormSubmitted", func() {
		m.IntakeFormSubmittedTotal.Inc()
	})
}

// IncrementMessageSent increments the sent message counter
func (m *Metrics) IncrementMessageSent() {
	m.safeExecute("IncrementMessageSent", func() {
		m.MessageSentTotal.Inc()
	})
}

// AddOrphanImagesRemoved adds to the orphan image removal counter
func (m *Metrics) AddOrphanImagesRemoved(count int) {
	m.safeExecute("AddOrphanImagesRemoved", func() {
		m.OrphanImagesRemovedTotal.Add(float64(count))
	})
}

// SetSnapshotSubscribers sets the number of live snapshot subscribers
func (m *Metrics) SetSnapshotSubscribers(count int) {
	m.safeExecute("SetSnapshotSubscribers", func() {
		m.SnapshotSubscribersActive.Set(float64(count))
	})
}

// SetDesignsTotal sets total designs gauge
func (m *Metrics) SetDesignsTotal(count int64) {
	m.safeExecute("SetDesignsTotal", func() {
		m.DesignsTotal.Set(float64(count))
	})
}

// SetMoodBoardsTotal sets total mood boards gauge
func (m *Metrics) SetMoodBoardsTotal(count int64) {
	m.safeExecute("SetMoodBoardsTotal", func() {
		m.MoodBoardsTotal.Set(float64(count))
	})
}

// SetImagesTotal sets total images gauge
func (m *Metrics) SetImagesTotal(count int64) {
	m.safeExecute("SetImagesTotal", func() {
		m.ImagesTotal.Set(float64(count))
	})
}
