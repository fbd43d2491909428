package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OperationRecorder receives the outcome of every image store call
type OperationRecorder interface {
	RecordImageStoreOperation(operation string, duration time.Duration, err error)
}

type instrumentedStore struct {
	next     ImageStore
	recorder OperationRecorder
}

// NewInstrumentedStore wraps store so every call is timed and reported to recorder
func NewInstrumentedStore(store ImageStore, recorder OperationRecorder) ImageStore {
	if recorder == nil {
		return store
	}
	return &instrumentedStore{next: store, recorder: recorder}
}

func (s *instrumentedStore) Save(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	start := time.Now()
	path, err := s.next.Save(ctx, id, data)
	s.recorder.RecordImageStoreOperation("save", time.Since(start), err)
	return path, err
}

func (s *instrumentedStore) Load(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Load(ctx, path)
	// a missing image is an answer, not a store failure
	recorded := err
	if err == ErrImageNotFound {
		recorded = nil
	}
	s.recorder.RecordImageStoreOperation("load", time.Since(start), recorded)
	return data, err
}

func (s *instrumentedStore) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := s.next.Delete(ctx, path)
	s.recorder.RecordImageStoreOperation("delete", time.Since(start), err)
	return err
}

func (s *instrumentedStore) List(ctx context.Context) ([]ObjectInfo, error) {
	start := time.Now()
	objects, err := s.next.List(ctx)
	s.recorder.RecordImageStoreOperation("list", time.Since(start), err)
	return objects, err
}
