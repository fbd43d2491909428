package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockImageStore implements ImageStore in memory for tests
type MockImageStore struct {
	mu      sync.Mutex
	objects map[string]mockObject

	// Optional function overrides for custom test behavior
	SaveFunc   func(ctx context.Context, id uuid.UUID, data []byte) (string, error)
	LoadFunc   func(ctx context.Context, path string) ([]byte, error)
	DeleteFunc func(ctx context.Context, path string) error
	ListFunc   func(ctx context.Context) ([]ObjectInfo, error)
}

type mockObject struct {
	data    []byte
	modTime time.Time
}

// NewMockImageStore creates an empty in-memory image store
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{objects: make(map[string]mockObject)}
}

func (m *MockImageStore) Save(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, id, data)
	}
	path := ImagePath(id)
	m.Put(path, data, time.Now())
	return path, nil
}

func (m *MockImageStore) Load(ctx context.Context, path string) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[path]
	if !ok {
		return nil, ErrImageNotFound
	}
	return append([]byte(nil), obj.data...), nil
}

func (m *MockImageStore) Delete(ctx context.Context, path string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}

func (m *MockImageStore) List(ctx context.Context) ([]ObjectInfo, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	objects := make([]ObjectInfo, 0, len(m.objects))
	for path, obj := range m.objects {
		objects = append(objects, ObjectInfo{Path: path, ModTime: obj.modTime})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })
	return objects, nil
}

// Put stores an object directly, bypassing SaveFunc
func (m *MockImageStore) Put(path string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = mockObject{data: append([]byte(nil), data...), modTime: modTime}
}

// Has reports whether an object exists at path
func (m *MockImageStore) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}

// Len returns the number of stored objects
func (m *MockImageStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
