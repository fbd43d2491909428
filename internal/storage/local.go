package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalImageStore keeps image bytes under <root>/Images
type LocalImageStore struct {
	root string
}

// NewLocalImageStore creates the Images directory under root if it does not exist
func NewLocalImageStore(root string) (*LocalImageStore, error) {
	if err := os.MkdirAll(filepath.Join(root, ImagesDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalImageStore{root: root}, nil
}

// resolve maps a relative image path to a file under root.
// Paths escaping root are rejected.
func (s *LocalImageStore) resolve(p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid image path: %s", p)
	}
	return filepath.Join(s.root, clean), nil
}

// Save writes the bytes to Images/<id>.jpg.
// The write is not atomic; a partial file is removed when the write fails.
func (s *LocalImageStore) Save(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	rel := ImagePath(id)
	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return rel, nil
}

// Load reads the bytes stored at path
func (s *LocalImageStore) Load(ctx context.Context, p string) ([]byte, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// Delete removes the file at path. A missing file is not an error.
func (s *LocalImageStore) Delete(ctx context.Context, p string) error {
	full, err := s.resolve(p)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// List returns every file in the Images directory
func (s *LocalImageStore) List(ctx context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, ImagesDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	objects := make([]ObjectInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		objects = append(objects, ObjectInfo{
			Path:    ImagesDir + "/" + entry.Name(),
			ModTime: info.ModTime(),
		})
	}
	return objects, nil
}
