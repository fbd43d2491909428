package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"floral-studio/internal/config"
)

// ImagesDir is the directory (or key prefix) holding image bytes
const ImagesDir = "Images"

// ErrImageNotFound is returned by Load when no bytes exist at the path
var ErrImageNotFound = errors.New("image not found")

// ObjectInfo describes one stored image object
type ObjectInfo struct {
	Path    string
	ModTime time.Time
}

// ImageStore maps image ids to opaque bytes.
// Paths returned by Save are relative ("Images/<id>.jpg") and are what Image entities record.
type ImageStore interface {
	Save(ctx context.Context, id uuid.UUID, data []byte) (string, error)
	Load(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

// ImagePath returns the relative path an image id is stored under
func ImagePath(id uuid.UUID) string {
	return path.Join(ImagesDir, id.String()+".jpg")
}

// New builds the image store selected by configuration
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	switch cfg.Storage.Type {
	case config.StorageLocal:
		return NewLocalImageStore(cfg.Storage.LocalPath)
	case config.StorageS3:
		return NewS3ImageStore(ctx, &cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}
