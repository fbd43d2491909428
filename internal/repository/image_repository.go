package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"floral-studio/internal/domain"
)

// ImageRepository defines the interface for image entity data access
type ImageRepository interface {
	Store[domain.Image]
	FindByMoodBoardID(ctx context.Context, moodBoardID uuid.UUID) ([]*domain.Image, error)
	FindByDesignID(ctx context.Context, designID uuid.UUID) ([]*domain.Image, error)
	FindAllPaths(ctx context.Context) ([]string, error)
}

type imageRepositoryImpl struct {
	*gormStore[domain.Image]
}

// NewImageRepository creates a new instance of ImageRepository.
// Images are listed in upload order unless asked otherwise.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepositoryImpl{
		gormStore: newGormStore[domain.Image](db, map[string]string{
			"uploadedAt": "uploaded_at",
		}, Sort{Field: "uploadedAt", Ascending: true}),
	}
}

// FindByMoodBoardID finds the images of a mood board in upload order
func (r *imageRepositoryImpl) FindByMoodBoardID(ctx context.Context, moodBoardID uuid.UUID) ([]*domain.Image, error) {
	var images []*domain.Image
	if err := r.db.WithContext(ctx).
		Where("mood_board_id = ?", moodBoardID).
		Order("uploaded_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// FindByDesignID finds every image on any mood board of a design
func (r *imageRepositoryImpl) FindByDesignID(ctx context.Context, designID uuid.UUID) ([]*domain.Image, error) {
	boardIDs := r.db.Model(&domain.MoodBoard{}).Select("id").Where("design_id = ?", designID)

	var images []*domain.Image
	if err := r.db.WithContext(ctx).
		Where("mood_board_id IN (?)", boardIDs).
		Order("uploaded_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// FindAllPaths returns the image path of every stored image entity
func (r *imageRepositoryImpl) FindAllPaths(ctx context.Context) ([]string, error) {
	var paths []string
	if err := r.db.WithContext(ctx).Model(&domain.Image{}).Pluck("image_path", &paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}
