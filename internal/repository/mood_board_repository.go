package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"floral-studio/internal/domain"
)

// MoodBoardRepository defines the interface for mood board data access
type MoodBoardRepository interface {
	Store[domain.MoodBoard]
	FindAllWithImages(ctx context.Context, sort Sort) ([]*domain.MoodBoard, error)
	FindByDesignID(ctx context.Context, designID uuid.UUID) ([]*domain.MoodBoard, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type moodBoardRepositoryImpl struct {
	*gormStore[domain.MoodBoard]
}

// NewMoodBoardRepository creates a new instance of MoodBoardRepository.
// Mood boards are listed newest first unless asked otherwise.
func NewMoodBoardRepository(db *gorm.DB) MoodBoardRepository {
	return &moodBoardRepositoryImpl{
		gormStore: newGormStore[domain.MoodBoard](db, map[string]string{
			"createdAt": "created_at",
			"updatedAt": "updated_at",
			"title":     "title",
		}, Sort{Field: "createdAt"}),
	}
}

func preloadImagesInUploadOrder(db *gorm.DB) *gorm.DB {
	return db.Order("uploaded_at ASC")
}

// FindAllWithImages lists mood boards with their images in upload order
func (r *moodBoardRepositoryImpl) FindAllWithImages(ctx context.Context, sort Sort) ([]*domain.MoodBoard, error) {
	order, err := r.orderClause(sort)
	if err != nil {
		return nil, err
	}

	var boards []*domain.MoodBoard
	if err := r.db.WithContext(ctx).
		Preload("Images", preloadImagesInUploadOrder).
		Order(order).
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// FindByDesignID finds the mood boards attached to a design, oldest first
func (r *moodBoardRepositoryImpl) FindByDesignID(ctx context.Context, designID uuid.UUID) ([]*domain.MoodBoard, error) {
	var boards []*domain.MoodBoard
	if err := r.db.WithContext(ctx).
		Preload("Images", preloadImagesInUploadOrder).
		Where("design_id = ?", designID).
		Order("created_at ASC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// DeleteCascade deletes a mood board and its images in one transaction
func (r *moodBoardRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mood_board_id = ?", id).Delete(&domain.Image{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.MoodBoard{}).Error
	})
}
