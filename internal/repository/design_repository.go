package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"floral-studio/internal/domain"
)

// DesignRepository defines the interface for design data access
type DesignRepository interface {
	Store[domain.Design]
	FindByDesignerID(ctx context.Context, designerID uuid.UUID) ([]*domain.Design, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type designRepositoryImpl struct {
	*gormStore[domain.Design]
}

var designColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
}

// NewDesignRepository creates a new instance of DesignRepository.
// Designs are listed newest first unless asked otherwise.
func NewDesignRepository(db *gorm.DB) DesignRepository {
	return &designRepositoryImpl{
		gormStore: newGormStore[domain.Design](db, designColumns, Sort{Field: "createdAt"}),
	}
}

// FindByDesignerID finds all designs owned by a designer, newest first
func (r *designRepositoryImpl) FindByDesignerID(ctx context.Context, designerID uuid.UUID) ([]*domain.Design, error) {
	var designs []*domain.Design
	if err := r.db.WithContext(ctx).
		Where("designer_id = ?", designerID).
		Order("created_at DESC").
		Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// DeleteCascade deletes a design together with its mood boards and their images in one transaction.
// Image files are not touched here; callers remove them first.
func (r *designRepositoryImpl) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		boardIDs := tx.Model(&domain.MoodBoard{}).Select("id").Where("design_id = ?", id)

		if err := tx.Where("mood_board_id IN (?)", boardIDs).Delete(&domain.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("design_id = ?", id).Delete(&domain.MoodBoard{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Design{}).Error
	})
}
