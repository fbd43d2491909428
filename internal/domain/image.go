package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image references a stored image file belonging to a mood board.
// ImagePath points at bytes held by the image store; the entity does not own them.
type Image struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MoodBoardID uuid.UUID `gorm:"type:uuid;not null;index:idx_images_mood_board_id" json:"moodBoardId"`
	ImagePath   string    `gorm:"type:text;not null" json:"imagePath"`
	UploadedAt  time.Time `gorm:"not null;index:idx_images_uploaded_at" json:"uploadedAt"`
}

// TableName specifies the table name for Image
func (Image) TableName() string {
	return "images"
}

// BeforeCreate fills the id and upload time when the caller left them empty
func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.UploadedAt.IsZero() {
		i.UploadedAt = tx.NowFunc()
	}
	return nil
}
