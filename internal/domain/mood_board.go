package domain

import "github.com/google/uuid"

// MoodBoard is a curated set of images attached to a design.
// A design may own several mood boards.
type MoodBoard struct {
	BaseModel
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index:idx_mood_boards_client_id" json:"clientId,omitempty"`
	DesignID    *uuid.UUID `gorm:"type:uuid;index:idx_mood_boards_design_id" json:"designId,omitempty"`
	Images      []Image    `gorm:"foreignKey:MoodBoardID" json:"images,omitempty"`
}

// TableName specifies the table name for MoodBoard
func (MoodBoard) TableName() string {
	return "mood_boards"
}
