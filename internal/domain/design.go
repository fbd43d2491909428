package domain

import "github.com/google/uuid"

// DesignStatus represents the workflow status of a design.
// Transitions between statuses are unrestricted.
type DesignStatus string

const (
	DesignStatusDraft      DesignStatus = "draft"
	DesignStatusInProgress DesignStatus = "inProgress"
	DesignStatusReview     DesignStatus = "review"
	DesignStatusCompleted  DesignStatus = "completed"
	DesignStatusArchived   DesignStatus = "archived"
)

// IsValid reports whether the status is one of the known statuses
func (s DesignStatus) IsValid() bool {
	switch s {
	case DesignStatusDraft, DesignStatusInProgress, DesignStatusReview, DesignStatusCompleted, DesignStatusArchived:
		return true
	}
	return false
}

// Design is a floral arrangement record
type Design struct {
	BaseModel
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      DesignStatus `gorm:"type:varchar(20);not null;default:'draft';index:idx_designs_status" json:"status"`
	ClientID    *uuid.UUID   `gorm:"type:uuid;index:idx_designs_client_id" json:"clientId,omitempty"`
	DesignerID  *uuid.UUID   `gorm:"type:uuid;index:idx_designs_designer_id" json:"designerId,omitempty"`
	MoodBoards  []MoodBoard  `gorm:"foreignKey:DesignID" json:"moodBoards,omitempty"`
}

// TableName specifies the table name for Design
func (Design) TableName() string {
	return "designs"
}
