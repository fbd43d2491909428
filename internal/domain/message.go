package domain

import "github.com/google/uuid"

// Message is a chat message between two users, optionally about a design.
// Content never changes after sending; only IsRead is updated.
type Message struct {
	BaseModel
	Content    string     `gorm:"type:text;not null" json:"content"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_sender_id" json:"senderId"`
	ReceiverID uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_receiver_id" json:"receiverId"`
	DesignID   *uuid.UUID `gorm:"type:uuid;index:idx_messages_design_id" json:"designId,omitempty"`
	IsRead     bool       `gorm:"not null;default:false" json:"isRead"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}
