package dto

import "github.com/google/uuid"

// SendMessageRequest represents the request to send a message
type SendMessageRequest struct {
	ReceiverID uuid.UUID  `json:"receiverId"`
	Content    string     `json:"content"`
	DesignID   *uuid.UUID `json:"designId,omitempty"`
}

// UnreadCountResponse carries the number of unread messages of the current user
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
