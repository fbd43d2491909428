package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"floral-studio/internal/domain"
)

// MessageRepository defines the interface for message data access.
// There is no content update: messages are immutable once sent.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*domain.Message, error)
	FindByDesignID(ctx context.Context, designID uuid.UUID) ([]*domain.Message, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error)
}

type messageRepositoryImpl struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepositoryImpl{db: db}
}

func (r *messageRepositoryImpl) Create(ctx context.Context, message *domain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var message domain.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FindConversation returns the messages exchanged between two users, oldest first
func (r *messageRepositoryImpl) FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// FindByDesignID returns the messages about a design, oldest first
func (r *messageRepositoryImpl) FindByDesignID(ctx context.Context, designID uuid.UUID) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.WithContext(ctx).
		Where("design_id = ?", designID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkAsRead flags a message as read and bumps its updated_at
func (r *messageRepositoryImpl) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": r.db.NowFunc(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUnread counts unread messages addressed to a user
func (r *messageRepositoryImpl) CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}
