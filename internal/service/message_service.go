package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"floral-studio/internal/domain"
	"floral-studio/internal/dto"
	"floral-studio/internal/metrics"
	"floral-studio/internal/repository"
	"floral-studio/internal/response"
)

// CurrentUserProvider exposes the acting user of the session
type CurrentUserProvider interface {
	CurrentUser() *domain.User
}

// MessageService defines the interface for messaging between users
type MessageService interface {
	Send(ctx context.Context, req *dto.SendMessageRequest) (*domain.Message, error)
	Conversation(ctx context.Context, otherUserID uuid.UUID) ([]*domain.Message, error)
	ForDesign(ctx context.Context, designID uuid.UUID) ([]*domain.Message, error)
	MarkRead(ctx context.Context, messageID uuid.UUID) (bool, error)
	UnreadCount(ctx context.Context) (int64, error)
}

// messageServiceImpl is the implementation of MessageService
type messageServiceImpl struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	designRepo  repository.DesignRepository
	session     CurrentUserProvider
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	designRepo repository.DesignRepository,
	session CurrentUserProvider,
	m *metrics.Metrics,
	logger *zap.Logger,
) MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &messageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		designRepo:  designRepo,
		session:     session,
		metrics:     m,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *messageServiceImpl) requireUser() (*domain.User, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Sign in required", "")
	}
	return user, nil
}

// Send delivers a message from the acting user
func (s *messageServiceImpl) Send(ctx context.Context, req *dto.SendMessageRequest) (*domain.Message, error) {
	sender, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if err := requireField(content, "content", "Message content is required"); err != nil {
		return nil, err
	}
	if req.ReceiverID == uuid.Nil {
		return nil, response.NewValidationError("Receiver is required", "receiverId")
	}

	if _, err := s.userRepo.FindByID(ctx, req.ReceiverID); err != nil {
		return nil, response.FromStorage(err, "Receiver not found")
	}
	if req.DesignID != nil {
		if _, err := s.designRepo.FindByID(ctx, *req.DesignID); err != nil {
			return nil, response.FromStorage(err, "Design not found")
		}
	}

	now := s.now()
	message := &domain.Message{
		BaseModel:  domain.BaseModel{CreatedAt: now, UpdatedAt: now},
		Content:    content,
		SenderID:   sender.ID,
		ReceiverID: req.ReceiverID,
		DesignID:   req.DesignID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to send message", zap.Error(err))
		return nil, response.NewStorageError("Failed to send message", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementMessageSent()
	}
	return message, nil
}

// Conversation lists messages between the acting user and another user, oldest first
func (s *messageServiceImpl) Conversation(ctx context.Context, otherUserID uuid.UUID) ([]*domain.Message, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindConversation(ctx, user.ID, otherUserID)
	if err != nil {
		s.logger.Error("Failed to load conversation", zap.Error(err))
		return nil, response.NewStorageError("Failed to load messages", err)
	}
	return messages, nil
}

// ForDesign lists messages about a design, oldest first
func (s *messageServiceImpl) ForDesign(ctx context.Context, designID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByDesignID(ctx, designID)
	if err != nil {
		s.logger.Error("Failed to load design messages", zap.String("design_id", designID.String()), zap.Error(err))
		return nil, response.NewStorageError("Failed to load messages", err)
	}
	return messages, nil
}

// MarkRead flags a message as read. Only its receiver may do so.
func (s *messageServiceImpl) MarkRead(ctx context.Context, messageID uuid.UUID) (bool, error) {
	user, err := s.requireUser()
	if err != nil {
		return false, err
	}

	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return false, response.FromStorage(err, "Message not found")
	}
	if message.ReceiverID != user.ID {
		return false, nil
	}
	if message.IsRead {
		return true, nil
	}

	if err := s.messageRepo.MarkAsRead(ctx, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, response.NewNotFoundError("Message not found", messageID.String())
		}
		s.logger.Error("Failed to mark message read", zap.Error(err))
		return false, response.NewStorageError("Failed to update message", err)
	}
	return true, nil
}

// UnreadCount counts unread messages addressed to the acting user
func (s *messageServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	user, err := s.requireUser()
	if err != nil {
		return 0, err
	}

	count, err := s.messageRepo.CountUnread(ctx, user.ID)
	if err != nil {
		return 0, response.NewStorageError("Failed to count messages", err)
	}
	return count, nil
}
