package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"floral-studio/internal/domain"
	"floral-studio/internal/dto"
	"floral-studio/internal/service"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// MockStudioService is a mock implementation of StudioService
type MockStudioService struct {
	LoginFunc           func(ctx context.Context, req *dto.LoginRequest) (*domain.User, error)
	LogoutFunc          func()
	CurrentUserFunc     func() *domain.User
	CreateClientFunc    func(ctx context.Context, req *dto.CreateClientRequest) (*domain.Client, error)
	ListClientsFunc     func(ctx context.Context) ([]*domain.Client, error)
	CreateDesignFunc    func(ctx context.Context, req *dto.CreateDesignRequest) (*domain.Design, error)
	UpdateDesignFunc    func(ctx context.Context, designID uuid.UUID, req *dto.UpdateDesignRequest) (bool, error)
	DeleteDesignFunc    func(ctx context.Context, designID uuid.UUID) (bool, error)
	CreateMoodBoardFunc func(ctx context.Context, req *dto.CreateMoodBoardRequest) (*domain.MoodBoard, error)
	DeleteMoodBoardFunc func(ctx context.Context, moodBoardID uuid.UUID) (bool, error)
	SaveImageFunc       func(ctx context.Context, moodBoardID uuid.UUID, data []byte) (*domain.Image, error)
	SaveImagesFunc      func(ctx context.Context, moodBoardID uuid.UUID, images [][]byte) ([]dto.ImageResult, error)
	DeleteImageFunc     func(ctx context.Context, imageID uuid.UUID) (bool, error)
	LoadImageFunc       func(ctx context.Context, imageID uuid.UUID) ([]byte, error)
	SnapshotFunc        func() service.Snapshot
	SubscribeFunc       func() (<-chan service.Snapshot, func())
}

func (m *MockStudioService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockStudioService) Logout() {
	if m.LogoutFunc != nil {
		m.LogoutFunc()
	}
}

func (m *MockStudioService) CurrentUser() *domain.User {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc()
	}
	return nil
}

func (m *MockStudioService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*domain.Client, error) {
	if m.CreateClientFunc != nil {
		return m.CreateClientFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockStudioService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStudioService) CreateDesign(ctx context.Context, req *dto.CreateDesignRequest) (*domain.Design, error) {
	if m.CreateDesignFunc != nil {
		return m.CreateDesignFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockStudioService) UpdateDesign(ctx context.Context, designID uuid.UUID, req *dto.UpdateDesignRequest) (bool, error) {
	if m.UpdateDesignFunc != nil {
		return m.UpdateDesignFunc(ctx, designID, req)
	}
	return false, nil
}

func (m *MockStudioService) DeleteDesign(ctx context.Context, designID uuid.UUID) (bool, error) {
	if m.DeleteDesignFunc != nil {
		return m.DeleteDesignFunc(ctx, designID)
	}
	return false, nil
}

func (m *MockStudioService) CreateMoodBoard(ctx context.Context, req *dto.CreateMoodBoardRequest) (*domain.MoodBoard, error) {
	if m.CreateMoodBoardFunc != nil {
		return m.CreateMoodBoardFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockStudioService) DeleteMoodBoard(ctx context.Context, moodBoardID uuid.UUID) (bool, error) {
	if m.DeleteMoodBoardFunc != nil {
		return m.DeleteMoodBoardFunc(ctx, moodBoardID)
	}
	return false, nil
}

func (m *MockStudioService) SaveImage(ctx context.Context, moodBoardID uuid.UUID, data []byte) (*domain.Image, error) {
	if m.SaveImageFunc != nil {
		return m.SaveImageFunc(ctx, moodBoardID, data)
	}
	return nil, nil
}

func (m *MockStudioService) SaveImages(ctx context.Context, moodBoardID uuid.UUID, images [][]byte) ([]dto.ImageResult, error) {
	if m.SaveImagesFunc != nil {
		return m.SaveImagesFunc(ctx, moodBoardID, images)
	}
	return nil, nil
}

func (m *MockStudioService) DeleteImage(ctx context.Context, imageID uuid.UUID) (bool, error) {
	if m.DeleteImageFunc != nil {
		return m.DeleteImageFunc(ctx, imageID)
	}
	return false, nil
}

func (m *MockStudioService) LoadImage(ctx context.Context, imageID uuid.UUID) ([]byte, error) {
	if m.LoadImageFunc != nil {
		return m.LoadImageFunc(ctx, imageID)
	}
	return nil, nil
}

func (m *MockStudioService) Refresh(ctx context.Context) error {
	return nil
}

func (m *MockStudioService) Snapshot() service.Snapshot {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc()
	}
	return service.Snapshot{}
}

func (m *MockStudioService) Subscribe() (<-chan service.Snapshot, func()) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc()
	}
	ch := make(chan service.Snapshot)
	return ch, func() {}
}

func (m *MockStudioService) Close() {}

// MockIntakeService is a mock implementation of IntakeService
type MockIntakeService struct {
	ValidateFunc func(form *domain.IntakeForm) error
	SubmitFunc   func(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error)
	ListFunc     func(ctx context.Context) ([]domain.IntakeForm, error)
	UpdateFunc   func(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *MockIntakeService) Validate(form *domain.IntakeForm) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(form)
	}
	return nil
}

func (m *MockIntakeService) Submit(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, form)
	}
	return form, nil
}

func (m *MockIntakeService) List(ctx context.Context) ([]domain.IntakeForm, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.IntakeForm{}, nil
}

func (m *MockIntakeService) Update(ctx context.Context, form *domain.IntakeForm) (*domain.IntakeForm, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, form)
	}
	return form, nil
}

func (m *MockIntakeService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockMessageService is a mock implementation of MessageService
type MockMessageService struct {
	SendFunc         func(ctx context.Context, req *dto.SendMessageRequest) (*domain.Message, error)
	ConversationFunc func(ctx context.Context, otherUserID uuid.UUID) ([]*domain.Message, error)
	ForDesignFunc    func(ctx context.Context, designID uuid.UUID) ([]*domain.Message, error)
	MarkReadFunc     func(ctx context.Context, messageID uuid.UUID) (bool, error)
	UnreadCountFunc  func(ctx context.Context) (int64, error)
}

func (m *MockMessageService) Send(ctx context.Context, req *dto.SendMessageRequest) (*domain.Message, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockMessageService) Conversation(ctx context.Context, otherUserID uuid.UUID) ([]*domain.Message, error) {
	if m.ConversationFunc != nil {
		return m.ConversationFunc(ctx, otherUserID)
	}
	return nil, nil
}

func (m *MockMessageService) ForDesign(ctx context.Context, designID uuid.UUID) ([]*domain.Message, error) {
	if m.ForDesignFunc != nil {
		return m.ForDesignFunc(ctx, designID)
	}
	return nil, nil
}

func (m *MockMessageService) MarkRead(ctx context.Context, messageID uuid.UUID) (bool, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, messageID)
	}
	return false, nil
}

func (m *MockMessageService) UnreadCount(ctx context.Context) (int64, error) {
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx)
	}
	return 0, nil
}
