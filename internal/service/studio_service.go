package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"floral-studio/internal/auth"
	"floral-studio/internal/domain"
	"floral-studio/internal/dto"
	"floral-studio/internal/metrics"
	"floral-studio/internal/repository"
	"floral-studio/internal/response"
	"floral-studio/internal/storage"
)

// StudioService is the single entry point presentation code uses to read and mutate studio data.
// Guarded mutations report applied=false (or a nil entity) when the acting user may not perform them.
type StudioService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error)
	Logout()
	CurrentUser() *domain.User

	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)

	CreateDesign(ctx context.Context, req *dto.CreateDesignRequest) (*domain.Design, error)
	UpdateDesign(ctx context.Context, designID uuid.UUID, req *dto.UpdateDesignRequest) (bool, error)
	DeleteDesign(ctx context.Context, designID uuid.UUID) (bool, error)

	CreateMoodBoard(ctx context.Context, req *dto.CreateMoodBoardRequest) (*domain.MoodBoard, error)
	DeleteMoodBoard(ctx context.Context, moodBoardID uuid.UUID) (bool, error)

	SaveImage(ctx context.Context, moodBoardID uuid.UUID, data []byte) (*domain.Image, error)
	SaveImages(ctx context.Context, moodBoardID uuid.UUID, images [][]byte) ([]dto.ImageResult, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) (bool, error)
	LoadImage(ctx context.Context, imageID uuid.UUID) ([]byte, error)

	Refresh(ctx context.Context) error
	Snapshot() Snapshot
	Subscribe() (<-chan Snapshot, func())
	Close()
}

// Repositories groups the entity stores used by the façade
type Repositories struct {
	Users      repository.UserRepository
	Clients    repository.ClientRepository
	Designs    repository.DesignRepository
	MoodBoards repository.MoodBoardRepository
	Images     repository.ImageRepository
}

// studioServiceImpl is the implementation of StudioService
type studioServiceImpl struct {
	repos         Repositories
	imageStore    storage.ImageStore
	authenticator auth.Authenticator
	metrics       *metrics.Metrics
	logger        *zap.Logger
	now           func() time.Time

	// mu serializes every mutation; the store has a single writer.
	mu sync.Mutex

	// state guards the acting user and the published snapshot.
	state    sync.RWMutex
	current  *domain.User
	snapshot Snapshot

	broker *snapshotBroker
}

// NewStudioService creates a new instance of StudioService
func NewStudioService(
	repos Repositories,
	imageStore storage.ImageStore,
	authenticator auth.Authenticator,
	m *metrics.Metrics,
	logger *zap.Logger,
) StudioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &studioServiceImpl{
		repos:         repos,
		imageStore:    imageStore,
		authenticator: authenticator,
		metrics:       m,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
		broker:        newSnapshotBroker(),
	}
}

// Login checks the credentials, then finds or creates the user for (username, email, role).
// A failed check leaves the session unchanged.
func (s *studioServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if err := requireField(username, "username", "Username is required"); err != nil {
		return nil, err
	}
	if err := requireField(email, "email", "Email is required"); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, response.NewValidationError("Role must be admin, designer or client", "role")
	}

	creds := auth.Credentials{Username: username, Email: email, Role: req.Role, Secret: req.Secret}
	if err := s.authenticator.Authenticate(ctx, creds); err != nil {
		s.logger.Info("Login rejected", zap.String("username", username), zap.String("role", string(req.Role)))
		return nil, response.NewUnauthorizedError("Invalid credentials", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.findOrCreateUser(ctx, username, email, req.Role)
	if err != nil {
		s.logger.Error("Failed to resolve user on login", zap.String("username", username), zap.Error(err))
		return nil, response.FromStorage(err, "Failed to sign in")
	}

	if user.Role == domain.RoleClient {
		if err := s.ensureClientRecord(ctx, user); err != nil {
			s.logger.Error("Failed to resolve client record on login", zap.String("user_id", user.ID.String()), zap.Error(err))
			return nil, response.FromStorage(err, "Failed to sign in")
		}
	}

	s.state.Lock()
	s.current = user
	s.state.Unlock()

	s.logger.Info("User signed in", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	s.refreshLocked(ctx)

	copied := *user
	return &copied, nil
}

func (s *studioServiceImpl) findOrCreateUser(ctx context.Context, username, email string, role domain.UserRole) (*domain.User, error) {
	user, err := s.repos.Users.FindByIdentity(ctx, username, email, role)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := s.now()
	user = &domain.User{
		BaseModel: domain.BaseModel{CreatedAt: now, UpdatedAt: now},
		Username:  username,
		Email:     email,
		Role:      role,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ensureClientRecord keeps a Client with the user's id so mood board ownership resolves for client logins
func (s *studioServiceImpl) ensureClientRecord(ctx context.Context, user *domain.User) error {
	_, err := s.repos.Clients.FindByID(ctx, user.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := s.now()
	email := user.Email
	return s.repos.Clients.Create(ctx, &domain.Client{
		BaseModel: domain.BaseModel{ID: user.ID, CreatedAt: now, UpdatedAt: now},
		Name:      user.Username,
		Email:     &email,
	})
}

// Logout clears the acting user; no data is deleted.
// It waits for in-flight mutations so none of them runs as the old user afterwards.
func (s *studioServiceImpl) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Lock()
	s.current = nil
	snap := s.snapshot
	snap.CurrentUser = nil
	snap.Version++
	snap.PublishedAt = s.now()
	s.snapshot = snap
	s.state.Unlock()

	s.broker.publish(snap)
}

// CurrentUser returns a copy of the acting user, or nil when signed out
func (s *studioServiceImpl) CurrentUser() *domain.User {
	s.state.RLock()
	defer s.state.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// CreateClient creates a client record. Returns nil when nobody is signed in.
func (s *studioServiceImpl) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CurrentUser() == nil {
		return nil, nil
	}

	name := strings.TrimSpace(req.Name)
	if err := requireField(name, "name", "Client name is required"); err != nil {
		return nil, err
	}
	email, phone := req.Email, req.Phone
	if err := validateContact(email, phone); err != nil {
		return nil, err
	}

	now := s.now()
	client := &domain.Client{
		BaseModel: domain.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Email:     email,
		Phone:     phone,
	}
	if err := s.repos.Clients.Create(ctx, client); err != nil {
		s.logger.Error("Failed to create client", zap.Error(err))
		return nil, response.NewStorageError("Failed to create client", err)
	}

	s.refreshLocked(ctx)
	return client, nil
}

// ListClients returns every client ordered by name
func (s *studioServiceImpl) ListClients(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.repos.Clients.FindAll(ctx, repository.Sort{})
	if err != nil {
		s.logger.Error("Failed to list clients", zap.Error(err))
		return nil, response.NewStorageError("Failed to load clients", err)
	}
	return clients, nil
}

// CreateDesign creates a design owned by the acting user. Returns nil when nobody is signed in.
func (s *studioServiceImpl) CreateDesign(ctx context.Context, req *dto.CreateDesignRequest) (*domain.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.CurrentUser()
	if actor == nil {
		return nil, nil
	}

	title := strings.TrimSpace(req.Title)
	if err := requireField(title, "title", "Design title is required"); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.DesignStatusDraft
	}
	if !status.IsValid() {
		return nil, response.NewValidationError("Unknown design status", "status")
	}

	if req.ClientID != nil {
		if _, err := s.repos.Clients.FindByID(ctx, *req.ClientID); err != nil {
			return nil, response.FromStorage(err, "Client not found")
		}
	}

	now := s.now()
	designerID := actor.ID
	design := &domain.Design{
		BaseModel:   domain.BaseModel{CreatedAt: now, UpdatedAt: now},
		Title:       title,
		Description: req.Description,
		Status:      status,
		ClientID:    req.ClientID,
		DesignerID:  &designerID,
	}
	if err := s.repos.Designs.Create(ctx, design); err != nil {
		s.logger.Error("Failed to create design", zap.Error(err))
		return nil, response.NewStorageError("Failed to create design", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementDesignCreated()
	}
	s.logger.Info("Design created", zap.String("design_id", design.ID.String()), zap.String("designer_id", designerID.String()))

	s.refreshLocked(ctx)
	return design, nil
}

// UpdateDesign replaces title, description and status and bumps updatedAt
func (s *studioServiceImpl) UpdateDesign(ctx context.Context, designID uuid.UUID, req *dto.UpdateDesignRequest) (bool, error) {
	title := strings.TrimSpace(req.Title)
	if err := requireField(title, "title", "Design title is required"); err != nil {
		return false, err
	}
	if !req.Status.IsValid() {
		return false, response.NewValidationError("Unknown design status", "status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	design, err := s.repos.Designs.FindByID(ctx, designID)
	if err != nil {
		return false, s.storageFailure(err, "Design not found", "design_id", designID)
	}
	if !auth.CanModify(s.CurrentUser(), auth.DesignResource(design)) {
		s.logDenied("update_design", designID)
		return false, nil
	}

	_, err = s.repos.Designs.Update(ctx, designID, func(d *domain.Design) error {
		d.Title = title
		d.Description = req.Description
		d.Status = req.Status
		d.Touch(s.now())
		return nil
	})
	if err != nil {
		return false, s.storageFailure(err, "Failed to update design", "design_id", designID)
	}

	s.refreshLocked(ctx)
	return true, nil
}

// DeleteDesign removes a design, its mood boards, their images and the image files.
// File removal is best-effort and happens before the entities are deleted.
func (s *studioServiceImpl) DeleteDesign(ctx context.Context, designID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	design, err := s.repos.Designs.FindByID(ctx, designID)
	if err != nil {
		return false, s.storageFailure(err, "Design not found", "design_id", designID)
	}
	if !auth.CanModify(s.CurrentUser(), auth.DesignResource(design)) {
		s.logDenied("delete_design", designID)
		return false, nil
	}

	images, err := s.repos.Images.FindByDesignID(ctx, designID)
	if err != nil {
		return false, s.storageFailure(err, "Failed to load design images", "design_id", designID)
	}
	s.removeImageFiles(ctx, images)

	if err := s.repos.Designs.DeleteCascade(ctx, designID); err != nil {
		return false, s.storageFailure(err, "Failed to delete design", "design_id", designID)
	}

	s.logger.Info("Design deleted", zap.String("design_id", designID.String()), zap.Int("images", len(images)))
	s.refreshLocked(ctx)
	return true, nil
}

// CreateMoodBoard creates a mood board. Returns nil when nobody is signed in.
// A client creating a board without naming a client owns it.
func (s *studioServiceImpl) CreateMoodBoard(ctx context.Context, req *dto.CreateMoodBoardRequest) (*domain.MoodBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.CurrentUser()
	if actor == nil {
		return nil, nil
	}

	title := strings.TrimSpace(req.Title)
	if err := requireField(title, "title", "Mood board title is required"); err != nil {
		return nil, err
	}

	clientID := req.ClientID
	if clientID == nil && actor.Role == domain.RoleClient {
		id := actor.ID
		clientID = &id
	}

	if req.DesignID != nil {
		if _, err := s.repos.Designs.FindByID(ctx, *req.DesignID); err != nil {
			return nil, response.FromStorage(err, "Design not found")
		}
	}

	now := s.now()
	board := &domain.MoodBoard{
		BaseModel:   domain.BaseModel{CreatedAt: now, UpdatedAt: now},
		Title:       title,
		Description: req.Description,
		ClientID:    clientID,
		DesignID:    req.DesignID,
	}
	if err := s.repos.MoodBoards.Create(ctx, board); err != nil {
		s.logger.Error("Failed to create mood board", zap.Error(err))
		return nil, response.NewStorageError("Failed to create mood board", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementMoodBoardCreated()
	}

	s.refreshLocked(ctx)
	return board, nil
}

// DeleteMoodBoard removes the board's image files, then the board and its images
func (s *studioServiceImpl) DeleteMoodBoard(ctx context.Context, moodBoardID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, allowed, err := s.authorizeMoodBoard(ctx, moodBoardID)
	if err != nil {
		return false, err
	}
	if !allowed {
		s.logDenied("delete_mood_board", moodBoardID)
		return false, nil
	}

	images, err := s.repos.Images.FindByMoodBoardID(ctx, board.ID)
	if err != nil {
		return false, s.storageFailure(err, "Failed to load mood board images", "mood_board_id", moodBoardID)
	}
	s.removeImageFiles(ctx, images)

	if err := s.repos.MoodBoards.DeleteCascade(ctx, board.ID); err != nil {
		return false, s.storageFailure(err, "Failed to delete mood board", "mood_board_id", moodBoardID)
	}

	s.refreshLocked(ctx)
	return true, nil
}

// SaveImage stores the bytes, then records the Image entity.
// Nothing is recorded when the write fails; the file is removed when recording fails.
func (s *studioServiceImpl) SaveImage(ctx context.Context, moodBoardID uuid.UUID, data []byte) (*domain.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, allowed, err := s.authorizeMoodBoard(ctx, moodBoardID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logDenied("save_image", moodBoardID)
		return nil, nil
	}

	image, err := s.saveImageLocked(ctx, board.ID, data)
	if err != nil {
		return nil, err
	}

	s.refreshLocked(ctx)
	return image, nil
}

// SaveImages saves each image in order. A failed image does not stop the rest.
// Results are nil when the acting user may not modify the board.
func (s *studioServiceImpl) SaveImages(ctx context.Context, moodBoardID uuid.UUID, images [][]byte) ([]dto.ImageResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, allowed, err := s.authorizeMoodBoard(ctx, moodBoardID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logDenied("save_images", moodBoardID)
		return nil, nil
	}

	results := make([]dto.ImageResult, 0, len(images))
	saved := 0
	for _, data := range images {
		image, err := s.saveImageLocked(ctx, board.ID, data)
		if err != nil {
			results = append(results, dto.ImageResult{Error: err.Error()})
			continue
		}
		saved++
		results = append(results, dto.ImageResult{Image: image})
	}

	s.logger.Info("Images saved", zap.String("mood_board_id", moodBoardID.String()),
		zap.Int("requested", len(images)), zap.Int("saved", saved))

	if saved > 0 {
		s.refreshLocked(ctx)
	}
	return results, nil
}

func (s *studioServiceImpl) saveImageLocked(ctx context.Context, moodBoardID uuid.UUID, data []byte) (*domain.Image, error) {
	if len(data) == 0 {
		return nil, response.NewValidationError("Image is empty", "image")
	}

	id := uuid.New()
	path, err := s.imageStore.Save(ctx, id, data)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementImageSaveFailed()
		}
		s.logger.Error("Failed to write image", zap.String("image_id", id.String()), zap.Error(err))
		return nil, response.NewImageIOError("Failed to save image", err)
	}

	image := &domain.Image{
		ID:          id,
		MoodBoardID: moodBoardID,
		ImagePath:   path,
		UploadedAt:  s.now(),
	}
	if err := s.repos.Images.Create(ctx, image); err != nil {
		if delErr := s.imageStore.Delete(ctx, path); delErr != nil {
			s.logger.Warn("Failed to remove image file after record failure", zap.String("path", path), zap.Error(delErr))
		}
		if s.metrics != nil {
			s.metrics.IncrementImageSaveFailed()
		}
		s.logger.Error("Failed to record image", zap.String("image_id", id.String()), zap.Error(err))
		return nil, response.NewStorageError("Failed to save image", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementImageSaved()
	}
	return image, nil
}

// DeleteImage removes the file (best-effort) and then the Image entity
func (s *studioServiceImpl) DeleteImage(ctx context.Context, imageID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	image, err := s.repos.Images.FindByID(ctx, imageID)
	if err != nil {
		return false, s.storageFailure(err, "Image not found", "image_id", imageID)
	}

	_, allowed, err := s.authorizeMoodBoard(ctx, image.MoodBoardID)
	if err != nil {
		return false, err
	}
	if !allowed {
		s.logDenied("delete_image", imageID)
		return false, nil
	}

	s.removeImageFiles(ctx, []*domain.Image{image})

	if err := s.repos.Images.Delete(ctx, imageID); err != nil {
		return false, s.storageFailure(err, "Failed to delete image", "image_id", imageID)
	}

	s.refreshLocked(ctx)
	return true, nil
}

// LoadImage returns the bytes of an image
func (s *studioServiceImpl) LoadImage(ctx context.Context, imageID uuid.UUID) ([]byte, error) {
	image, err := s.repos.Images.FindByID(ctx, imageID)
	if err != nil {
		return nil, s.storageFailure(err, "Image not found", "image_id", imageID)
	}

	data, err := s.imageStore.Load(ctx, image.ImagePath)
	if err != nil {
		if errors.Is(err, storage.ErrImageNotFound) {
			return nil, response.NewNotFoundError("Image file not found", image.ImagePath)
		}
		s.logger.Error("Failed to read image", zap.String("image_id", imageID.String()), zap.Error(err))
		return nil, response.NewImageIOError("Failed to load image", err)
	}
	return data, nil
}

// authorizeMoodBoard loads a board and its parent design and applies the policy.
// A board whose design no longer exists is judged without a designer.
func (s *studioServiceImpl) authorizeMoodBoard(ctx context.Context, moodBoardID uuid.UUID) (*domain.MoodBoard, bool, error) {
	board, err := s.repos.MoodBoards.FindByID(ctx, moodBoardID)
	if err != nil {
		return nil, false, s.storageFailure(err, "Mood board not found", "mood_board_id", moodBoardID)
	}

	var parent *domain.Design
	if board.DesignID != nil {
		parent, err = s.repos.Designs.FindByID(ctx, *board.DesignID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, s.storageFailure(err, "Failed to load design", "design_id", *board.DesignID)
		}
	}

	return board, auth.CanModify(s.CurrentUser(), auth.MoodBoardResource(board, parent)), nil
}

func (s *studioServiceImpl) removeImageFiles(ctx context.Context, images []*domain.Image) {
	for _, image := range images {
		if err := s.imageStore.Delete(ctx, image.ImagePath); err != nil {
			s.logger.Warn("Failed to delete image file",
				zap.String("image_id", image.ID.String()),
				zap.String("path", image.ImagePath),
				zap.Error(err),
			)
		}
	}
}

// storageFailure logs unexpected store errors and maps err to an AppError
func (s *studioServiceImpl) storageFailure(err error, message, key string, id uuid.UUID) error {
	appErr := response.FromStorage(err, message)
	if appErr.Code != response.ErrCodeNotFound {
		s.logger.Error(message, zap.String(key, id.String()), zap.Error(err))
	}
	return appErr
}

func (s *studioServiceImpl) logDenied(operation string, id uuid.UUID) {
	fields := []zap.Field{zap.String("operation", operation), zap.String("target_id", id.String())}
	if actor := s.CurrentUser(); actor != nil {
		fields = append(fields, zap.String("user_id", actor.ID.String()), zap.String("role", string(actor.Role)))
	}
	s.logger.Debug("Modification denied", fields...)
}

// Refresh re-reads clients, designs and mood boards and publishes a new snapshot
func (s *studioServiceImpl) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(ctx)
}

// refreshLocked republishes after a mutation that already succeeded.
// A failed re-read keeps the previous snapshot.
func (s *studioServiceImpl) refreshLocked(ctx context.Context) {
	if err := s.reload(ctx); err != nil {
		s.logger.Error("Failed to refresh snapshot", zap.Error(err))
	}
}

func (s *studioServiceImpl) reload(ctx context.Context) error {
	clients, err := s.repos.Clients.FindAll(ctx, repository.Sort{})
	if err != nil {
		return response.NewStorageError("Failed to load clients", err)
	}
	designs, err := s.repos.Designs.FindAll(ctx, repository.Sort{})
	if err != nil {
		return response.NewStorageError("Failed to load designs", err)
	}
	boards, err := s.repos.MoodBoards.FindAllWithImages(ctx, repository.Sort{})
	if err != nil {
		return response.NewStorageError("Failed to load mood boards", err)
	}

	s.state.Lock()
	snap := Snapshot{
		Version:     s.snapshot.Version + 1,
		PublishedAt: s.now(),
		Clients:     clients,
		Designs:     designs,
		MoodBoards:  boards,
	}
	if s.current != nil {
		copied := *s.current
		snap.CurrentUser = &copied
	}
	s.snapshot = snap
	s.state.Unlock()

	s.broker.publish(snap)
	return nil
}

// Snapshot returns the most recently published snapshot
func (s *studioServiceImpl) Snapshot() Snapshot {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.snapshot
}

// Subscribe returns a channel primed with the current snapshot and a cancel func.
// Slow subscribers only ever see the newest snapshot.
func (s *studioServiceImpl) Subscribe() (<-chan Snapshot, func()) {
	ch, cancel := s.broker.subscribe(s.Snapshot())
	s.reportSubscribers()
	return ch, func() {
		cancel()
		s.reportSubscribers()
	}
}

func (s *studioServiceImpl) reportSubscribers() {
	if s.metrics != nil {
		s.metrics.SetSnapshotSubscribers(s.broker.count())
	}
}

// Close ends every snapshot subscription
func (s *studioServiceImpl) Close() {
	s.broker.close()
	s.reportSubscribers()
}
