package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"floral-studio/internal/auth"
	"floral-studio/internal/database"
	"floral-studio/internal/domain"
	"floral-studio/internal/dto"
	"floral-studio/internal/repository"
	"floral-studio/internal/storage"
)

type testEnv struct {
	db      *gorm.DB
	repos   Repositories
	images  *storage.MockImageStore
	service *studioServiceImpl
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.New(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "studio.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:      repository.NewUserRepository(db),
		Clients:    repository.NewClientRepository(db),
		Designs:    repository.NewDesignRepository(db),
		MoodBoards: repository.NewMoodBoardRepository(db),
		Images:     repository.NewImageRepository(db),
	}
}

func setupStudio(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	repos := newRepositories(db)
	images := storage.NewMockImageStore()

	svc := NewStudioService(repos, images, auth.PresenceAuthenticator{}, nil, zap.NewNop()).(*studioServiceImpl)
	t.Cleanup(svc.Close)

	return &testEnv{db: db, repos: repos, images: images, service: svc}
}

func (e *testEnv) login(t *testing.T, username string, role domain.UserRole) *domain.User {
	t.Helper()
	user, err := e.service.Login(context.Background(), &dto.LoginRequest{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		Secret:   "pw",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createDesign(t *testing.T, title string) *domain.Design {
	t.Helper()
	design, err := e.service.CreateDesign(context.Background(), &dto.CreateDesignRequest{Title: title})
	require.NoError(t, err)
	require.NotNil(t, design)
	return design
}

func (e *testEnv) createBoard(t *testing.T, title string, designID, clientID *uuid.UUID) *domain.MoodBoard {
	t.Helper()
	board, err := e.service.CreateMoodBoard(context.Background(), &dto.CreateMoodBoardRequest{
		Title:    title,
		DesignID: designID,
		ClientID: clientID,
	})
	require.NoError(t, err)
	require.NotNil(t, board)
	return board
}

// failingImageRepository makes entity creation fail while everything else hits the real store
type failingImageRepository struct {
	repository.ImageRepository
	err error
}

func (r *failingImageRepository) Create(ctx context.Context, image *domain.Image) error {
	return r.err
}
