package repository

import (
	"context"

	"gorm.io/gorm"

	"floral-studio/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Store[domain.User]
	FindByIdentity(ctx context.Context, username, email string, role domain.UserRole) (*domain.User, error)
}

type userRepositoryImpl struct {
	*gormStore[domain.User]
}

// NewUserRepository creates a new instance of UserRepository.
// Users are listed by username ascending unless asked otherwise.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{
		gormStore: newGormStore[domain.User](db, map[string]string{
			"username":  "username",
			"email":     "email",
			"createdAt": "created_at",
		}, Sort{Field: "username", Ascending: true}),
	}
}

// FindByIdentity finds the user registered under (username, email, role)
func (r *userRepositoryImpl) FindByIdentity(ctx context.Context, username, email string, role domain.UserRole) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND email = ? AND role = ?", username, email, role).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
