package repository

import (
	"gorm.io/gorm"

	"floral-studio/internal/domain"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Store[domain.Client]
}

type clientRepositoryImpl struct {
	*gormStore[domain.Client]
}

// NewClientRepository creates a new instance of ClientRepository.
// Clients are listed by name ascending unless asked otherwise.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepositoryImpl{
		gormStore: newGormStore[domain.Client](db, map[string]string{
			"name":      "name",
			"createdAt": "created_at",
		}, Sort{Field: "name", Ascending: true}),
	}
}
