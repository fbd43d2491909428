package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort selects the ordering of a FindAll call.
// Field is a logical key ("createdAt", "name", ...) resolved against the store's whitelist.
type Sort struct {
	Field     string
	Ascending bool
}

// Store is the keyed CRUD surface shared by every entity kind
type Store[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, sort Sort) ([]*T, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*T) error) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// gormStore is the GORM implementation of Store
type gormStore[T any] struct {
	db          *gorm.DB
	columns     map[string]string
	defaultSort Sort
}

func newGormStore[T any](db *gorm.DB, columns map[string]string, defaultSort Sort) *gormStore[T] {
	return &gormStore[T]{db: db, columns: columns, defaultSort: defaultSort}
}

// orderClause resolves a Sort into an ORDER BY expression.
// An empty field falls back to the store's default ordering.
func (s *gormStore[T]) orderClause(sort Sort) (clause.OrderByColumn, error) {
	if sort.Field == "" {
		sort = s.defaultSort
	}
	column, ok := s.columns[sort.Field]
	if !ok {
		return clause.OrderByColumn{}, fmt.Errorf("unsupported sort key: %s", sort.Field)
	}
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: !sort.Ascending}, nil
}

// Create inserts a new entity; id and timestamps are filled by the model hooks
func (s *gormStore[T]) Create(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

// FindByID finds an entity by its id, returning gorm.ErrRecordNotFound when absent
func (s *gormStore[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindAll returns every entity ordered by the requested key
func (s *gormStore[T]) FindAll(ctx context.Context, sort Sort) ([]*T, error) {
	order, err := s.orderClause(sort)
	if err != nil {
		return nil, err
	}

	var entities []*T
	if err := s.db.WithContext(ctx).Order(order).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Update loads the entity, applies mutate and saves it in one transaction.
// Associations are never written through Update.
func (s *gormStore[T]) Update(ctx context.Context, id uuid.UUID, mutate func(*T) error) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&entity).Error; err != nil {
			return err
		}
		if err := mutate(&entity); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&entity).Error
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Delete removes an entity by id. Deleting a missing id is not an error.
func (s *gormStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var entity T
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity).Error
}

// Count returns the number of stored entities
func (s *gormStore[T]) Count(ctx context.Context) (int64, error) {
	var entity T
	var count int64
	if err := s.db.WithContext(ctx).Model(&entity).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
