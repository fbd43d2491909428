package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"floral-studio/internal/domain"
)

// ErrPreferenceNotFound is returned when a preference key has never been written
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceStore is a small key-value store holding JSON documents
type PreferenceStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type preferenceRepositoryImpl struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a PreferenceStore backed by the preferences table
func NewPreferenceRepository(db *gorm.DB) PreferenceStore {
	return &preferenceRepositoryImpl{db: db}
}

func (r *preferenceRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	var pref domain.Preference
	err := r.db.WithContext(ctx).Where("pref_key = ?", key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, err
	}
	return []byte(pref.Value), nil
}

// Set inserts or replaces the value stored under key
func (r *preferenceRepositoryImpl) Set(ctx context.Context, key string, value []byte) error {
	pref := domain.Preference{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: r.db.NowFunc(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}

func (r *preferenceRepositoryImpl) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("pref_key = ?", key).Delete(&domain.Preference{}).Error
}

const redisPreferencePrefix = "floral-studio:pref:"

type redisPreferenceStore struct {
	client *redis.Client
}

// NewRedisPreferenceStore creates a PreferenceStore backed by redis string keys
func NewRedisPreferenceStore(client *redis.Client) PreferenceStore {
	return &redisPreferenceStore{client: client}
}

func (s *redisPreferenceStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, redisPreferencePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPreferenceNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *redisPreferenceStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, redisPreferencePrefix+key, value, time.Duration(0)).Err()
}

func (s *redisPreferenceStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisPreferencePrefix+key).Err()
}
