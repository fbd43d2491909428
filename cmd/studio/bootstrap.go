package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"floral-studio/internal/config"
	"floral-studio/internal/database"
	"floral-studio/internal/metrics"
	"floral-studio/internal/repository"
	"floral-studio/internal/storage"
)

// infrastructure holds the stores every command opens
type infrastructure struct {
	db         *gorm.DB
	redis      *redis.Client
	imageStore storage.ImageStore
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	if err := database.SafeAutoMigrate(db, logger); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return db, nil
}

// openInfrastructure opens the entity store, the optional redis client and the image store.
// Any failure here is fatal to the caller.
func openInfrastructure(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*infrastructure, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if m != nil {
		if err := database.RegisterMetricsCallbacks(db, m); err != nil {
			logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
		}
	}

	infra := &infrastructure{db: db}

	if cfg.Preferences.Backend == config.PreferencesRedis {
		infra.redis, err = database.NewRedis(database.RedisConfig{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			infra.close()
			return nil, err
		}
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		infra.close()
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}
	if m != nil {
		store = storage.NewInstrumentedStore(store, m)
	}
	infra.imageStore = store
	logger.Info("Image storage initialized", zap.String("type", cfg.Storage.Type))

	return infra, nil
}

func (i *infrastructure) preferenceStore() repository.PreferenceStore {
	if i.redis != nil {
		return repository.NewRedisPreferenceStore(i.redis)
	}
	return repository.NewPreferenceRepository(i.db)
}

func (i *infrastructure) close() {
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if i.db != nil {
		if err := database.Close(i.db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}
}
