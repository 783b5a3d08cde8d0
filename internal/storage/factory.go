package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"sidekick/internal/config"
	"sidekick/internal/sidekick"
)

// SQLiteFileName is the database file created inside sqlite_dir.
const SQLiteFileName = "sidekick.db"

// NewStorageFromConfig creates a Storage implementation based on the storage
// config type. When cache_ttl is set the backend is wrapped in a
// CachedStorage. Backends holding connections implement io.Closer.
func NewStorageFromConfig(ctx context.Context, cfg config.StorageConfig) (sidekick.Storage, error) {
	ttl, err := cfg.CacheDuration()
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if ttl > 0 {
		return NewCachedStorage(backend, ttl), nil
	}
	return backend, nil
}

func newBackend(ctx context.Context, cfg config.StorageConfig) (sidekick.Storage, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStorage(cfg.MaxSize), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires fs_root to be set")
		}
		return nonNil(NewFileSystemStorage(cfg.FSRoot))
	case "sqlite":
		if cfg.SQLiteDir == "" {
			return nil, fmt.Errorf("sqlite storage requires sqlite_dir to be set")
		}
		return nonNil(NewSQLiteStorage(filepath.Join(cfg.SQLiteDir, SQLiteFileName)))
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires postgres_dsn to be set")
		}
		return nonNil(NewPostgresStorage(ctx, cfg.PostgresDSN))
	case "s3":
		return nonNil(NewS3Storage(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}))
	case "redis":
		return nonNil(NewRedisStorage(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		}))
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// nonNil keeps a failed constructor's typed nil pointer out of the
// returned interface.
func nonNil[S sidekick.Storage](s S, err error) (sidekick.Storage, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
