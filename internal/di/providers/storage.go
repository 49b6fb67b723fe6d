package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	"github.com/comitanigiacomo/dailypulse/internal/adapters/cache"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/docstore"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/media"
	"github.com/comitanigiacomo/dailypulse/internal/config"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// DatabaseHandle holds the postgres pool. DB is nil when no database is
// configured.
type DatabaseHandle struct {
	DB *sqlx.DB
}

// Shutdown implements do.Shutdownable.
func (h *DatabaseHandle) Shutdown() error {
	if h.DB == nil {
		return nil
	}
	return h.DB.Close()
}

func ProvideDatabase(i do.Injector) (*DatabaseHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*log.Logger](i)

	if !cfg.DB.Enabled() {
		logger.Warn("no database configured, documents are kept in memory")
		return &DatabaseHandle{}, nil
	}

	logger.Info("connecting to database", "host", cfg.DB.Host, "name", cfg.DB.Name)

	db, err := sqlx.Connect("pgx", cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("database connected")
	return &DatabaseHandle{DB: db}, nil
}

// RedisHandle holds the redis client. Client is nil when redis is not
// configured or could not be reached at start-up.
type RedisHandle struct {
	Client *redis.Client
}

// Shutdown implements do.Shutdownable.
func (h *RedisHandle) Shutdown() error {
	if h.Client == nil {
		return nil
	}
	return h.Client.Close()
}

func ProvideRedis(i do.Injector) (*RedisHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*log.Logger](i)

	if !cfg.RedisEnabled {
		logger.Info("redis not configured, caching disabled")
		return &RedisHandle{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unreachable, continuing without cache", "addr", cfg.Redis.Addr(), "err", err)
		return &RedisHandle{}, nil
	}

	logger.Info("redis connected", "addr", cfg.Redis.Addr())
	return &RedisHandle{Client: client}, nil
}

// ProvideDocumentStore picks postgres when a database is configured and the
// in-memory store otherwise, with the redis listing cache in front of either.
func ProvideDocumentStore(i do.Injector) (domain.DocumentStore, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*log.Logger](i)
	db := do.MustInvoke[*DatabaseHandle](i)
	rdb := do.MustInvoke[*RedisHandle](i)

	var store domain.DocumentStore
	if db.DB != nil {
		pg := docstore.NewPostgresStore(db.DB)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		store = pg
	} else {
		store = docstore.NewInMemoryStore()
	}

	if rdb.Client != nil {
		store = docstore.NewCachedStore(store, rdb.Client, cfg.DocCacheTTL, logger)
	}

	return store, nil
}

func ProvideImageUploader(i do.Injector) (domain.ImageUploader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*log.Logger](i)

	if !cfg.S3.Enabled() {
		logger.Warn("S3 not configured, image uploads are disabled")
		return media.DisabledUploader{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploader, err := media.NewS3Uploader(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}

	logger.Info("image uploads enabled", "bucket", cfg.S3.Bucket)
	return uploader, nil
}
