package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"pokelearn/internal/config"
	"pokelearn/internal/database"
)

const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
	EngineRedis    = "redis"
	EngineMemory   = "memory"
)

// redisKeyPrefix namespaces the partition hashes
const redisKeyPrefix = "pokelearn:"

// NewByEngine opens the store selected by cfg.DatabaseType
func NewByEngine(ctx context.Context, cfg *config.Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.DatabaseType)) {
	case "", EngineSQLite, "sqlite3", EnginePostgres, "postgresql", EngineMySQL:
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		if _, err := db.RunMigrations(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewSQLStore(db), nil
	case EngineRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return NewRedisStore(client, redisKeyPrefix), nil
	case EngineMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.New("unsupported store engine: " + cfg.DatabaseType)
	}
}

// OpenFunc opens a store
type OpenFunc func(ctx context.Context) (Store, error)

// Connector opens the storage handle exactly once and hands the same handle
// (or the same open error) to every caller until Close.
type Connector struct {
	open  OpenFunc
	once  sync.Once
	store Store
	err   error

	mu     sync.Mutex
	closed bool
}

// NewConnector creates a connector around open
func NewConnector(open OpenFunc) *Connector {
	return &Connector{open: open}
}

// Store returns the shared handle, opening it on first use
func (c *Connector) Store(ctx context.Context) (Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("%w: connector closed", ErrStorage)
	}
	c.once.Do(func() {
		c.store, c.err = c.open(ctx)
	})
	return c.store, c.err
}

// Close releases the handle if one was opened. Calling it twice is safe.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
