package store

import (
	"context"
	"fmt"
	"strings"

	perrors "github.com/matzehuels/pegplanner/pkg/errors"
)

// Store is a string-keyed blob store.
type Store interface {
	// Get returns the value stored under key. A missing key is a miss, not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Backends lists every backend name in the order they are documented.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendSQLite}

// Config selects and configures a backend.
type Config struct {
	Backend string

	// Dir is the FileStore directory.
	Dir string
	// RedisAddr is host:port of the redis server.
	RedisAddr string
	// MongoURI and MongoDatabase locate the MongoDB collection.
	MongoURI      string
	MongoDatabase string
	// SQLitePath is the SQLite database file.
	SQLitePath string
}

// Open builds the backend named by cfg.Backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case BackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	}
	return nil, perrors.New(perrors.ErrCodeInvalidConfig,
		"unknown store backend %q (want one of %s)", cfg.Backend, strings.Join(Backends, ", "))
}

func checkKey(key string) error {
	if err := perrors.ValidateStoreKey(key); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// storeErr tags a backend failure with the STORE_ERROR code.
func storeErr(err error, op, key string) error {
	if err == nil {
		return nil
	}
	return perrors.Wrap(perrors.ErrCodeStore, err, "%s %q", op, key)
}
