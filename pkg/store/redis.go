package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values as plain redis strings.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the redis server at addr and checks it answers.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: addr}))
	err := RetryWithBackoff(ctx, func() error {
		return classifyRedis(s.client.Ping(ctx).Err())
	})
	if err != nil {
		_ = s.client.Close()
		return nil, storeErr(err, "connect redis", addr)
	}
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client. Close closes the client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the value under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	var data []byte
	var hit bool
	err := RetryWithBackoff(ctx, func() error {
		b, err := s.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return classifyRedis(err)
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, storeErr(err, "get", key)
	}
	return data, hit, nil
}

// Set stores data under key with no expiry.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := RetryWithBackoff(ctx, func() error {
		return classifyRedis(s.client.Set(ctx, key, data, 0).Err())
	})
	return storeErr(err, "set", key)
}

// Delete removes key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := RetryWithBackoff(ctx, func() error {
		return classifyRedis(s.client.Del(ctx, key).Err())
	})
	return storeErr(err, "delete", key)
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// classifyRedis marks connection-level failures as retryable.
func classifyRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.ErrClosed) {
		return ErrClosed
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
