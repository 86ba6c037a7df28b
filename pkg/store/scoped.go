package store

import "context"

// ScopedStore prefixes every key of an inner store, giving each named board
// its own namespace in a shared backend.
//
//	kitchen := store.Scoped(s, "board:kitchen:")
//	garage := store.Scoped(s, "board:garage:")
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped wraps inner so that every key is prefixed. An empty prefix returns
// inner unchanged.
func Scoped(inner Store, prefix string) Store {
	if prefix == "" {
		return inner
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Prefix returns the key prefix.
func (s *ScopedStore) Prefix() string { return s.prefix }

// Get reads prefix+key.
func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set writes prefix+key.
func (s *ScopedStore) Set(ctx context.Context, key string, data []byte) error {
	return s.inner.Set(ctx, s.prefix+key, data)
}

// Delete removes prefix+key.
func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner store.
func (s *ScopedStore) Close() error { return s.inner.Close() }

var _ Store = (*ScopedStore)(nil)
