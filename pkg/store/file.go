package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps each key in its own JSON file under a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, storeErr(os.ErrInvalid, "open file store", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storeErr(err, "open file store", dir)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the store's root directory.
func (s *FileStore) Dir() string { return s.dir }

// fileEntry wraps stored data with metadata.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get reads the value under key. An unreadable entry is treated as a miss
// and removed.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	path := s.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeErr(err, "read", key)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set writes data under key. The file is replaced atomically.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	entryData, err := json.Marshal(fileEntry{Key: key, Data: data, UpdatedAt: s.now().UTC()})
	if err != nil {
		return storeErr(err, "encode", key)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return storeErr(err, "write", key)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return storeErr(err, "write", key)
	}
	if _, err := tmp.Write(entryData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return storeErr(err, "write", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return storeErr(err, "write", key)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return storeErr(err, "write", key)
	}
	return nil
}

// Delete removes the file for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return storeErr(err, "delete", key)
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a key to a file path, using the first two hash characters
// as a subdirectory.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
