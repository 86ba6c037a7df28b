package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	perrors "github.com/matzehuels/pegplanner/pkg/errors"
)

func init() {
	retryDelay = time.Millisecond
}

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	data, hit, err := s.Get(ctx, "pegboard_layout_v5")
	if err != nil {
		t.Fatalf("Get on empty store: %v", err)
	}
	if hit || data != nil {
		t.Fatalf("Get on empty store = %q, %v; want miss", data, hit)
	}

	want := []byte(`{"boardSizeId":"24x24","items":[]}`)
	if err := s.Set(ctx, "pegboard_layout_v5", want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err = s.Get(ctx, "pegboard_layout_v5")
	if err != nil || !hit || !bytes.Equal(data, want) {
		t.Fatalf("Get after Set = %q, %v, %v", data, hit, err)
	}

	replaced := []byte(`{"boardSizeId":"48x48","items":[]}`)
	if err := s.Set(ctx, "pegboard_layout_v5", replaced); err != nil {
		t.Fatalf("Set (replace): %v", err)
	}
	data, _, _ = s.Get(ctx, "pegboard_layout_v5")
	if !bytes.Equal(data, replaced) {
		t.Errorf("Get after replace = %q", data)
	}

	if err := s.Delete(ctx, "pegboard_layout_v5"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "pegboard_layout_v5"); hit {
		t.Error("Get after Delete hit")
	}
	if err := s.Delete(ctx, "pegboard_layout_v5"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}

	for _, bad := range []string{"", "../escape", "a/b", "with space"} {
		if err := s.Set(ctx, bad, want); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
			t.Errorf("Set(%q) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	in := []byte("abc")
	s.Set(ctx, "k", in)
	in[0] = 'x'
	out, _, _ := s.Get(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("stored value aliased caller slice: %q", out)
	}
	out[1] = 'y'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased stored slice: %q", again)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	s.Close()
	if err := s.Set(context.Background(), "k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	path := s.path("k")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := s.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get of corrupt entry = hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestFileStoreShardsByHash(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	s.Set(context.Background(), "k", []byte("v"))
	h := Hash([]byte("k"))
	if _, err := os.Stat(filepath.Join(dir, h[:2], h[2:]+".json")); err != nil {
		t.Errorf("entry not at sharded path: %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "layouts.db")
	s, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	exerciseStore(t, s)

	// Values survive reopening the file.
	if err := s.Set(ctx, "k", []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	s.Close()
	s, err = NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	data, hit, err := s.Get(ctx, "k")
	if err != nil || !hit || string(data) != "persisted" {
		t.Errorf("Get after reopen = %q, %v, %v", data, hit, err)
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	if _, err := NewSQLiteStore(context.Background(), " "); !perrors.Is(err, perrors.ErrCodeStore) {
		t.Errorf("error = %v, want STORE_ERROR", err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestRedisStorePlainStrings(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer s.Close()
	if err := s.Set(context.Background(), "pegboard_layout_v5", []byte(`{"items":[]}`)); err != nil {
		t.Fatal(err)
	}
	got, err := mr.Get("pegboard_layout_v5")
	if err != nil || got != `{"items":[]}` {
		t.Errorf("redis value = %q, %v", got, err)
	}
	if ttl := mr.TTL("pegboard_layout_v5"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}
}

func TestRedisStoreServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	defer s.Close()
	mr.Close()

	_, _, err := s.Get(context.Background(), "k")
	if !perrors.Is(err, perrors.ErrCodeStore) {
		t.Fatalf("error = %v, want STORE_ERROR", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork in chain", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("PEGPLANNER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PEGPLANNER_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, uri, "pegplanner_test")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	defer s.Drop(ctx)
	exerciseStore(t, s)
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	kitchen := Scoped(inner, "board:kitchen:")
	garage := Scoped(inner, "board:garage:")

	kitchen.Set(ctx, "layout", []byte("k"))
	garage.Set(ctx, "layout", []byte("g"))

	if got, _, _ := kitchen.Get(ctx, "layout"); string(got) != "k" {
		t.Errorf("kitchen = %q", got)
	}
	if got, _, _ := garage.Get(ctx, "layout"); string(got) != "g" {
		t.Errorf("garage = %q", got)
	}
	keys := inner.Keys()
	if len(keys) != 2 || keys[0] != "board:garage:layout" || keys[1] != "board:kitchen:layout" {
		t.Errorf("inner keys = %v", keys)
	}
	if Scoped(inner, "") != Store(inner) {
		t.Error("empty prefix should return inner store")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"default is file", Config{Dir: dir}, "*store.FileStore", false},
		{"memory", Config{Backend: "memory"}, "*store.MemoryStore", false},
		{"case insensitive", Config{Backend: "SQLite", SQLitePath: filepath.Join(dir, "x.db")}, "*store.SQLiteStore", false},
		{"unknown", Config{Backend: "etcd"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if tt.wantErr {
				if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
					t.Errorf("error = %v, want INVALID_CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()
			if got := fmt.Sprintf("%T", s); got != tt.want {
				t.Errorf("backend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrClosed) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrClosed
	})
	if err != ErrClosed || calls != 1 {
		t.Errorf("non-retryable: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then succeed: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if err != ErrNetwork || calls != 3 {
		t.Errorf("exhausted: err %v, calls %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
