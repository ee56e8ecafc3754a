package cache

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIsStableAndDistinct(t *testing.T) {
	a := Hash([]byte("let x = 1;"))
	b := Hash([]byte("let x = 1;"))
	c := Hash([]byte("let x = 2;"))
	if a != b {
		t.Fatal("expected identical sources to hash identically")
	}
	if a == c {
		t.Fatal("expected different sources to hash differently")
	}
}

func TestStorePutAndGetSource(t *testing.T) {
	s := openTestStore(t)
	key := Hash([]byte("let x = 1;"))
	if err := s.PutSource(key, []byte("int x = 1;")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.GetSource(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "int x = 1;" {
		t.Fatalf("expected %q, got %q", "int x = 1;", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetSource("nonexistent"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestStoreBinaryBucketIsSeparateFromSource(t *testing.T) {
	s := openTestStore(t)
	key := Hash([]byte("let x = 1;"))
	if err := s.PutSource(key, []byte("source")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.GetBinary(key); err == nil {
		t.Fatal("expected binary bucket to be unaffected by source puts")
	}
	if err := s.PutBinary(key, []byte("/tmp/a.out")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.GetBinary(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "/tmp/a.out" {
		t.Fatalf("expected %q, got %q", "/tmp/a.out", got)
	}
}
