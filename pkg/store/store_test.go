package store

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if _, hit, err := s.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("empty store Get = hit %v, err %v", hit, err)
	}

	want := []byte(`{"layouts":["RRRSSRRRSS"]}`)
	if err := s.Set(ctx, "key", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	if err := s.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "key"); hit {
		t.Error("expected miss after Delete")
	}
	// Deleting again is not an error.
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Set(ctx, "key", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, err := s.Get(ctx, "key"); err != nil || hit {
		t.Errorf("expired entry should miss: hit %v, err %v", hit, err)
	}
}

func TestFileStore_Clear(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := s.Get(ctx, k); hit {
			t.Errorf("key %s survived Clear", k)
		}
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "key"); hit {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestResultKey(t *testing.T) {
	base := ResultKeyOpts{
		Turns:              6,
		Straights:          4,
		TurnRadius:         0.3,
		StraightLength:     0.345,
		MaxTracksPerSplit:  10,
		MaxTimePerSplitSec: 10,
	}

	if ResultKey(base) != ResultKey(base) {
		t.Error("ResultKey should be deterministic")
	}

	changed := base
	changed.AllowIntersections = true
	if ResultKey(base) == ResultKey(changed) {
		t.Error("different options should produce different keys")
	}

	prefixed := base
	prefixed.StartSequence = "SS"
	if ResultKey(base) == ResultKey(prefixed) {
		t.Error("start sequence should affect the key")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
