package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// setupTestCache creates a miniredis-backed ReferenceCache
func setupTestCache(t *testing.T) (*ReferenceCache, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewReferenceCache(client)

	return cache, mr, func() {
		client.Close()
		mr.Close()
	}
}

func testDictionary(t *testing.T) *domain.ReferenceDictionary {
	t.Helper()
	dict := domain.NewReferenceDictionary()
	entries := []*domain.SectionEntry{
		{Act: domain.ActIPC, Section: "302", Title: "Punishment for murder", Aliases: []string{"302", "302 IPC"}},
		{Act: domain.ActBNS, Section: "103", Title: "Punishment for murder", Aliases: []string{"103", "103 BNS"}},
	}
	for _, entry := range entries {
		if err := dict.Add(entry); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return dict
}

func TestReferenceCacheSaveAndLoad(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	if err := cache.Save(ctx, testDictionary(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("expected 2 sections, got %d", loaded.Len())
	}
	entry, ok := loaded.Lookup(domain.SectionKey{Act: domain.ActIPC, Section: "302"})
	if !ok {
		t.Fatal("expected IPC 302 in loaded dictionary")
	}
	if entry.Title != "Punishment for murder" {
		t.Errorf("unexpected title %q", entry.Title)
	}
	if key, ok := loaded.Resolve("302 IPC"); !ok || key.Act != domain.ActIPC {
		t.Error("aliases must survive the cache round trip")
	}
}

func TestReferenceCacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	if _, err := cache.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty cache, got %v", err)
	}
}

func TestReferenceCacheOverwrite(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	if err := cache.Save(ctx, testDictionary(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	smaller := domain.NewReferenceDictionary()
	if err := smaller.Add(&domain.SectionEntry{Act: domain.ActIPC, Section: "379"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := cache.Save(ctx, smaller); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 1 {
		t.Errorf("expected replacement, got %d sections", loaded.Len())
	}
}

func TestReferenceCacheExpiry(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	cache.WithTTL(time.Minute)
	if err := cache.Save(ctx, testDictionary(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Load(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestReferenceCacheInvalidate(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	if err := cache.Save(ctx, testDictionary(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, err := cache.Load(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after invalidate, got %v", err)
	}
}
