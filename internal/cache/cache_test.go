package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c, err := New(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	if _, ok, err := c.Get("subscriptions", "missing"); err != nil || ok {
		t.Fatalf("expected miss without error, got ok=%v err=%v", ok, err)
	}

	if err := c.Set("subscriptions", "https://bell.example/subscriptions/", []byte(`[]`)); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	got, ok, err := c.Get("subscriptions", "https://bell.example/subscriptions/")
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if string(got) != "[]" {
		t.Fatalf("expected %q, got %q", "[]", got)
	}

	if _, ok, _ := c.Get("github", "https://bell.example/subscriptions/"); ok {
		t.Fatalf("buckets must not share entries")
	}
}

func TestCacheExpires(t *testing.T) {
	c, err := New(t.TempDir(), 20*time.Millisecond)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	if err := c.Set("github", "key", []byte("value")); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok, err := c.Get("github", "key"); err != nil {
		t.Fatalf("get failed: %v", err)
	} else if ok {
		t.Fatalf("expected cache miss after expiration")
	}
}

func TestCachePurge(t *testing.T) {
	root := t.TempDir()
	c, err := New(root, time.Minute)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	if err := c.Purge("never-used"); err != nil {
		t.Fatalf("purging an empty bucket should succeed: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if err := c.Set("subscriptions", key, []byte(key)); err != nil {
			t.Fatalf("failed to set cache: %v", err)
		}
	}
	if err := c.Set("github", "a", []byte("kept")); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	if err := c.Purge("subscriptions"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if _, ok, _ := c.Get("subscriptions", key); ok {
			t.Fatalf("expected miss for %q after purge", key)
		}
	}
	if got, ok, _ := c.Get("github", "a"); !ok || string(got) != "kept" {
		t.Fatalf("purge touched another bucket: ok=%v got=%q", ok, got)
	}
	if _, err := os.Stat(filepath.Join(root, "subscriptions")); !os.IsNotExist(err) {
		t.Fatalf("expected bucket directory to be removed, got %v", err)
	}
}

func TestCacheRejectsBadBucket(t *testing.T) {
	c, err := New(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	for _, bucket := range []string{"", ".", "..", "a/b"} {
		if err := c.Set(bucket, "key", nil); err == nil {
			t.Fatalf("expected error for bucket %q", bucket)
		}
	}
}

func TestNewRejectsNonPositiveTTL(t *testing.T) {
	if _, err := New(t.TempDir(), 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}
