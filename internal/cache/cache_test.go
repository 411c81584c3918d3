package cache

import (
	"testing"
	"time"
)

func TestKey_Stable(t *testing.T) {
	a := Key("The sky is blue.")
	b := Key("The sky is blue.")
	c := Key("The sky is green.")

	if a != b {
		t.Error("Expected identical text to produce identical keys")
	}
	if a == c {
		t.Error("Expected different text to produce different keys")
	}
	if len(a) != len("credence:v1:")+64 {
		t.Errorf("Unexpected key length: %d", len(a))
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(NoExpiration)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), NoExpiration); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected hit with 'v', got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCache_ExpiryAndSweep(t *testing.T) {
	c := NewMemoryCache(NoExpiration)

	if err := c.Set("short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Set("long", []byte("v"), NoExpiration); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	// Lazy expiry on Get.
	if _, found := c.Get("short"); found {
		t.Error("Expected expired entry to miss")
	}
	// Eager removal via explicit sweep.
	c.DeleteExpired()
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry after sweep, got %d", c.Len())
	}
	if _, found := c.Get("long"); !found {
		t.Error("Expected unexpired entry to survive the sweep")
	}
}

func TestDiskCache_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, NoExpiration)

	if err := c.Set("k", []byte("persisted"), NoExpiration); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh instance over the same directory sees the entry.
	c2 := NewDiskCache(dir, NoExpiration)
	val, found := c2.Get("k")
	if !found || string(val) != "persisted" {
		t.Errorf("Expected persisted value, got %q found=%v", val, found)
	}

	if err := c2.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c2.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), NoExpiration)

	if err := c.Set("short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if _, found := c.Get("short"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(NoExpiration, dir, NoExpiration)
	if err := first.Set("k", []byte("v"), NoExpiration); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A new layered cache starts with cold memory; the value comes from
	// disk and is promoted.
	second := NewLayeredCache(NoExpiration, dir, NoExpiration)
	val, found := second.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected disk hit, got %q found=%v", val, found)
	}
	if promoted, found := second.memory.Get("k"); !found || string(promoted) != "v" {
		t.Error("Expected disk hit to be promoted to memory")
	}
}
