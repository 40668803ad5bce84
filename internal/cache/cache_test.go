package cache

import (
	"testing"
	"time"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
)

func result(lang string) *analysis.Result {
	return &analysis.Result{Language: lang}
}

func TestKey(t *testing.T) {
	if Key("a") == Key("b") {
		t.Errorf("distinct content must hash differently")
	}
	if Key("a") != Key("a") {
		t.Errorf("key must be deterministic")
	}
	if Key("a", "x") == Key("a") {
		t.Errorf("parts must change the key")
	}
	if Key("a", "x") == Key("ax") {
		t.Errorf("parts must be separated from content")
	}
	if Key("ab", "c") == Key("a", "bc") {
		t.Errorf("part boundaries must matter")
	}
}

func TestLookupStore(t *testing.T) {
	c := New(10, time.Minute)
	key := Key("1\n00:00:00,000 --> 00:00:01,000\nhello\n")

	if _, ok := c.Lookup(key); ok {
		t.Fatalf("empty cache must miss")
	}
	res := result("en")
	c.Store(key, res)
	got, ok := c.Lookup(key)
	if !ok || got != res {
		t.Fatalf("Lookup = %v, %v; want stored result", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestStoreIgnoresEmptyKeyAndNil(t *testing.T) {
	c := New(10, 0)
	c.Store("", result("en"))
	c.Store("k", nil)
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(10, time.Millisecond)
	c.Store("k", result("en"))
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Lookup("k"); ok {
		t.Fatalf("expired entry must miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry must be removed on read, Len = %d", c.Len())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New(10, 0)
	c.Store("k", result("en"))
	time.Sleep(2 * time.Millisecond)
	if _, ok := c.Lookup("k"); !ok {
		t.Fatalf("ttl 0 must disable expiry")
	}
}

func TestEvictionOldestFirst(t *testing.T) {
	c := New(2, 0)
	c.Store("k1", result("en"))
	time.Sleep(time.Millisecond)
	c.Store("k2", result("vi"))
	time.Sleep(time.Millisecond)
	c.Store("k3", result("fr"))

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Lookup("k1"); ok {
		t.Errorf("oldest entry must be evicted")
	}
	for _, k := range []string{"k2", "k3"} {
		if _, ok := c.Lookup(k); !ok {
			t.Errorf("entry %s must survive eviction", k)
		}
	}
}

func TestRestoreDoesNotEvict(t *testing.T) {
	c := New(2, 0)
	c.Store("k1", result("en"))
	time.Sleep(time.Millisecond)
	c.Store("k2", result("vi"))
	c.Store("k1", result("en"))

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	for _, k := range []string{"k1", "k2"} {
		if _, ok := c.Lookup(k); !ok {
			t.Errorf("entry %s missing after restore", k)
		}
	}
}

func TestRemoveClear(t *testing.T) {
	c := New(10, 0)
	c.Store("k1", result("en"))
	c.Store("k2", result("vi"))

	c.Remove("k1")
	if _, ok := c.Lookup("k1"); ok {
		t.Errorf("removed key must miss")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}
