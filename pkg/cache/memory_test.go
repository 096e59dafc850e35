package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}

	if err := mc.Set(ctx, "k", payload{Symbol: "BTCUSDT", Price: 93000}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "BTCUSDT" || got.Price != 93000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var dest string
	if err := mc.Get(context.Background(), "absent", &dest); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var dest string
	if err := mc.Get(ctx, "k", &dest); err != ErrCacheMiss {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}

func TestMemoryCacheDeleteAndExists(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "a", 1, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := mc.Exists(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("exists after set: %v %v", ok, err)
	}
	if err := mc.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, err = mc.Exists(ctx, "a")
	if err != nil || ok {
		t.Fatalf("exists after delete: %v %v", ok, err)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(3))
	defer mc.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := mc.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute); err != nil {
			t.Fatalf("set: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	// touch k0 so k1 becomes least recently used
	var v int
	if err := mc.Get(ctx, "k0", &v); err != nil {
		t.Fatalf("get k0: %v", err)
	}
	time.Sleep(time.Millisecond)

	if err := mc.Set(ctx, "k3", 3, time.Minute); err != nil {
		t.Fatalf("set k3: %v", err)
	}

	if err := mc.Get(ctx, "k1", &v); err != ErrCacheMiss {
		t.Fatalf("expected k1 evicted, got %v", err)
	}
	if err := mc.Get(ctx, "k0", &v); err != nil {
		t.Fatalf("k0 should survive: %v", err)
	}
}

func TestMemoryCacheTryLock(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	ok, err := mc.TryLock(ctx, "job", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first lock: %v %v", ok, err)
	}
	ok, err = mc.TryLock(ctx, "job", time.Minute)
	if err != nil || ok {
		t.Fatalf("second lock should fail: %v %v", ok, err)
	}
	if err := mc.Unlock(ctx, "job"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	ok, err = mc.TryLock(ctx, "job", time.Minute)
	if err != nil || !ok {
		t.Fatalf("relock after unlock: %v %v", ok, err)
	}
}

func TestKeyFormatting(t *testing.T) {
	got := Key("candles", "BTCUSDT", 730)
	want := "candles:BTCUSDT:730"
	if got != want {
		t.Fatalf("Key() = %q, want %q", got, want)
	}
}
