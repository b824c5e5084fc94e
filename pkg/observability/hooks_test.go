package observability

import (
	"context"
	"testing"
	"time"
)

type countingCacheHooks struct {
	hits, misses, sets int
}

func (c *countingCacheHooks) OnCacheHit(context.Context, string)      { c.hits++ }
func (c *countingCacheHooks) OnCacheMiss(context.Context, string)     { c.misses++ }
func (c *countingCacheHooks) OnCacheSet(context.Context, string, int) { c.sets++ }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// None of these may panic.
	Pipeline().OnLayoutStart(ctx, "hash")
	Pipeline().OnLayoutComplete(ctx, "hash", 10, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Store().OnDesignSaved(ctx, "memory", "id", 1)
	Store().OnDesignsExpired(ctx, "memory", 0)
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()
	h := &countingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "artifact", 42)

	if h.hits != 1 || h.misses != 1 || h.sets != 1 {
		t.Errorf("hooks = %+v, want one of each", *h)
	}

	SetCacheHooks(nil)
	if Cache() != CacheHooks(h) {
		t.Error("SetCacheHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Reset() left %T registered", Cache())
	}
}
