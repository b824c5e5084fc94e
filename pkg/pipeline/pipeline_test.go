package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/cafeplan/pkg/cache"
	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/observability"
	"github.com/matzehuels/cafeplan/pkg/params"
)

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Params: params.Default()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Title != sink.DefaultTitle {
		t.Errorf("Title = %q, want %q", opts.Title, sink.DefaultTitle)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error: %v", err)
	}

	dedup := Options{Params: params.Default(), Formats: []string{"svg", "SVG", "excel"}}
	if err := dedup.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(dedup.Formats, ","); got != "svg,xlsx" {
		t.Errorf("Formats = %s, want svg,xlsx", got)
	}

	untitled := Options{Params: params.Default(), NoTitle: true}
	if err := untitled.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if untitled.Title != "" {
		t.Errorf("Title = %q with NoTitle", untitled.Title)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		code   errors.Code
	}{
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }, errors.ErrCodeInvalidFormat},
		{"negative row", func(o *Options) { o.ReverseRows = []int{-1} }, errors.ErrCodeValidation},
		{"too many workers", func(o *Options) { o.ParallelRows = MaxParallelRows + 1 }, errors.ErrCodeValidation},
		{"bad room", func(o *Options) { o.Params.Room.Size = "big" }, errors.ErrCodeMalformedSize},
		{"negative scale", func(o *Options) { o.Scale = -1 }, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Params: params.Default()}
			tt.mutate(&opts)
			if err := opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	opts := Options{Params: params.Default(), Formats: []string{"svg", "json", "txt"}}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", res.CacheInfo)
	}
	if res.Stats.Slots != 10 || res.Stats.Rows != 2 {
		t.Errorf("Stats = %+v, want 10 slots in 2 rows", res.Stats)
	}
	if len(res.ParamsHash) != 64 {
		t.Errorf("ParamsHash = %q", res.ParamsHash)
	}
	for _, f := range []string{"svg", "json", "txt"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(res.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact is not SVG")
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", again.CacheInfo)
	}
	if len(again.Layout.Slots) != len(res.Layout.Slots) {
		t.Errorf("cached layout has %d slots, want %d", len(again.Layout.Slots), len(res.Layout.Slots))
	}
	for i := range res.Layout.Slots {
		if again.Layout.Slots[i] != res.Layout.Slots[i] {
			t.Errorf("cached slot %d = %+v, want %+v", i, again.Layout.Slots[i], res.Layout.Slots[i])
		}
	}
	if string(again.Artifacts["json"]) != string(res.Artifacts["json"]) {
		t.Error("cached json artifact differs")
	}
}

func TestExecuteRefresh(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	opts := Options{Params: params.Default()}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("Refresh run CacheInfo = %+v, want misses", res.CacheInfo)
	}
}

func TestExecuteNullCache(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Params: params.Default(), Formats: []string{"json"}}
	for i := 0; i < 2; i++ {
		res, err := r.Execute(context.Background(), opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.LayoutHit {
			t.Errorf("run %d: NullCache produced a hit", i)
		}
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	p := params.Default()
	p.Room.Size = "100x50"
	if _, err := r.Execute(context.Background(), Options{Params: p}); !errors.Is(err, errors.ErrCodePacking) {
		t.Errorf("tiny room error = %v, want PACKING_ERROR", err)
	}

	if _, err := r.Execute(context.Background(), Options{Params: params.Default(), ReverseRows: []int{7}}); !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("row out of range error = %v, want VALIDATION_ERROR", err)
	}
}

func TestReverseRowsChangesLayout(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	plain, err := r.ComputeLayout(ctx, Options{Params: params.Default()})
	if err != nil {
		t.Fatal(err)
	}
	turned, hit, err := r.ComputeLayoutWithCacheInfo(ctx, Options{Params: params.Default(), ReverseRows: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("reversed layout was served from the plain layout's cache entry")
	}
	if turned.Slots[0].Orientation == plain.Slots[0].Orientation {
		t.Errorf("row 0 orientation = %v, want it turned", turned.Slots[0].Orientation)
	}
}

func TestParallelRowsSharesCache(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	if _, err := r.ComputeLayout(ctx, Options{Params: params.Default()}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.ComputeLayoutWithCacheInfo(ctx, Options{Params: params.Default(), ParallelRows: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("parallel packing should reuse the sequential cache entry")
	}
}

func TestCorruptCachedLayout(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	hash, err := params.Default().Hash()
	if err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.LayoutKey(hash, cache.LayoutKeyOpts{})
	if err := r.Cache.Set(ctx, key, []byte("garbage"), time.Hour); err != nil {
		t.Fatal(err)
	}

	res, hit, err := r.ComputeLayoutWithCacheInfo(ctx, Options{Params: params.Default()})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	if hit || len(res.Slots) != 10 {
		t.Errorf("hit = %v, slots = %d; want recomputed 10 slots", hit, len(res.Slots))
	}
}

func TestRenderPartialCache(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	layout, err := r.ComputeLayout(ctx, Options{Params: params.Default()})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Render(ctx, layout, Options{Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, layout, Options{Formats: []string{"svg", "msgpack"}})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("RenderHit = true with one uncached format")
	}
	if len(artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(artifacts))
	}

	_, hit, err = r.RenderWithCacheInfo(ctx, layout, Options{Formats: []string{"svg"}, NoLabels: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different style options should miss")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu                 sync.Mutex
	layouts, renders   int
	hits, misses, sets int
	lastSlots          int
}

func (h *countingHooks) OnLayoutComplete(_ context.Context, _ string, slots int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
	h.lastSlots = slots
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestHooks(t *testing.T) {
	defer observability.Reset()
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)

	ctx := context.Background()
	r := newFileRunner(t)
	opts := Options{Params: params.Default(), Formats: []string{"svg", "json"}}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}

	if h.layouts != 1 || h.renders != 1 {
		t.Errorf("layouts = %d, renders = %d; want 1 each", h.layouts, h.renders)
	}
	if h.lastSlots != 10 {
		t.Errorf("OnLayoutComplete slots = %d, want 10", h.lastSlots)
	}
	// First run: 1 layout + 2 artifact misses, 3 sets. Second run: 3 hits.
	if h.misses != 3 || h.sets != 3 || h.hits != 3 {
		t.Errorf("misses = %d, sets = %d, hits = %d; want 3 each", h.misses, h.sets, h.hits)
	}
}
