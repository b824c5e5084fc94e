package design

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/observability"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rs := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")

	m := map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   file,
		BackendRedis:  rs,
	}
	t.Cleanup(func() {
		for _, s := range m {
			s.Close()
		}
	})
	return m
}

func TestNew(t *testing.T) {
	d := New("svg", "image/svg+xml", []byte("<svg/>"), 0)
	assert.Len(t, d.ID, 36)
	assert.Equal(t, DefaultTTL, d.ExpiresAt.Sub(d.CreatedAt))
	assert.False(t, d.IsExpired())
	assert.NotEqual(t, d.ID, New("svg", "", nil, 0).ID)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			d := New("png", "image/png", []byte{0x89, 'P', 'N', 'G'}, time.Minute)
			require.NoError(t, s.Save(ctx, d))

			got, err := s.Get(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, d.ID, got.ID)
			assert.Equal(t, "png", got.Format)
			assert.Equal(t, "image/png", got.ContentType)
			assert.Equal(t, d.Data, got.Data)
			assert.WithinDuration(t, d.ExpiresAt, got.ExpiresAt, time.Millisecond)

			require.NoError(t, s.Delete(ctx, d.ID))
			_, err = s.Get(ctx, d.ID)
			assert.True(t, errors.Is(err, errors.ErrCodeDesignNotFound), "got %v", err)

			assert.NoError(t, s.Delete(ctx, d.ID), "deleting twice")
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{NewID(), "../../etc/passwd", ""} {
				_, err := s.Get(ctx, id)
				assert.True(t, errors.Is(err, errors.ErrCodeDesignNotFound), "Get(%q) = %v", id, err)
			}
		})
	}
}

func TestStoreRejectsBadID(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			d := New("svg", "", nil, time.Minute)
			d.ID = "not-a-uuid"
			assert.True(t, errors.Is(s.Save(ctx, d), errors.ErrCodeInvalidInput))
			assert.True(t, errors.Is(s.Save(ctx, nil), errors.ErrCodeInvalidInput))
		})
	}
}

func TestExpiredDesigns(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{BackendMemory, BackendFile} {
		t.Run(name, func(t *testing.T) {
			s := stores(t)[name]
			old := New("svg", "", []byte("x"), time.Minute)
			old.ExpiresAt = time.Now().Add(-time.Second)
			fresh := New("svg", "", []byte("y"), time.Minute)
			require.NoError(t, s.Save(ctx, old))
			require.NoError(t, s.Save(ctx, fresh))

			n, err := s.Cleanup(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			_, err = s.Get(ctx, fresh.ID)
			assert.NoError(t, err)

			stale := New("svg", "", []byte("z"), time.Minute)
			stale.ExpiresAt = time.Now().Add(-time.Second)
			require.NoError(t, s.Save(ctx, stale))
			_, err = s.Get(ctx, stale.ID)
			assert.True(t, errors.Is(err, errors.ErrCodeDesignExpired), "got %v", err)
			_, err = s.Get(ctx, stale.ID)
			assert.True(t, errors.Is(err, errors.ErrCodeDesignNotFound), "expired design should be removed, got %v", err)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	d := New("json", "application/json", []byte("{}"), time.Minute)
	require.NoError(t, s.Save(context.Background(), d))

	blob, err := os.ReadFile(s.blobPath(d.ID))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(blob))

	meta, err := os.ReadFile(s.metaPath(d.ID))
	require.NoError(t, err)
	assert.NotContains(t, string(meta), `"data"`)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	defer s.Close()

	d := New("svg", "image/svg+xml", []byte("<svg/>"), time.Minute)
	require.NoError(t, s.Save(ctx, d))
	assert.True(t, mr.Exists("test:"+d.ID))
	assert.Greater(t, mr.TTL("test:"+d.ID), time.Duration(0))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, d.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeDesignNotFound), "got %v", err)

	n, err := s.Cleanup(ctx)
	assert.NoError(t, err)
	assert.Zero(t, n)

	past := New("svg", "", nil, time.Minute)
	past.ExpiresAt = time.Now().Add(-time.Second)
	assert.True(t, errors.Is(s.Save(ctx, past), errors.ErrCodeDesignExpired))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{})
	require.NoError(t, err)
	s.Close()

	s, err = Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	s.Close()

	mr := miniredis.RunT(t)
	s, err = Open(ctx, Config{Backend: BackendRedis, Redis: RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)
	s.Close()

	_, err = Open(ctx, Config{Backend: "sqlite"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

type recordingHooks struct {
	observability.NoopStoreHooks
	saved, loaded, expired int
	lastErr                error
}

func (r *recordingHooks) OnDesignSaved(context.Context, string, string, int) { r.saved++ }
func (r *recordingHooks) OnDesignLoaded(_ context.Context, _, _ string, err error) {
	r.loaded++
	r.lastErr = err
}
func (r *recordingHooks) OnDesignsExpired(context.Context, string, int) { r.expired++ }

func TestObserveFiresHooks(t *testing.T) {
	defer observability.Reset()
	h := &recordingHooks{}
	observability.SetStoreHooks(h)

	ctx := context.Background()
	s := Observe(BackendMemory, NewMemoryStore())
	d := New("svg", "", []byte("x"), time.Minute)
	require.NoError(t, s.Save(ctx, d))
	_, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	_, _ = s.Get(ctx, NewID())
	_, _ = s.Cleanup(ctx)

	assert.Equal(t, 1, h.saved)
	assert.Equal(t, 2, h.loaded)
	assert.Equal(t, 1, h.expired)
	assert.True(t, errors.Is(h.lastErr, errors.ErrCodeDesignNotFound))
}

func TestJanitor(t *testing.T) {
	s := NewMemoryStore()
	old := New("svg", "", nil, time.Minute)
	old.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, s.Save(context.Background(), old))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- (&Janitor{Store: s, Interval: time.Millisecond}).Run(ctx) }()

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
