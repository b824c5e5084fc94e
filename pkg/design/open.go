package design

import (
	"context"

	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/observability"
)

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the backend names in display order.
var Backends = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open creates the configured store wrapped with [Observe].
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case "", BackendMemory:
		cfg.Backend = BackendMemory
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case BackendRedis:
		s, err = NewRedisStore(ctx, cfg.Redis)
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown design store %q", cfg.Backend)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s design store", cfg.Backend)
	}
	return Observe(cfg.Backend, s), nil
}

// Observe wraps s so every operation reports to the registered
// observability store hooks.
func Observe(backend string, s Store) Store {
	return &observed{Store: s, backend: backend}
}

type observed struct {
	Store
	backend string
}

func (o *observed) Save(ctx context.Context, d *Design) error {
	err := o.Store.Save(ctx, d)
	if err == nil {
		observability.Store().OnDesignSaved(ctx, o.backend, d.ID, len(d.Data))
	}
	return err
}

func (o *observed) Get(ctx context.Context, id string) (*Design, error) {
	d, err := o.Store.Get(ctx, id)
	observability.Store().OnDesignLoaded(ctx, o.backend, id, err)
	return d, err
}

func (o *observed) Cleanup(ctx context.Context) (int, error) {
	n, err := o.Store.Cleanup(ctx)
	if err == nil {
		observability.Store().OnDesignsExpired(ctx, o.backend, n)
	}
	return n, err
}
