package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cafeplan/pkg/observability"
)

// logHooks writes observability events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l.WithPrefix("events")}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
}

func (h *logHooks) OnLayoutStart(_ context.Context, paramsHash string) {
	h.logger.Debug("layout start", "params", short(paramsHash))
}

func (h *logHooks) OnLayoutComplete(_ context.Context, paramsHash string, slots int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "params", short(paramsHash), "error", err)
		return
	}
	h.logger.Debug("layout done", "params", short(paramsHash), "slots", slots, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnDesignSaved(_ context.Context, backend, id string, size int) {
	h.logger.Debug("design saved", "backend", backend, "id", id, "bytes", size)
}

func (h *logHooks) OnDesignLoaded(_ context.Context, backend, id string, err error) {
	h.logger.Debug("design loaded", "backend", backend, "id", id, "error", err)
}

func (h *logHooks) OnDesignsExpired(_ context.Context, backend string, removed int) {
	if removed > 0 {
		h.logger.Debug("designs expired", "backend", backend, "removed", removed)
	}
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
