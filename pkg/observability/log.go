package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level.
// It implements PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log through l. A nil logger means
// log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnGenerateStart(_ context.Context, imageHash string, howMany int) {
	h.logger.Debug("generate start", "image", shortHash(imageHash), "how_many", howMany)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, imageHash string, variants, paletteSize int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "image", shortHash(imageHash), "err", err, "duration", d)
		return
	}
	h.logger.Debug("generate done", "image", shortHash(imageHash), "variants", variants, "palette", paletteSize, "duration", d)
}

func (h *LogHooks) OnEncodeComplete(_ context.Context, format string, bytes int, d time.Duration) {
	h.logger.Debug("encoded", "format", format, "bytes", bytes, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
