package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
// Failed layouts and exports are logged as errors.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, weights int) {
	h.logger.Debug("layout start", "weights", weights)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, rects int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layout failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("layout complete", "rects", rects, "duration", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, formats []string) {
	h.logger.Debug("export start", "formats", formats)
}

func (h *LogHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("export failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("export complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
