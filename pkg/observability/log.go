package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, and failures at
// warn level. It implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetPlannerHooks(h)
	SetStoreHooks(h)
	SetExportHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnCommit(_ context.Context, op string, version uint64) {
	h.logger.Debug("layout changed", "op", op, "version", version)
}

func (h *LogHooks) OnReject(_ context.Context, op string) {
	h.logger.Debug("operation rejected", "op", op)
}

func (h *LogHooks) OnLoad(_ context.Context, key string, hit bool, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("load failed", "key", key, "err", err)
		return
	}
	h.logger.Debug("load", "key", key, "hit", hit, "bytes", size, "took", d)
}

func (h *LogHooks) OnSave(_ context.Context, key string, size int, skipped bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("save failed", "key", key, "err", err)
		return
	}
	h.logger.Debug("save", "key", key, "bytes", size, "skipped", skipped, "took", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, format string) {
	h.logger.Debug("export started", "format", format)
}

func (h *LogHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("export done", "format", format, "bytes", size, "took", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "path", path, "status", status, "took", d)
}

var (
	_ PlannerHooks = (*LogHooks)(nil)
	_ StoreHooks   = (*LogHooks)(nil)
	_ ExportHooks  = (*LogHooks)(nil)
	_ HTTPHooks    = (*LogHooks)(nil)
)
