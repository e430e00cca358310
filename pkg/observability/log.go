package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements all
// hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetBenchHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLoadStart(_ context.Context, table, results string) {
	h.logger.Debug("load start", "table", table, "results", results)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, rows, conditions int, d time.Duration, err error) {
	h.logger.Debug("load complete", "rows", rows, "conditions", conditions, "duration", d, "err", err)
}

func (h *LogHooks) OnBuildStart(_ context.Context, plotGroups int) {
	h.logger.Debug("build start", "groups", plotGroups)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, axes, artists int, d time.Duration, err error) {
	h.logger.Debug("build complete", "axes", axes, "artists", artists, "duration", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnJobStart(_ context.Context, benchmark, jobID string) {
	h.logger.Debug("job start", "benchmark", benchmark, "job", jobID)
}

func (h *LogHooks) OnJobComplete(_ context.Context, benchmark, jobID string, exitCode int, d time.Duration, err error) {
	h.logger.Debug("job complete", "benchmark", benchmark, "job", jobID, "exit", exitCode, "duration", d, "err", err)
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

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ BenchHooks    = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
