package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sparced/benchviz/pkg/buildinfo"
	"github.com/sparced/benchviz/pkg/cache"
	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/figure/sink"
	"github.com/sparced/benchviz/pkg/observability"
	"github.com/sparced/benchviz/pkg/pipeline"
	"github.com/sparced/benchviz/pkg/results"
	"github.com/sparced/benchviz/pkg/viz"
)

const (
	defaultAddr     = ":8080"
	maxRequestBytes = 64 << 20
	redisKeyPrefix  = "benchviz:"
	shutdownTimeout = 10 * time.Second
)

type serveOpts struct {
	addr     string
	redisURL string
	noCache  bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve figure rendering over HTTP",
		Long: `Serve figure rendering over HTTP.

  POST /render?format=png   body: {"rows": [...], "results": {...}}
  GET  /formats
  GET  /healthz

Rendered figures are cached in the local artifact cache, or in Redis
when --redis is set so several instances share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the shared cache (redis://host:6379/0)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newServeRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Listening on %s", StyleValue.Render(opts.addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	printInfo("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (c *CLI) newServeRunner(ctx context.Context, opts serveOpts) (*pipeline.Runner, error) {
	if opts.redisURL == "" || opts.noCache {
		return c.newRunner(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

// server renders posted figures.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: runner, logger: logger.WithPrefix("http")}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Post("/render", s.handleRender)
	r.Get("/formats", s.handleFormats)
	r.Get("/healthz", s.handleHealth)
	return r
}

type requestIDKey struct{}

// requestID tags every request with a uuid, echoed in X-Request-ID, and
// reports it to the HTTP hooks.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		w.Header().Set("X-Request-ID", id)

		hooks := observability.HTTP()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))
		hooks.OnResponse(ctx, id, r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// renderRequest is the body of POST /render.
type renderRequest struct {
	Rows     []viz.Row       `json:"rows"`
	Results  *results.Store  `json:"results"`
	Style    json.RawMessage `json:"style,omitempty"` // partial style over the defaults
	Format   string          `json:"format,omitempty"`
	Title    string          `json:"title,omitempty"`
	NoLegend bool            `json:"no_legend,omitempty"`
	Scale    float64         `json:"scale,omitempty"`
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Results == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "results are required"))
		return
	}
	style, err := decodeStyle(req.Style)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for i := range req.Rows {
		req.Rows[i].Normalize()
	}

	format := req.Format
	if q := r.URL.Query().Get("format"); q != "" {
		format = q
	}
	opts := pipeline.Options{
		Formats:  []string{format},
		Title:    req.Title,
		NoLegend: req.NoLegend,
		Scale:    req.Scale,
		Logger:   s.logger,
	}
	if format == "" {
		opts.Formats = nil
	}

	in, err := pipeline.NewInput(req.Rows, req.Results, style)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Render(r.Context(), in, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	f := sink.FormatSVG
	if format != "" {
		f, _ = sink.ParseFormat(format)
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("X-Input-Hash", res.InputHash)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[string(f)])
}

// decodeStyle overlays a JSON style document on the defaults.
func decodeStyle(raw json.RawMessage) (figure.Style, error) {
	style := figure.DefaultStyle()
	if len(raw) == 0 {
		return style, nil
	}
	if err := json.Unmarshal(raw, &style); err != nil {
		return figure.Style{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode style")
	}
	if err := style.Validate(); err != nil {
		return figure.Style{}, err
	}
	return style, nil
}

func (s *server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sink.Formats)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "request", id, "error", err)
	} else {
		s.logger.Debug("request rejected", "request", id, "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code, RequestID: id})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeConfig:
		return http.StatusBadRequest
	case errors.ErrCodeMissingData, errors.ErrCodeUnsupportedPlotType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
