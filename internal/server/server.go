package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/rpgo/financial-planner/internal/calculation"
	"github.com/rpgo/financial-planner/internal/config"
	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/internal/storage"
)

// DefaultAllowedOrigin is the development frontend.
const DefaultAllowedOrigin = "http://localhost:3000"

// RunStore persists completed runs. The server works without one.
type RunStore interface {
	SaveRun(ctx context.Context, run *storage.Run) (string, error)
	ListRuns(ctx context.Context, limit int) ([]storage.RunSummary, error)
}

// Options configures a Server.
type Options struct {
	// AllowedOrigin is echoed in CORS responses; "*" allows any origin.
	AllowedOrigin string
	// ReportPath, when set, receives the results CSV after every run.
	ReportPath string
	// MaxUploadBytes bounds scenario uploads.
	MaxUploadBytes int
}

// Server holds the most recently uploaded scenario and the most recent
// results, mirroring a single-user planning session.
type Server struct {
	opts   Options
	parser *config.InputParser
	store  RunStore
	logger *slog.Logger

	mu       sync.Mutex
	scenario domain.RawConfig
	runID    string
	results  []domain.PeriodResult
	warnings []domain.Warning
}

// New creates a server. store may be nil.
func New(opts Options, store RunStore, logger *slog.Logger) *Server {
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = DefaultAllowedOrigin
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 1 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		opts:   opts,
		parser: config.NewInputParser(),
		store:  store,
		logger: logger.With("component", "server"),
	}
}

// Handler returns the routed request handler with CORS applied.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.withCORS(s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/upload-scenario" && method == fasthttp.MethodPost:
		s.handleUpload(ctx)
	case path == "/run-simulation" && method == fasthttp.MethodPost:
		s.handleRun(ctx)
	case path == "/get-results" && method == fasthttp.MethodGet:
		s.handleResults(ctx)
	case path == "/report.csv" && method == fasthttp.MethodGet:
		s.handleReport(ctx)
	case path == "/runs" && method == fasthttp.MethodGet:
		s.handleListRuns(ctx)
	case path == "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, messageResponse{Message: "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) withCORS(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		origin := string(ctx.Request.Header.Peek(fasthttp.HeaderOrigin))
		if origin != "" && (s.opts.AllowedOrigin == "*" || origin == s.opts.AllowedOrigin) {
			h := &ctx.Response.Header
			h.Set(fasthttp.HeaderAccessControlAllowOrigin, origin)
			h.Set(fasthttp.HeaderAccessControlAllowCredentials, "true")
			h.Set(fasthttp.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
			if req := ctx.Request.Header.Peek(fasthttp.HeaderAccessControlRequestHeaders); len(req) > 0 {
				h.SetBytesV(fasthttp.HeaderAccessControlAllowHeaders, req)
			} else {
				h.Set(fasthttp.HeaderAccessControlAllowHeaders, "*")
			}
			h.Add(fasthttp.HeaderVary, fasthttp.HeaderOrigin)
		}
		if ctx.IsOptions() {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}
		next(ctx)
	}
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "financial-planner",
		MaxRequestBodySize: s.opts.MaxUploadBytes + 64<<10,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", "addr", ln.Addr().String(), "allowed_origin", s.opts.AllowedOrigin)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) engineLogger() calculation.Logger {
	return calculation.NewSlogLogger(s.logger, "engine")
}
