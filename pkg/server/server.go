package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mywio/guilded-relay/pkg/config"
	"github.com/mywio/guilded-relay/pkg/core"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/metrics"
	"github.com/mywio/guilded-relay/pkg/relay"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server is the HTTP entry point, run as a core.Module.
type Server struct {
	cfg    config.Config
	engine *relay.Engine
	client *guilded.Client
	health core.StatusReporter

	logger  *slog.Logger
	handler http.Handler

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	serving  bool
	stopping bool
}

func New(cfg config.Config, engine *relay.Engine, client *guilded.Client) *Server {
	return &Server{cfg: cfg, engine: engine, client: client}
}

// ReportStatusOf makes /healthz report r instead of the server alone, e.g.
// the module manager aggregate.
func (s *Server) ReportStatusOf(r core.StatusReporter) {
	s.health = r
}

func (s *Server) Name() string {
	return "http"
}

func (s *Server) Init(ctx context.Context, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger
	if s.cfg.MaxBodyBytes <= 0 {
		s.cfg.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	if s.cfg.DeliveryTimeout <= 0 {
		s.cfg.DeliveryTimeout = config.DefaultDeliveryTimeout
	}
	metrics.Register()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /webhooks/{id}/{token}", s.handleWebhook)

	s.handler = otelhttp.NewHandler(metrics.Instrument(mux), "guilded-relay",
		// Raw paths carry webhook tokens, so spans are named by method only.
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
	)
	s.logger.InfoContext(ctx, "HTTP server initialized", "addr", s.cfg.HTTPAddr, "max_body_bytes", s.cfg.MaxBodyBytes)
	return nil
}

// Handler returns the fully wrapped handler. Valid after Init.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until Stop is called. Once Stop has run, Start returns
// without serving.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.HTTPAddr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		_ = ln.Close()
		s.logger.Info("HTTP server stopped before serving")
		return nil
	}
	s.server = srv
	s.listener = ln
	s.serving = true
	s.mu.Unlock()

	s.logger.Info("HTTP server starting", "addr", ln.Addr().String())
	err = srv.Serve(ln)

	s.mu.Lock()
	s.serving = false
	s.mu.Unlock()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopping = true
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Addr is the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Status() core.ServiceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.serving {
		return core.StatusHealthy
	}
	if s.server == nil && !s.stopping {
		return core.StatusUnknown
	}
	return core.StatusUnhealthy
}
