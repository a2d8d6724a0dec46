// Package api serves schema editing, generation and export over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/getmockd/mockmaster/internal/id"
	"github.com/getmockd/mockmaster/pkg/auth"
	"github.com/getmockd/mockmaster/pkg/config"
	"github.com/getmockd/mockmaster/pkg/generator"
	"github.com/getmockd/mockmaster/pkg/logging"
	"github.com/getmockd/mockmaster/pkg/metrics"
	"github.com/getmockd/mockmaster/pkg/ratelimit"
	"github.com/getmockd/mockmaster/pkg/store"
)

// Server is the HTTP API.
type Server struct {
	cfg      *config.Config
	store    *store.SchemaStore
	engine   *generator.Engine
	verifier *auth.Verifier
	log      *slog.Logger
	metrics  *metrics.Set
	limiter  *ratelimit.Limiter

	router     *gin.Engine
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the schema store. By default a store holding the default
// schema is used.
func WithStore(st *store.SchemaStore) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// WithVerifier sets the token verifier. Without one every request is
// anonymous and gated exports are refused.
func WithVerifier(v *auth.Verifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics sets the metric set served at /metrics.
func WithMetrics(m *metrics.Set) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a Server. A nil cfg uses config.NewDefault().
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = store.NewSchemaStore(nil)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewSet()
	}
	_ = s.metrics.SchemaFields.Set(float64(len(s.store.Get())))
	s.store.AddChangeListener(func(ev store.ChangeEvent) {
		_ = s.metrics.SchemaFields.Set(float64(len(ev.Schema)))
	})
	if cfg.RateLimit > 0 {
		s.limiter = ratelimit.New(ratelimit.Config{Rate: cfg.RateLimit, Burst: cfg.RateBurst})
	}
	s.engine = s.newEngine(nil)
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's metric set.
func (s *Server) Metrics() *metrics.Set {
	return s.metrics
}

// Store returns the schema store backing the API.
func (s *Server) Store() *store.SchemaStore {
	return s.store
}

// Start begins serving on addr (or the configured address when empty) and
// returns once the listener is bound.
func (s *Server) Start(addr string) (net.Addr, error) {
	if addr == "" {
		addr = s.cfg.Addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	s.log.Info("starting API server", "addr", ln.Addr().String())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("API server error", "error", err)
		}
	}()
	return ln.Addr(), nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) newEngine(seed *uint64) *generator.Engine {
	opts := []generator.Option{
		generator.WithRecentWindow(s.cfg.RecentWindowDuration()),
		generator.WithCorrelation(s.cfg.CorrelationMode()),
		generator.WithLogger(s.log),
	}
	if seed != nil {
		opts = append(opts, generator.WithSeed(*seed))
	}
	return generator.New(opts...)
}

func (s *Server) newID() string {
	return id.ULID()
}
